package signup

import (
	"time"

	"github.com/jhoicas/goagent-api/internal/domain/entity"
)

// State etapa del registro. El orden es fijo:
//
//	ValidatingInput → CheckingDuplicate → CreatingIdentity → ProvisioningAgent →
//	ProvisioningOrg → [ProvisioningClient] → Persisting → Responding
type State string

// Estados del orquestador.
const (
	StateValidatingInput    State = "validating_input"
	StateCheckingDuplicate  State = "checking_duplicate"
	StateCreatingIdentity   State = "creating_identity"
	StateProvisioningAgent  State = "provisioning_agent"
	StateProvisioningOrg    State = "provisioning_org"
	StateProvisioningClient State = "provisioning_client"
	StatePersisting         State = "persisting"
	StateResponding         State = "responding"
)

// transitions estados siguientes permitidos desde cada estado.
var transitions = map[State][]State{
	StateValidatingInput:    {StateCheckingDuplicate},
	StateCheckingDuplicate:  {StateCreatingIdentity},
	StateCreatingIdentity:   {StateProvisioningAgent},
	StateProvisioningAgent:  {StateProvisioningOrg},
	StateProvisioningOrg:    {StateProvisioningClient, StatePersisting},
	StateProvisioningClient: {StatePersisting},
	StatePersisting:         {StateResponding},
	StateResponding:         {},
}

// CanTransition indica si from → to es una transición válida.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanBeFatal indica si el estado puede terminar en Fatal. Solo la validación y la
// creación de identidad abortan; el resto degrada y continúa.
func CanBeFatal(s State) bool {
	return s == StateValidatingInput || s == StateCreatingIdentity
}

// OutcomeKind resultado terminal del registro.
type OutcomeKind string

// Resultados terminales.
const (
	OutcomeSuccess  OutcomeKind = "success"
	OutcomeConflict OutcomeKind = "conflict"
	OutcomeFatal    OutcomeKind = "fatal"
)

// Outcome resultado que el handler HTTP traduce tal cual a la respuesta.
type Outcome struct {
	Kind       OutcomeKind
	IdentityID string
	Record     *entity.SignupRecord // solo en Success
	Err        error                // causa en Conflict y Fatal
	State      State                // estado en el que terminó
}

// Recorder observa resultados y pasos degradados (métricas).
type Recorder interface {
	ObserveOutcome(kind OutcomeKind, elapsed time.Duration)
	ObserveStepFailure(step State)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOutcome(OutcomeKind, time.Duration) {}
func (nopRecorder) ObserveStepFailure(State)                  {}
