package signup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/goagent-api/internal/application/dto"
	"github.com/jhoicas/goagent-api/internal/application/ports"
	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
	"github.com/jhoicas/goagent-api/internal/domain/repository"
	"github.com/jhoicas/goagent-api/pkg/logger"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

const defaultStepTimeout = 15 * time.Second

// Deps dependencias inyectadas del orquestador. Todas son interfaces para poder
// reemplazarlas en tests.
type Deps struct {
	Identities  repository.IdentityStore
	Templates   ports.TemplateService
	Orgs        ports.OrganizationProvisioner
	Clients     ports.ClientProvisioner
	Records     repository.SignupRecordRepository
	Catalog     TemplateCatalog
	Logger      *logger.Logger
	Metrics     Recorder      // opcional
	StepTimeout time.Duration // timeout por llamada a adaptador; 0 = 15 s
}

// Orchestrator ejecuta el registro completo:
//
//	validación → duplicado (consultivo) → identidad → agente (export+import) →
//	organización → cliente → SignupRecord → respuesta
//
// Solo la validación y la creación de identidad pueden abortar. Una vez creada la
// identidad cada paso posterior es best-effort: se loguea, se deja nil y se sigue.
type Orchestrator struct {
	identities  repository.IdentityStore
	templates   ports.TemplateService
	orgs        ports.OrganizationProvisioner
	clients     ports.ClientProvisioner
	records     repository.SignupRecordRepository
	catalog     TemplateCatalog
	log         *logger.Logger
	metrics     Recorder
	stepTimeout time.Duration
}

// NewOrchestrator construye el orquestador.
func NewOrchestrator(d Deps) *Orchestrator {
	o := &Orchestrator{
		identities:  d.Identities,
		templates:   d.Templates,
		orgs:        d.Orgs,
		clients:     d.Clients,
		records:     d.Records,
		catalog:     d.Catalog,
		log:         d.Logger,
		metrics:     d.Metrics,
		stepTimeout: d.StepTimeout,
	}
	if o.log == nil {
		o.log = logger.Nop()
	}
	if o.metrics == nil {
		o.metrics = nopRecorder{}
	}
	if o.stepTimeout <= 0 {
		o.stepTimeout = defaultStepTimeout
	}
	return o
}

// run estado mutable de un registro; no se comparte entre requests.
type run struct {
	name         string
	email        string
	password     string
	businessType entity.BusinessType

	identity *entity.Identity
	agent    *entity.ClonedAgent
	widgetID string
	org      *entity.Organization
	client   *entity.Client
	record   *entity.SignupRecord
}

// Signup ejecuta la máquina de estados y devuelve siempre un Outcome terminal.
func (o *Orchestrator) Signup(ctx context.Context, in dto.SignupRequest) Outcome {
	start := time.Now()
	r := &run{
		name:         norm.NFC.String(strings.TrimSpace(in.Name)),
		email:        strings.ToLower(strings.TrimSpace(in.Email)),
		password:     in.Password,
		businessType: entity.ParseBusinessType(strings.TrimSpace(in.BusinessType)),
		widgetID:     o.catalog.DefaultWidgetID,
	}

	state := StateValidatingInput
	for {
		next, out := o.step(ctx, state, r)
		if out != nil {
			out.State = state
			o.metrics.ObserveOutcome(out.Kind, time.Since(start))
			return *out
		}
		if !CanTransition(state, next) {
			err := fmt.Errorf("transición inválida %s -> %s", state, next)
			o.log.Error().Err(err).Str("email", r.email).Msg("signup: máquina de estados")
			return Outcome{Kind: OutcomeFatal, Err: err, State: state}
		}
		if state == StateCreatingIdentity {
			// La identidad ya quedó creada: el resto no depende de que el cliente siga conectado.
			ctx = context.WithoutCancel(ctx)
		}
		state = next
	}
}

func (o *Orchestrator) step(ctx context.Context, s State, r *run) (State, *Outcome) {
	switch s {
	case StateValidatingInput:
		return o.validate(r)
	case StateCheckingDuplicate:
		return o.checkDuplicate(ctx, r)
	case StateCreatingIdentity:
		return o.createIdentity(ctx, r)
	case StateProvisioningAgent:
		return o.provisionAgent(ctx, r), nil
	case StateProvisioningOrg:
		return o.provisionOrg(ctx, r), nil
	case StateProvisioningClient:
		return o.provisionClient(ctx, r), nil
	case StatePersisting:
		return o.persist(ctx, r), nil
	case StateResponding:
		return "", &Outcome{Kind: OutcomeSuccess, IdentityID: r.identity.ID, Record: r.record}
	default:
		return "", &Outcome{Kind: OutcomeFatal, Err: fmt.Errorf("estado desconocido %q", s)}
	}
}

func (o *Orchestrator) validate(r *run) (State, *Outcome) {
	if r.name == "" || r.email == "" || r.password == "" {
		return "", &Outcome{Kind: OutcomeFatal, Err: domain.ErrMissingFields}
	}
	return StateCheckingDuplicate, nil
}

// checkDuplicate es consultivo: un error de lectura no bloquea el registro, la
// verificación autoritativa la hace el proveedor de identidad al crear.
func (o *Orchestrator) checkDuplicate(ctx context.Context, r *run) (State, *Outcome) {
	cctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	exists, err := o.identities.Exists(cctx, r.email)
	if err != nil {
		o.log.Warn().Err(err).Str("email", r.email).Str("step", string(StateCheckingDuplicate)).
			Msg("signup: no se pudo verificar duplicado, se continúa")
		return StateCreatingIdentity, nil
	}
	if exists {
		o.log.Info().Str("email", r.email).Msg("signup: email ya registrado")
		return "", &Outcome{Kind: OutcomeConflict, Err: domain.ErrDuplicateIdentity}
	}
	return StateCreatingIdentity, nil
}

func (o *Orchestrator) createIdentity(ctx context.Context, r *run) (State, *Outcome) {
	cctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	identity, err := o.identities.Create(cctx, r.email, r.password, r.name)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			o.log.Info().Str("email", r.email).Msg("signup: identidad duplicada")
			return "", &Outcome{Kind: OutcomeConflict, Err: err}
		}
		o.log.Error().Err(err).Str("email", r.email).Str("code", domain.AuthCode(err)).
			Msg("signup: creación de identidad fallida")
		return "", &Outcome{Kind: OutcomeFatal, Err: err}
	}
	if identity.AlreadyExists {
		o.log.Info().Str("email", r.email).Str("identity_id", identity.ID).
			Msg("signup: la identidad ya existía y las credenciales coinciden")
		return "", &Outcome{Kind: OutcomeConflict, IdentityID: identity.ID, Err: domain.ErrDuplicateIdentity}
	}

	r.identity = identity
	o.log.Info().Str("email", r.email).Str("identity_id", identity.ID).Msg("signup: identidad creada")
	return StateProvisioningAgent, nil
}

func (o *Orchestrator) provisionAgent(ctx context.Context, r *run) State {
	templateID := o.catalog.TemplateFor(r.businessType)
	log := o.log.Child(func(c zerolog.Context) zerolog.Context {
		return c.Str("identity_id", r.identity.ID).Str("template_id", templateID).Str("business_type", string(r.businessType))
	})

	exportCtx, cancelExport := context.WithTimeout(ctx, o.stepTimeout)
	export, err := o.templates.ExportTemplate(exportCtx, templateID)
	cancelExport()
	if err != nil {
		o.degrade(log, StateProvisioningAgent, err, "signup: export de plantilla fallido, se usa widget por defecto")
		return StateProvisioningOrg
	}

	importCtx, cancelImport := context.WithTimeout(ctx, o.stepTimeout)
	agent, err := o.templates.ImportTemplate(importCtx, export, r.businessType, templateID)
	cancelImport()
	if err != nil {
		o.degrade(log, StateProvisioningAgent, err, "signup: import de plantilla fallido, se usa widget por defecto")
		return StateProvisioningOrg
	}

	r.agent = agent
	r.widgetID = agent.ID
	log.Info().Str("widget_id", agent.ID).Msg("signup: agente clonado")
	return StateProvisioningOrg
}

func (o *Orchestrator) provisionOrg(ctx context.Context, r *run) State {
	cctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	log := o.log.Child(func(c zerolog.Context) zerolog.Context {
		return c.Str("identity_id", r.identity.ID).Str("widget_id", r.widgetID)
	})

	org, err := o.orgs.CreateOrganization(cctx, r.name, r.widgetID)
	if err != nil {
		o.degrade(log, StateProvisioningOrg, err, "signup: creación de organización fallida, se omite el cliente")
		return StatePersisting
	}
	r.org = org
	if !org.HasID() {
		o.degrade(log, StateProvisioningOrg, domain.ErrOrgProvisioningFailed,
			"signup: la organización no devolvió ID, se omite el cliente")
		return StatePersisting
	}
	log.Info().Str("org_id", org.ID).Msg("signup: organización creada")
	return StateProvisioningClient
}

func (o *Orchestrator) provisionClient(ctx context.Context, r *run) State {
	cctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	log := o.log.Child(func(c zerolog.Context) zerolog.Context {
		return c.Str("identity_id", r.identity.ID).Str("org_id", r.org.ID)
	})

	client, err := o.clients.CreateClient(cctx, r.org.ID, r.name, r.email, r.password)
	if err != nil {
		o.degrade(log, StateProvisioningClient, err, "signup: creación de cliente fallida")
		return StatePersisting
	}
	r.client = client
	log.Info().Msg("signup: cliente creado")
	return StatePersisting
}

// persist siempre se ejecuta. Un fallo aquí solo se loguea: la identidad ya existe
// y queda pendiente de reconciliación manual.
func (o *Orchestrator) persist(ctx context.Context, r *run) State {
	r.record = &entity.SignupRecord{
		IdentityID:   r.identity.ID,
		Name:         r.name,
		Email:        r.email,
		BusinessType: r.businessType,
		Plan:         entity.PlanFree,
		Organization: r.org,
		Client:       r.client,
		ClonedAgent:  r.agent,
	}

	cctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	if err := o.records.Save(cctx, r.record); err != nil {
		log := o.log.Child(func(c zerolog.Context) zerolog.Context {
			return c.Str("identity_id", r.identity.ID).Str("email", r.email)
		})
		o.degrade(log, StatePersisting, fmt.Errorf("%w: %v", domain.ErrRecordPersistFailed, err),
			"signup: no se pudo guardar el SignupRecord; identidad sin registro")
	}
	return StateResponding
}

func (o *Orchestrator) degrade(log *logger.Logger, step State, err error, msg string) {
	o.metrics.ObserveStepFailure(step)
	log.Error().Err(err).Str("step", string(step)).Msg(msg)
}
