package leads

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/goagent-api/internal/application/ports"
	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
	"github.com/jhoicas/goagent-api/internal/domain/repository"
)

// isoMillis formato de timestamp que envía el frontend (ISO 8601 con milisegundos, UTC).
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// UseCase captura de leads de la web y llamadas salientes con el agente de demo.
type UseCase struct {
	leads       repository.LeadRepository
	dialer      ports.CallDialer
	callTimeout time.Duration
	now         func() time.Time
}

// NewUseCase construye el caso de uso. callTimeout 0 = 15 s.
func NewUseCase(leads repository.LeadRepository, dialer ports.CallDialer, callTimeout time.Duration) *UseCase {
	if callTimeout <= 0 {
		callTimeout = 15 * time.Second
	}
	return &UseCase{leads: leads, dialer: dialer, callTimeout: callTimeout, now: time.Now}
}

// SaveLead valida según "source", completa "timestamp" si falta y guarda el payload completo.
func (uc *UseCase) SaveLead(ctx context.Context, payload map[string]any) (*entity.Lead, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	source, _ := payload["source"].(string)

	switch source {
	case entity.LeadSourceNewsletter:
		if !present(payload["email"]) {
			return nil, domain.NewValidationError("Email is required for newsletter subscriptions")
		}
	case entity.LeadSourceVoiceAssistant:
		if !present(payload["fullName"]) || !present(payload["email"]) || !present(payload["phoneNumber"]) {
			return nil, domain.NewValidationError("Name, email, and phone number are required for voice assistant leads")
		}
	}

	if !present(payload["timestamp"]) {
		payload["timestamp"] = uc.now().UTC().Format(isoMillis)
	}

	lead := &entity.Lead{Source: source, Payload: payload}
	if err := uc.leads.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("guardar lead: %w", err)
	}
	return lead, nil
}

// StartCall inicia la llamada al número recibido. Un solo intento.
func (uc *UseCase) StartCall(ctx context.Context, phoneNumber string) (json.RawMessage, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, domain.NewValidationError("phoneNumber is required")
	}
	cctx, cancel := context.WithTimeout(ctx, uc.callTimeout)
	defer cancel()
	return uc.dialer.StartCall(cctx, phoneNumber)
}

// present replica la noción de "valor informado" del frontend: nil, "", false y 0 no cuentan.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case bool:
		return t
	case float64:
		return t != 0
	case json.Number:
		return t.String() != "0"
	default:
		return true
	}
}
