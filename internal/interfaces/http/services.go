package http

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/goagent-api/internal/application/dto"
	"github.com/jhoicas/goagent-api/internal/application/signup"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
)

// Contratos mínimos que consumen los handlers. Los implementan
// *signup.Orchestrator, *auth.AuthUseCase, *leads.UseCase y *ratelimit.SignupLimiter.

// SignupService ejecuta el registro completo.
type SignupService interface {
	Signup(ctx context.Context, in dto.SignupRequest) signup.Outcome
}

// AuthService login y cuenta propia.
type AuthService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Account(ctx context.Context, userID string) (*dto.AccountResponse, error)
}

// LeadService captura de leads y llamadas salientes.
type LeadService interface {
	SaveLead(ctx context.Context, payload map[string]any) (*entity.Lead, error)
	StartCall(ctx context.Context, phoneNumber string) (json.RawMessage, error)
}

// SignupLimiter limitador de intentos de registro por cliente.
type SignupLimiter interface {
	Allow(ctx context.Context, clientKey string) (bool, time.Duration, error)
}
