package http_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/goagent-api/internal/application/dto"
	"github.com/jhoicas/goagent-api/internal/application/signup"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
	apphttp "github.com/jhoicas/goagent-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de servicios
// ──────────────────────────────────────────────────────────────────────────────

type fakeSignup struct {
	out  signup.Outcome
	got  dto.SignupRequest
	hits int
}

func (f *fakeSignup) Signup(_ context.Context, in dto.SignupRequest) signup.Outcome {
	f.hits++
	f.got = in
	return f.out
}

type fakeAuth struct {
	login      *dto.LoginResponse
	loginErr   error
	account    *dto.AccountResponse
	accountErr error
	gotUserID  string
}

func (f *fakeAuth) Login(_ context.Context, _ dto.LoginRequest) (*dto.LoginResponse, error) {
	return f.login, f.loginErr
}

func (f *fakeAuth) Account(_ context.Context, userID string) (*dto.AccountResponse, error) {
	f.gotUserID = userID
	return f.account, f.accountErr
}

type fakeLeads struct {
	lead     *entity.Lead
	leadErr  error
	payload  map[string]any
	callRaw  json.RawMessage
	callErr  error
	gotPhone string
}

func (f *fakeLeads) SaveLead(_ context.Context, payload map[string]any) (*entity.Lead, error) {
	f.payload = payload
	return f.lead, f.leadErr
}

func (f *fakeLeads) StartCall(_ context.Context, phone string) (json.RawMessage, error) {
	f.gotPhone = phone
	return f.callRaw, f.callErr
}

type fakeLimiter struct {
	allowed    bool
	retryAfter time.Duration
	err        error
	keys       []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.retryAfter, f.err
}

type testDeps struct {
	signup  *fakeSignup
	auth    *fakeAuth
	leads   *fakeLeads
	limiter apphttp.SignupLimiter
}

// buildRouterApp monta el router completo sobre fakes.
func buildRouterApp(d testDeps) *fiber.App {
	return buildRouterAppWithConfig(fiber.Config{}, d)
}

func buildRouterAppWithConfig(cfg fiber.Config, d testDeps) *fiber.App {
	if d.signup == nil {
		d.signup = &fakeSignup{}
	}
	if d.auth == nil {
		d.auth = &fakeAuth{}
	}
	if d.leads == nil {
		d.leads = &fakeLeads{}
	}
	app := fiber.New(cfg)
	apphttp.Router(app, apphttp.RouterDeps{
		Signup:        d.signup,
		Auth:          d.auth,
		Leads:         d.leads,
		SignupLimiter: d.limiter,
		JWTSecret:     testJWTSecret,
	})
	return app
}
