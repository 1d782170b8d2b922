package signup_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/goagent-api/internal/application/signup"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
)

type identityStoreMock struct{ mock.Mock }

func (m *identityStoreMock) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *identityStoreMock) Create(ctx context.Context, email, password, displayName string) (*entity.Identity, error) {
	args := m.Called(ctx, email, password, displayName)
	id, _ := args.Get(0).(*entity.Identity)
	return id, args.Error(1)
}

func (m *identityStoreMock) Authenticate(ctx context.Context, email, password string) (*entity.Identity, error) {
	args := m.Called(ctx, email, password)
	id, _ := args.Get(0).(*entity.Identity)
	return id, args.Error(1)
}

type templateServiceMock struct{ mock.Mock }

func (m *templateServiceMock) ExportTemplate(ctx context.Context, templateID string) (*entity.TemplateExport, error) {
	args := m.Called(ctx, templateID)
	exp, _ := args.Get(0).(*entity.TemplateExport)
	return exp, args.Error(1)
}

func (m *templateServiceMock) ImportTemplate(ctx context.Context, export *entity.TemplateExport, bt entity.BusinessType, sourceTemplateID string) (*entity.ClonedAgent, error) {
	args := m.Called(ctx, export, bt, sourceTemplateID)
	agent, _ := args.Get(0).(*entity.ClonedAgent)
	return agent, args.Error(1)
}

type orgProvisionerMock struct{ mock.Mock }

func (m *orgProvisionerMock) CreateOrganization(ctx context.Context, name, widgetID string) (*entity.Organization, error) {
	args := m.Called(ctx, name, widgetID)
	org, _ := args.Get(0).(*entity.Organization)
	return org, args.Error(1)
}

type clientProvisionerMock struct{ mock.Mock }

func (m *clientProvisionerMock) CreateClient(ctx context.Context, orgID, name, email, password string) (*entity.Client, error) {
	args := m.Called(ctx, orgID, name, email, password)
	c, _ := args.Get(0).(*entity.Client)
	return c, args.Error(1)
}

type recordRepoMock struct{ mock.Mock }

func (m *recordRepoMock) Save(ctx context.Context, record *entity.SignupRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *recordRepoMock) GetByIdentityID(ctx context.Context, identityID string) (*entity.SignupRecord, error) {
	args := m.Called(ctx, identityID)
	rec, _ := args.Get(0).(*entity.SignupRecord)
	return rec, args.Error(1)
}

// recorderSpy registra lo que el orquestador reporta a métricas.
type recorderSpy struct {
	mu       sync.Mutex
	outcomes []signup.OutcomeKind
	failures []signup.State
}

func (r *recorderSpy) ObserveOutcome(kind signup.OutcomeKind, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, kind)
}

func (r *recorderSpy) ObserveStepFailure(step signup.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, step)
}
