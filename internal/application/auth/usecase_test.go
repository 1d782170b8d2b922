package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/goagent-api/internal/application/auth"
	"github.com/jhoicas/goagent-api/internal/application/dto"
	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
	"github.com/jhoicas/goagent-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

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

type recordRepoMock struct{ mock.Mock }

func (m *recordRepoMock) Save(ctx context.Context, rec *entity.SignupRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *recordRepoMock) GetByIdentityID(ctx context.Context, id string) (*entity.SignupRecord, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*entity.SignupRecord)
	return rec, args.Error(1)
}

func newUseCase() (*auth.AuthUseCase, *identityStoreMock, *recordRepoMock) {
	ids := &identityStoreMock{}
	recs := &recordRepoMock{}
	uc := auth.NewAuthUseCase(ids, recs, auth.JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "test"})
	return uc, ids, recs
}

func TestLogin_OK_TokenConIdentidad(t *testing.T) {
	uc, ids, _ := newUseCase()
	ids.On("Authenticate", mock.Anything, "ana@b.com", "secret").
		Return(&entity.Identity{ID: "uid-1", Email: "ana@b.com"}, nil).Once()

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " Ana@B.com ", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "uid-1", out.UserID)
	userID, email, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", userID)
	assert.Equal(t, "ana@b.com", email)
}

func TestLogin_CredencialesInvalidas_Unauthorized(t *testing.T) {
	uc, ids, _ := newUseCase()
	ids.On("Authenticate", mock.Anything, "ana@b.com", "mala").
		Return(nil, domain.NewAuthError(domain.AuthCodeInvalidCredential, "x", nil)).Once()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@b.com", Password: "mala"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_ErrorProveedor_SePropaga(t *testing.T) {
	uc, ids, _ := newUseCase()
	ids.On("Authenticate", mock.Anything, "ana@b.com", "secret").
		Return(nil, domain.NewAuthError(domain.AuthCodeNetwork, "caído", errors.New("dial"))).Once()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@b.com", Password: "secret"})

	assert.ErrorIs(t, err, domain.ErrAuthProvider)
}

func TestLogin_CamposFaltantes(t *testing.T) {
	uc, ids, _ := newUseCase()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@b.com"})

	assert.ErrorIs(t, err, domain.ErrMissingFields)
	assert.Empty(t, ids.Calls)
}

func TestAccount_MapeaSnapshots(t *testing.T) {
	uc, _, recs := newUseCase()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	recs.On("GetByIdentityID", mock.Anything, "uid-1").Return(&entity.SignupRecord{
		IdentityID:   "uid-1",
		Name:         "Ana",
		Email:        "ana@b.com",
		BusinessType: entity.BusinessInfluencer,
		Plan:         entity.PlanFree,
		Organization: &entity.Organization{ID: "org-1"},
		ClonedAgent:  &entity.ClonedAgent{ID: "agent-1"},
		CreatedAt:    created,
	}, nil).Once()

	out, err := uc.Account(context.Background(), "uid-1")

	require.NoError(t, err)
	assert.Equal(t, "org-1", out.OrgID)
	assert.Equal(t, "agent-1", out.AgentID)
	assert.False(t, out.HasClient)
	assert.Equal(t, "influencer", out.BusinessType)
	assert.Equal(t, created, out.CreatedAt)
}

func TestAccount_SinRegistro_NotFound(t *testing.T) {
	uc, _, recs := newUseCase()
	recs.On("GetByIdentityID", mock.Anything, "uid-x").Return(nil, nil).Once()

	_, err := uc.Account(context.Background(), "uid-x")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
