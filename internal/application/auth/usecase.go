package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/goagent-api/internal/application/dto"
	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/internal/domain/repository"
	"github.com/jhoicas/goagent-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login contra el proveedor de identidad y consulta de la cuenta propia.
type AuthUseCase struct {
	identities repository.IdentityStore
	records    repository.SignupRecordRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(identities repository.IdentityStore, records repository.SignupRecordRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{identities: identities, records: records, jwtCfg: jwtCfg}
}

// Login verifica email/password con el proveedor de identidad y emite un JWT.
// Credenciales inválidas -> domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	identity, err := uc.identities.Authenticate(ctx, email, in.Password)
	if err != nil {
		if domain.AuthCode(err) == domain.AuthCodeInvalidCredential {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, identity.ID, identity.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, UserID: identity.ID}, nil
}

// Account devuelve el SignupRecord del usuario. Sin registro -> domain.ErrNotFound.
func (uc *AuthUseCase) Account(ctx context.Context, userID string) (*dto.AccountResponse, error) {
	rec, err := uc.records.GetByIdentityID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}

	out := &dto.AccountResponse{
		UserID:       rec.IdentityID,
		Name:         rec.Name,
		Email:        rec.Email,
		BusinessType: string(rec.BusinessType),
		Plan:         rec.Plan,
		HasClient:    rec.Client != nil,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.Organization.HasID() {
		out.OrgID = rec.Organization.ID
	}
	if rec.ClonedAgent != nil {
		out.AgentID = rec.ClonedAgent.ID
	}
	return out, nil
}
