package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
	"github.com/jhoicas/goagent-api/internal/domain/repository"
)

var _ repository.IdentityStore = (*IdentityStore)(nil)

// minPasswordLength mismo mínimo que aplica el proveedor gestionado.
const minPasswordLength = 6

// IdentityStore proveedor de identidad sobre PostgreSQL con hashes bcrypt.
// La unicidad del email la garantiza el índice único sobre lower(email).
type IdentityStore struct {
	pool Querier
	cost int
}

// NewIdentityStore construye el store. cost 0 = bcrypt.DefaultCost.
func NewIdentityStore(pool Querier, cost int) *IdentityStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &IdentityStore{pool: pool, cost: cost}
}

// Exists consulta por email exacto (sin distinguir mayúsculas).
func (s *IdentityStore) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM identities WHERE lower(email) = lower($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("identity exists: %w", err)
	}
	return exists, nil
}

// Create inserta la identidad. Si el email ya está registrado re-autentica con las
// credenciales recibidas: éxito -> identidad existente con AlreadyExists=true;
// cualquier fallo -> AuthError email-already-in-use con el fallo como causa.
func (s *IdentityStore) Create(ctx context.Context, email, password, displayName string) (*entity.Identity, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, domain.NewAuthError(domain.AuthCodeInternal, "hash de password", err)
	}

	id := &entity.Identity{ID: uuid.NewString(), Email: email, DisplayName: displayName}
	query := `
		INSERT INTO identities (id, email, display_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING verified, created_at, last_sign_in_at`
	err = s.pool.QueryRow(ctx, query, id.ID, email, displayName, string(hash)).
		Scan(&id.Verified, &id.CreatedAt, &id.LastSignInAt)
	if err == nil {
		return id, nil
	}
	if !isUniqueViolation(err) {
		return nil, domain.NewAuthError(domain.AuthCodeInternal, "insert identity", err)
	}

	// El índice único ya confirmó el duplicado: un fallo de la re-autenticación
	// (password distinta, timeout, conexión) no cambia ese resultado.
	existing, authErr := s.Authenticate(ctx, email, password)
	if authErr != nil {
		return nil, domain.NewAuthError(domain.AuthCodeEmailInUse, "User already exists", authErr)
	}
	existing.AlreadyExists = true
	return existing, nil
}

// Authenticate verifica email/password y actualiza last_sign_in_at.
func (s *IdentityStore) Authenticate(ctx context.Context, email, password string) (*entity.Identity, error) {
	query := `
		SELECT id, email, display_name, verified, password_hash, created_at, last_sign_in_at
		FROM identities WHERE lower(email) = lower($1)`
	var (
		id   entity.Identity
		hash string
	)
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&id.ID, &id.Email, &id.DisplayName, &id.Verified, &hash, &id.CreatedAt, &id.LastSignInAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewAuthError(domain.AuthCodeInvalidCredential, "credenciales inválidas", nil)
		}
		return nil, domain.NewAuthError(domain.AuthCodeInternal, "get identity", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, domain.NewAuthError(domain.AuthCodeInvalidCredential, "credenciales inválidas", nil)
	}

	var lastSignIn time.Time
	if err := s.pool.QueryRow(ctx,
		`UPDATE identities SET last_sign_in_at = now() WHERE id = $1 RETURNING last_sign_in_at`, id.ID,
	).Scan(&lastSignIn); err == nil {
		id.LastSignInAt = lastSignIn
	}
	return &id, nil
}

// validateCredentials mismas reglas que el proveedor gestionado.
func validateCredentials(email, password string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || !strings.EqualFold(addr.Address, email) {
		return domain.NewAuthError(domain.AuthCodeInvalidEmail, "email inválido", nil)
	}
	if len([]rune(password)) < minPasswordLength {
		return domain.NewAuthError(domain.AuthCodeWeakPassword,
			fmt.Sprintf("la contraseña debe tener al menos %d caracteres", minPasswordLength), nil)
	}
	return nil
}
