package repository

import (
	"context"

	"github.com/jhoicas/goagent-api/internal/domain/entity"
)

// IdentityStore puerto hacia el proveedor de identidad (Postgres o Firebase).
type IdentityStore interface {
	// Exists consulta por email exacto. Sin efectos secundarios.
	Exists(ctx context.Context, email string) (bool, error)
	// Create crea la identidad. Si el email ya existe intenta autenticar con las
	// credenciales recibidas: si funciona devuelve la identidad existente con
	// AlreadyExists=true; si no, un *domain.AuthError con código email-already-in-use.
	Create(ctx context.Context, email, password, displayName string) (*entity.Identity, error)
	// Authenticate verifica credenciales (login).
	Authenticate(ctx context.Context, email, password string) (*entity.Identity, error)
}
