package repository

import (
	"context"

	"github.com/jhoicas/goagent-api/internal/domain/entity"
)

// SignupRecordRepository puerto de persistencia del SignupRecord (clave: identity id).
type SignupRecordRepository interface {
	// Save hace upsert idempotente y completa record.CreatedAt con la hora del servidor.
	Save(ctx context.Context, record *entity.SignupRecord) error
	// GetByIdentityID devuelve nil, nil si no existe.
	GetByIdentityID(ctx context.Context, identityID string) (*entity.SignupRecord, error)
}
