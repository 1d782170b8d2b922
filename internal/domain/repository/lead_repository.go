package repository

import (
	"context"

	"github.com/jhoicas/goagent-api/internal/domain/entity"
)

// LeadRepository puerto de persistencia para leads.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
}
