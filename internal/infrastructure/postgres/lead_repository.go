package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/goagent-api/internal/domain/entity"
	"github.com/jhoicas/goagent-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo leads sobre PostgreSQL; el payload se guarda completo en JSONB.
type LeadRepo struct {
	pool *pgxpool.Pool
}

// NewLeadRepository construye el adaptador.
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{pool: pool}
}

// Create inserta el lead; asigna ID si viene vacío y CreatedAt desde la base.
func (r *LeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	payload, err := json.Marshal(lead.Payload)
	if err != nil {
		return fmt.Errorf("serializar lead: %w", err)
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO leads (id, source, payload) VALUES ($1, $2, $3) RETURNING created_at`,
		lead.ID, lead.Source, payload,
	).Scan(&lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}
