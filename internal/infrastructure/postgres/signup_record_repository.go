package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/goagent-api/internal/domain/entity"
	"github.com/jhoicas/goagent-api/internal/domain/repository"
)

var _ repository.SignupRecordRepository = (*SignupRecordRepo)(nil)

// SignupRecordRepo SignupRecord sobre PostgreSQL; los snapshots van en columnas JSONB.
type SignupRecordRepo struct {
	pool *pgxpool.Pool
}

// NewSignupRecordRepository construye el adaptador.
func NewSignupRecordRepository(pool *pgxpool.Pool) *SignupRecordRepo {
	return &SignupRecordRepo{pool: pool}
}

// Save upsert por identity_id. created_at lo asigna la base en el primer insert y
// no cambia en los siguientes.
func (r *SignupRecordRepo) Save(ctx context.Context, rec *entity.SignupRecord) error {
	org, err := marshalSnapshot(rec.Organization)
	if err != nil {
		return fmt.Errorf("serializar organization: %w", err)
	}
	client, err := marshalSnapshot(rec.Client)
	if err != nil {
		return fmt.Errorf("serializar client: %w", err)
	}
	agent, err := marshalSnapshot(rec.ClonedAgent)
	if err != nil {
		return fmt.Errorf("serializar cloned_agent: %w", err)
	}

	query := `
		INSERT INTO signup_records (identity_id, name, email, business_type, plan, organization, client, cloned_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (identity_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			business_type = EXCLUDED.business_type,
			plan = EXCLUDED.plan,
			organization = EXCLUDED.organization,
			client = EXCLUDED.client,
			cloned_agent = EXCLUDED.cloned_agent,
			updated_at = now()
		RETURNING created_at`
	err = r.pool.QueryRow(ctx, query,
		rec.IdentityID, rec.Name, rec.Email, string(rec.BusinessType), rec.Plan, org, client, agent,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert signup record: %w", err)
	}
	return nil
}

// GetByIdentityID devuelve nil, nil si no existe.
func (r *SignupRecordRepo) GetByIdentityID(ctx context.Context, identityID string) (*entity.SignupRecord, error) {
	query := `
		SELECT identity_id, name, email, business_type, plan, organization, client, cloned_agent, created_at
		FROM signup_records WHERE identity_id = $1`
	var (
		rec                entity.SignupRecord
		bt                 string
		org, client, agent []byte
	)
	err := r.pool.QueryRow(ctx, query, identityID).Scan(
		&rec.IdentityID, &rec.Name, &rec.Email, &bt, &rec.Plan, &org, &client, &agent, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get signup record: %w", err)
	}
	rec.BusinessType = entity.BusinessType(bt)

	if rec.Organization, err = unmarshalSnapshot[entity.Organization](org); err != nil {
		return nil, fmt.Errorf("leer organization: %w", err)
	}
	if rec.Client, err = unmarshalSnapshot[entity.Client](client); err != nil {
		return nil, fmt.Errorf("leer client: %w", err)
	}
	if rec.ClonedAgent, err = unmarshalSnapshot[entity.ClonedAgent](agent); err != nil {
		return nil, fmt.Errorf("leer cloned_agent: %w", err)
	}
	return &rec, nil
}
