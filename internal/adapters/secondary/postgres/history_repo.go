package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nomogram-service/internal/core/domain"
	ports "nomogram-service/internal/core/ports/output"
)

const historySchema = `
	CREATE TABLE IF NOT EXISTS nomogram_history (
		id               UUID PRIMARY KEY,
		created_at       TIMESTAMPTZ NOT NULL,
		request_id       TEXT NOT NULL DEFAULT '',
		model_name       TEXT NOT NULL,
		model_version    TEXT NOT NULL DEFAULT '',
		covariates       JSONB NOT NULL,
		linear_predictor DOUBLE PRECISION NOT NULL,
		risk_score       DOUBLE PRECISION NOT NULL,
		survivals        JSONB NOT NULL,
		risk_category    TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS nomogram_history_created_at_idx ON nomogram_history (created_at DESC);
`

type historyRepo struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) ports.HistoryRepository {
	return &historyRepo{pool: pool}
}

// Migrate creates the history table if it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, historySchema); err != nil {
		return fmt.Errorf("migrate history schema: %w", err)
	}
	return nil
}

func (r *historyRepo) Append(ctx context.Context, record *domain.HistoryRecord) error {
	covJSON, err := json.Marshal(record.Covariates)
	if err != nil {
		return fmt.Errorf("marshal covariates: %w", err)
	}
	survJSON, err := json.Marshal(record.Survivals)
	if err != nil {
		return fmt.Errorf("marshal survivals: %w", err)
	}

	query := `
		INSERT INTO nomogram_history
			(id, created_at, request_id, model_name, model_version,
			 covariates, linear_predictor, risk_score, survivals, risk_category)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	_, err = r.pool.Exec(ctx, query,
		record.ID, record.CreatedAt, record.RequestID,
		record.ModelName, record.ModelVersion,
		covJSON, record.LinearPredictor, record.RiskScore,
		survJSON, string(record.RiskCategory),
	)
	if err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

func (r *historyRepo) Get(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	query := `
		SELECT id, created_at, request_id, model_name, model_version,
			   covariates, linear_predictor, risk_score, survivals, risk_category
		FROM nomogram_history
		WHERE id = $1
	`
	rec, err := scanRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get history record: %w", err)
	}
	return rec, nil
}

func (r *historyRepo) List(ctx context.Context, filter ports.HistoryFilter) ([]*domain.HistoryRecord, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM nomogram_history").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history records: %w", err)
	}

	query := `
		SELECT id, created_at, request_id, model_name, model_version,
			   covariates, linear_predictor, risk_score, survivals, risk_category
		FROM nomogram_history
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list history records: %w", err)
	}
	defer rows.Close()

	records := []*domain.HistoryRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan history row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate history rows: %w", err)
	}

	return records, total, nil
}

func (r *historyRepo) All(ctx context.Context) ([]*domain.HistoryRecord, error) {
	query := `
		SELECT id, created_at, request_id, model_name, model_version,
			   covariates, linear_predictor, risk_score, survivals, risk_category
		FROM nomogram_history
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all history records: %w", err)
	}
	defer rows.Close()

	records := []*domain.HistoryRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return records, nil
}

func (r *historyRepo) Clear(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx, "DELETE FROM nomogram_history")
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return result.RowsAffected(), nil
}

func scanRecord(row pgx.Row) (*domain.HistoryRecord, error) {
	var (
		rec      domain.HistoryRecord
		covJSON  []byte
		survJSON []byte
		category string
	)
	err := row.Scan(
		&rec.ID, &rec.CreatedAt, &rec.RequestID, &rec.ModelName, &rec.ModelVersion,
		&covJSON, &rec.LinearPredictor, &rec.RiskScore, &survJSON, &category,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(covJSON, &rec.Covariates); err != nil {
		return nil, fmt.Errorf("unmarshal covariates: %w", err)
	}
	if err := json.Unmarshal(survJSON, &rec.Survivals); err != nil {
		return nil, fmt.Errorf("unmarshal survivals: %w", err)
	}
	rec.RiskCategory = domain.RiskCategory(category)
	return &rec, nil
}
