// FilePath: internal/repository/postgres/postgres.sensor_events.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/luxhub/twilight-hub/internal/database"
	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type SensorEventRepo struct {
	PostgresBaseRepo
}

func NewSensorEventRepository(db database.DB) (*SensorEventRepo, error) {
	repo := &SensorEventRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SensorEventRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sensor_events (
			id BIGSERIAL PRIMARY KEY,
			lux DOUBLE PRECISION NOT NULL,
			relay_status BOOLEAN NOT NULL DEFAULT FALSE,
			mode TEXT NOT NULL CHECK (mode IN ('auto', 'manual')),
			threshold_low INTEGER NOT NULL DEFAULT 100,
			threshold_high INTEGER NOT NULL DEFAULT 500,
			manual_relay_state BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// newest-first is the only access order
		`CREATE INDEX IF NOT EXISTS idx_sensor_events_created_at
			ON sensor_events (created_at DESC, id DESC)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize sensor_events schema", err)
		}
	}
	return nil
}

// Append inserts a new event row and fills in the assigned id and
// created_at. Rows are never updated afterwards.
func (r *SensorEventRepo) Append(ctx context.Context, event *models.SensorEvent) error {
	query := `
		INSERT INTO sensor_events (
			lux, relay_status, mode, threshold_low, threshold_high, manual_relay_state
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.GetDB().QueryRowxContext(ctx, query,
		event.Lux, event.RelayStatus, event.Mode,
		event.ThresholdLow, event.ThresholdHigh, event.ManualRelayState,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return errors.NewDatabaseError("failed to append sensor event", err)
	}
	return nil
}

// Latest returns the most recent event, ties on created_at broken by id.
func (r *SensorEventRepo) Latest(ctx context.Context) (*models.SensorEvent, error) {
	event := &models.SensorEvent{}
	query := `
		SELECT * FROM sensor_events
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, event, query)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("no sensor events recorded yet", err)
		}
		return nil, errors.NewDatabaseError("failed to get latest sensor event", err)
	}
	return event, nil
}

// List returns one page of events newest-first plus the total row count.
func (r *SensorEventRepo) List(ctx context.Context, page, limit int) ([]*models.SensorEvent, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	events := []*models.SensorEvent{}
	query := `
		SELECT * FROM sensor_events
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	offset := (page - 1) * limit
	if err := r.db.GetDB().SelectContext(ctx, &events, query, limit, offset); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to list sensor events", err)
	}
	return events, total, nil
}

func (r *SensorEventRepo) ByDateRange(ctx context.Context, start, end time.Time) ([]*models.SensorEvent, error) {
	events := []*models.SensorEvent{}
	query := `
		SELECT * FROM sensor_events
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC, id DESC`

	if err := r.db.GetDB().SelectContext(ctx, &events, query, start, end); err != nil {
		return nil, errors.NewDatabaseError("failed to get sensor events by range", err)
	}
	return events, nil
}

// ClearAllButLatest deletes history while preserving the newest row, so the
// current configuration survives a clear. No-op on an empty table.
func (r *SensorEventRepo) ClearAllButLatest(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM sensor_events
		WHERE id NOT IN (
			SELECT id FROM sensor_events
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)`

	result, err := r.db.GetDB().ExecContext(ctx, query)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to clear sensor event history", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}

	nuts.L.Infof("[SensorEventRepo] Cleared %d historic sensor events", rows)
	return rows, nil
}

func (r *SensorEventRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetDB().GetContext(ctx, &total, `SELECT COUNT(*) FROM sensor_events`); err != nil {
		return 0, errors.NewDatabaseError("failed to count sensor events", err)
	}
	return total, nil
}

// Stats aggregates over the full table, not a page.
func (r *SensorEventRepo) Stats(ctx context.Context) (*models.SensorStatsReport, error) {
	stats := &models.SensorStats{}
	query := `
		SELECT
			COALESCE(AVG(lux), 0) AS avg_lux,
			COALESCE(MAX(lux), 0) AS max_lux,
			COALESCE(MIN(lux), 0) AS min_lux,
			COUNT(id) AS total_records
		FROM sensor_events`

	if err := r.db.GetDB().GetContext(ctx, stats, query); err != nil {
		return nil, errors.NewDatabaseError("failed to get sensor stats", err)
	}

	relay := []models.RelayCount{}
	query = `
		SELECT relay_status, COUNT(id) AS count
		FROM sensor_events
		GROUP BY relay_status`
	if err := r.db.GetDB().SelectContext(ctx, &relay, query); err != nil {
		return nil, errors.NewDatabaseError("failed to get relay distribution", err)
	}

	mode := []models.ModeCount{}
	query = `
		SELECT mode, COUNT(id) AS count
		FROM sensor_events
		GROUP BY mode`
	if err := r.db.GetDB().SelectContext(ctx, &mode, query); err != nil {
		return nil, errors.NewDatabaseError("failed to get mode distribution", err)
	}

	return &models.SensorStatsReport{
		Stats:             stats,
		RelayDistribution: relay,
		ModeDistribution:  mode,
	}, nil
}
