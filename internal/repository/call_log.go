package repository

import (
	"context"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// CallLogRepository defines the interface for call-log persistence in a device namespace.
type CallLogRepository interface {
	Replace(ctx context.Context, calls []models.CallLogEntry) error
	All(ctx context.Context) ([]models.CallLogEntry, error)
	FindByNumber(ctx context.Context, number string) ([]models.CallLogEntry, error)
	Search(ctx context.Context, pattern string) ([]models.CallLogEntry, error)
	Stats(ctx context.Context) (models.CallStats, error)
}

type callLogRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewCallLogRepository creates a new call-log repository
func NewCallLogRepository(db *sqlx.DB, logger *zap.Logger) CallLogRepository {
	return &callLogRepository{
		db:     db,
		logger: logger,
	}
}

const callLogColumns = `id, number, date, direction, duration, created_at`

func (r *callLogRepository) Replace(ctx context.Context, calls []models.CallLogEntry) error {
	query := `
		INSERT INTO call_logs (number, date, direction, duration)
		VALUES (:number, :date, :direction, :duration)
	`
	if err := replaceAll(ctx, r.db, "call_logs", query, calls); err != nil {
		r.logger.Error("Failed to replace call logs", zap.Int("count", len(calls)), zap.Error(err))
		return err
	}
	return nil
}

func (r *callLogRepository) All(ctx context.Context) ([]models.CallLogEntry, error) {
	calls := []models.CallLogEntry{}
	query := `SELECT ` + callLogColumns + ` FROM call_logs ORDER BY date DESC NULLS LAST, id`

	if err := r.db.SelectContext(ctx, &calls, query); err != nil {
		r.logger.Error("Failed to get call logs", zap.Error(err))
		return nil, err
	}
	return calls, nil
}

func (r *callLogRepository) FindByNumber(ctx context.Context, number string) ([]models.CallLogEntry, error) {
	calls := []models.CallLogEntry{}
	query := `SELECT ` + callLogColumns + ` FROM call_logs WHERE number = $1 ORDER BY date DESC NULLS LAST, id`

	if err := r.db.SelectContext(ctx, &calls, query, number); err != nil {
		r.logger.Error("Failed to get call logs by number", zap.String("number", number), zap.Error(err))
		return nil, err
	}
	return calls, nil
}

func (r *callLogRepository) Search(ctx context.Context, pattern string) ([]models.CallLogEntry, error) {
	calls := []models.CallLogEntry{}
	query := `SELECT ` + callLogColumns + ` FROM call_logs WHERE number ~* $1 ORDER BY date DESC NULLS LAST, id`

	if err := r.db.SelectContext(ctx, &calls, query, pattern); err != nil {
		r.logger.Error("Failed to search call logs", zap.String("pattern", pattern), zap.Error(err))
		return nil, searchError(err)
	}
	return calls, nil
}

func (r *callLogRepository) Stats(ctx context.Context) (models.CallStats, error) {
	var stats models.CallStats
	query := `
		SELECT
			COUNT(*) AS total_calls,
			COUNT(*) FILTER (WHERE direction = 'incoming') AS incoming_calls,
			COUNT(*) FILTER (WHERE direction = 'outgoing') AS outgoing_calls,
			COUNT(*) FILTER (WHERE direction = 'missed') AS missed_calls
		FROM call_logs
	`

	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		r.logger.Error("Failed to get call stats", zap.Error(err))
		return stats, err
	}
	return stats, nil
}
