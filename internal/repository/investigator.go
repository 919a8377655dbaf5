package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// InvestigatorRepository handles investigator accounts in the control schema.
type InvestigatorRepository interface {
	Create(ctx context.Context, investigator *models.Investigator) error
	GetByUsername(ctx context.Context, username string) (*models.Investigator, error)
	Count(ctx context.Context) (int, error)
}

type investigatorRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewInvestigatorRepository creates a new investigator repository
func NewInvestigatorRepository(db *sqlx.DB, logger *zap.Logger) InvestigatorRepository {
	return &investigatorRepository{
		db:     db,
		logger: logger,
	}
}

func (r *investigatorRepository) Create(ctx context.Context, investigator *models.Investigator) error {
	query := `
		INSERT INTO investigators (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, investigator.Username, investigator.PasswordHash, investigator.Role).
		Scan(&investigator.ID, &investigator.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create investigator", zap.String("username", investigator.Username), zap.Error(err))
		return err
	}
	return nil
}

// GetByUsername returns nil, nil when no investigator has that username.
func (r *investigatorRepository) GetByUsername(ctx context.Context, username string) (*models.Investigator, error) {
	var investigator models.Investigator
	query := `SELECT id, username, password_hash, role, created_at FROM investigators WHERE username = $1`

	err := r.db.GetContext(ctx, &investigator, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get investigator by username", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return &investigator, nil
}

func (r *investigatorRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM investigators`); err != nil {
		r.logger.Error("Failed to count investigators", zap.Error(err))
		return 0, err
	}
	return count, nil
}
