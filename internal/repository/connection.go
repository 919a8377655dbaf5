package repository

import (
	"context"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ConnectionRepository records investigator/device connection metadata in the control schema.
type ConnectionRepository interface {
	Create(ctx context.Context, detail *models.ConnectionDetail) error
	List(ctx context.Context) ([]models.ConnectionDetail, error)
}

type connectionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewConnectionRepository creates a new connection-details repository
func NewConnectionRepository(db *sqlx.DB, logger *zap.Logger) ConnectionRepository {
	return &connectionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *connectionRepository) Create(ctx context.Context, detail *models.ConnectionDetail) error {
	query := `
		INSERT INTO connection_details (device_name, connector_id, additional_info, investigator_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		detail.DeviceName,
		detail.ConnectorID,
		detail.AdditionalInfo,
		detail.InvestigatorID,
	).Scan(&detail.ID, &detail.CreatedAt, &detail.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create connection detail", zap.String("device_name", detail.DeviceName), zap.Error(err))
		return err
	}
	return nil
}

func (r *connectionRepository) List(ctx context.Context) ([]models.ConnectionDetail, error) {
	details := []models.ConnectionDetail{}
	query := `
		SELECT id, device_name, connector_id, additional_info, investigator_id, created_at, updated_at
		FROM connection_details
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		r.logger.Error("Failed to list connection details", zap.Error(err))
		return nil, err
	}
	return details, nil
}
