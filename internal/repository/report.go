package repository

import (
	"context"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ReportRepository persists immutable short-report snapshots.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	List(ctx context.Context) ([]models.Report, error)
}

type reportRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB, logger *zap.Logger) ReportRepository {
	return &reportRepository{
		db:     db,
		logger: logger,
	}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (
			id, case_number, remark, device_name, investigator_id, total_contacts,
			total_messages, suspicious_messages, fraud, criminal, cyberbullying, threat, negative_sentiment,
			total_calls, incoming_calls, outgoing_calls, missed_calls
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		report.ID,
		report.CaseNumber,
		report.Remark,
		report.DeviceName,
		report.InvestigatorID,
		report.TotalContacts,
		report.TotalMessages,
		report.SuspiciousMessages,
		report.Fraud,
		report.Criminal,
		report.Cyberbullying,
		report.Threat,
		report.NegativeSentiment,
		report.TotalCalls,
		report.IncomingCalls,
		report.OutgoingCalls,
		report.MissedCalls,
	).Scan(&report.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create report", zap.String("case_number", report.CaseNumber), zap.Error(err))
		return err
	}
	return nil
}

func (r *reportRepository) List(ctx context.Context) ([]models.Report, error) {
	reports := []models.Report{}
	query := `
		SELECT id, case_number, remark, device_name, investigator_id, total_contacts,
			total_messages, suspicious_messages, fraud, criminal, cyberbullying, threat, negative_sentiment,
			total_calls, incoming_calls, outgoing_calls, missed_calls, created_at
		FROM reports
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		r.logger.Error("Failed to list reports", zap.Error(err))
		return nil, err
	}
	return reports, nil
}
