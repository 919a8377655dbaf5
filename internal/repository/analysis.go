package repository

import (
	"context"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// TimelineRepository stores the latest day-bucketed timeline.
type TimelineRepository interface {
	Replace(ctx context.Context, entries []models.TimelineEntry) error
}

// CorrelationRepository stores the latest number correlation.
type CorrelationRepository interface {
	Replace(ctx context.Context, entries []models.CorrelationEntry) error
}

// URLFindingRepository stores messages whose URLs matched a spam pattern.
type URLFindingRepository interface {
	Replace(ctx context.Context, findings []models.URLFinding) error
}

type timelineRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTimelineRepository(db *sqlx.DB, logger *zap.Logger) TimelineRepository {
	return &timelineRepository{db: db, logger: logger}
}

func (r *timelineRepository) Replace(ctx context.Context, entries []models.TimelineEntry) error {
	query := `
		INSERT INTO timeline_analysis (date, total_messages, suspicious_messages, total_calls, incoming_calls, outgoing_calls, missed_calls)
		VALUES (:date, :total_messages, :suspicious_messages, :total_calls, :incoming_calls, :outgoing_calls, :missed_calls)
	`
	if err := replaceAll(ctx, r.db, "timeline_analysis", query, entries); err != nil {
		r.logger.Error("Failed to replace timeline", zap.Int("days", len(entries)), zap.Error(err))
		return err
	}
	return nil
}

type correlationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCorrelationRepository(db *sqlx.DB, logger *zap.Logger) CorrelationRepository {
	return &correlationRepository{db: db, logger: logger}
}

func (r *correlationRepository) Replace(ctx context.Context, entries []models.CorrelationEntry) error {
	query := `
		INSERT INTO data_correlations (number, sms_count, messages, call_logs)
		VALUES (:number, :sms_count, :messages, :call_logs)
	`
	if err := replaceAll(ctx, r.db, "data_correlations", query, entries); err != nil {
		r.logger.Error("Failed to replace data correlations", zap.Int("groups", len(entries)), zap.Error(err))
		return err
	}
	return nil
}

type urlFindingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewURLFindingRepository(db *sqlx.DB, logger *zap.Logger) URLFindingRepository {
	return &urlFindingRepository{db: db, logger: logger}
}

func (r *urlFindingRepository) Replace(ctx context.Context, findings []models.URLFinding) error {
	query := `
		INSERT INTO spam_url_analysis (sender, date, body, urls)
		VALUES (:sender, :date, :body, :urls)
	`
	if err := replaceAll(ctx, r.db, "spam_url_analysis", query, findings); err != nil {
		r.logger.Error("Failed to replace spam url findings", zap.Int("count", len(findings)), zap.Error(err))
		return err
	}
	return nil
}
