package repository

import (
	"context"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// MessageRepository defines the interface for SMS persistence in a device namespace.
type MessageRepository interface {
	Replace(ctx context.Context, messages []models.Message) error
	All(ctx context.Context) ([]models.Message, error)
	AddressCounts(ctx context.Context) ([]models.AddressCount, error)
	Search(ctx context.Context, pattern string) ([]models.Message, error)
	Stats(ctx context.Context) (models.MessageStats, error)
	WithURLs(ctx context.Context) ([]models.Message, error)
}

type messageRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *sqlx.DB, logger *zap.Logger) MessageRepository {
	return &messageRepository{
		db:     db,
		logger: logger,
	}
}

const messageColumns = `id, address, date, direction, body, is_suspicious, category, sentiment_emoji, contact_name, created_at`

func (r *messageRepository) Replace(ctx context.Context, messages []models.Message) error {
	query := `
		INSERT INTO messages (address, date, direction, body, is_suspicious, category, sentiment_emoji, contact_name)
		VALUES (:address, :date, :direction, :body, :is_suspicious, :category, :sentiment_emoji, :contact_name)
	`
	if err := replaceAll(ctx, r.db, "messages", query, messages); err != nil {
		r.logger.Error("Failed to replace messages", zap.Int("count", len(messages)), zap.Error(err))
		return err
	}
	return nil
}

func (r *messageRepository) All(ctx context.Context) ([]models.Message, error) {
	messages := []models.Message{}
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY date DESC NULLS LAST, id`

	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		r.logger.Error("Failed to get messages", zap.Error(err))
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) AddressCounts(ctx context.Context) ([]models.AddressCount, error) {
	counts := []models.AddressCount{}
	query := `
		SELECT address, COUNT(*) AS total_messages
		FROM messages
		GROUP BY address
		ORDER BY total_messages DESC, address
	`

	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		r.logger.Error("Failed to get message counts by address", zap.Error(err))
		return nil, err
	}
	return counts, nil
}

func (r *messageRepository) Search(ctx context.Context, pattern string) ([]models.Message, error) {
	messages := []models.Message{}
	query := `SELECT ` + messageColumns + ` FROM messages WHERE body ~* $1 OR address ~* $1 ORDER BY date DESC NULLS LAST, id`

	if err := r.db.SelectContext(ctx, &messages, query, pattern); err != nil {
		r.logger.Error("Failed to search messages", zap.String("pattern", pattern), zap.Error(err))
		return nil, searchError(err)
	}
	return messages, nil
}

func (r *messageRepository) Stats(ctx context.Context) (models.MessageStats, error) {
	var stats models.MessageStats
	query := `
		SELECT
			COUNT(*) AS total_messages,
			COUNT(*) FILTER (WHERE is_suspicious) AS suspicious_messages,
			COUNT(*) FILTER (WHERE category = 'fraud') AS fraud,
			COUNT(*) FILTER (WHERE category = 'criminal') AS criminal,
			COUNT(*) FILTER (WHERE category = 'cyberbullying') AS cyberbullying,
			COUNT(*) FILTER (WHERE category = 'threat') AS threat,
			COUNT(*) FILTER (WHERE category = 'negative_sentiment') AS negative_sentiment
		FROM messages
	`

	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		r.logger.Error("Failed to get message stats", zap.Error(err))
		return stats, err
	}
	return stats, nil
}

func (r *messageRepository) WithURLs(ctx context.Context) ([]models.Message, error) {
	messages := []models.Message{}
	query := `SELECT ` + messageColumns + ` FROM messages WHERE body ~* '(http://|https://|www\.)' ORDER BY date DESC NULLS LAST, id`

	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		r.logger.Error("Failed to get messages with urls", zap.Error(err))
		return nil, err
	}
	return messages, nil
}
