package repository

import (
	"context"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ContactRepository defines the interface for contact persistence in a device namespace.
type ContactRepository interface {
	Replace(ctx context.Context, contacts []models.Contact) error
	All(ctx context.Context) ([]models.Contact, error)
	Search(ctx context.Context, pattern string) ([]models.Contact, error)
	Count(ctx context.Context) (int, error)
}

type contactRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *sqlx.DB, logger *zap.Logger) ContactRepository {
	return &contactRepository{
		db:     db,
		logger: logger,
	}
}

func (r *contactRepository) Replace(ctx context.Context, contacts []models.Contact) error {
	query := `INSERT INTO contacts (display_name, number) VALUES (:display_name, :number)`
	if err := replaceAll(ctx, r.db, "contacts", query, contacts); err != nil {
		r.logger.Error("Failed to replace contacts", zap.Int("count", len(contacts)), zap.Error(err))
		return err
	}
	return nil
}

func (r *contactRepository) All(ctx context.Context) ([]models.Contact, error) {
	contacts := []models.Contact{}
	query := `SELECT id, display_name, number, created_at FROM contacts ORDER BY id`

	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		r.logger.Error("Failed to get contacts", zap.Error(err))
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) Search(ctx context.Context, pattern string) ([]models.Contact, error) {
	contacts := []models.Contact{}
	query := `
		SELECT id, display_name, number, created_at
		FROM contacts
		WHERE display_name ~* $1 OR number ~* $1
		ORDER BY id
	`

	if err := r.db.SelectContext(ctx, &contacts, query, pattern); err != nil {
		r.logger.Error("Failed to search contacts", zap.String("pattern", pattern), zap.Error(err))
		return nil, searchError(err)
	}
	return contacts, nil
}

func (r *contactRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM contacts`); err != nil {
		r.logger.Error("Failed to count contacts", zap.Error(err))
		return 0, err
	}
	return count, nil
}
