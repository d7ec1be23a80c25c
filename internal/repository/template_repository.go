package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kite-portal/mentor-api/internal/models"
)

// TemplateRepository manages the review template registry.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create registers a template document.
func (r *TemplateRepository) Create(ctx context.Context, template *models.ReviewTemplate) error {
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	if template.CreatedAt.IsZero() {
		template.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO review_templates (id, name, link, review, created_at)
		VALUES (:id, :name, :link, :review, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, template); err != nil {
		return fmt.Errorf("create review template: %w", err)
	}
	return nil
}

// List returns templates, newest first, optionally filtered by stage.
func (r *TemplateRepository) List(ctx context.Context, review string) ([]models.ReviewTemplate, error) {
	query := `SELECT id, name, link, review, created_at FROM review_templates`
	var args []interface{}
	if review != "" {
		args = append(args, review)
		query += " WHERE review = $1"
	}
	query += " ORDER BY created_at DESC"

	var templates []models.ReviewTemplate
	if err := r.db.SelectContext(ctx, &templates, query, args...); err != nil {
		return nil, fmt.Errorf("list review templates: %w", err)
	}
	return templates, nil
}
