package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
)

const reviewColumns = `id, team_id, stage, department, section, is_completed, completed_on, result, marks, created_at`

// ReviewRepository manages persistence for reviews and their attachments.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ListScoped returns reviews in scope, newest first. A mentor scope
// resolves through team ownership.
func (r *ReviewRepository) ListScoped(ctx context.Context, scope policy.Scope) ([]models.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews`, reviewColumns)
	var conditions []string
	var args []interface{}
	if scope.Department != "" {
		args = append(args, scope.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}
	if scope.Section != "" {
		args = append(args, scope.Section)
		conditions = append(conditions, fmt.Sprintf("section = $%d", len(args)))
	}
	if scope.MentorID != "" {
		args = append(args, scope.MentorID)
		conditions = append(conditions, fmt.Sprintf("team_id IN (SELECT team_id FROM teams WHERE mentor = $%d)", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var reviews []models.Review
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// ListByTeam returns a team's reviews. Ascending order serves diary
// narration; descending serves dashboards.
func (r *ReviewRepository) ListByTeam(ctx context.Context, teamID string, ascending bool) ([]models.Review, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE team_id = $1 ORDER BY created_at %s`, reviewColumns, order)
	var reviews []models.Review
	if err := r.db.SelectContext(ctx, &reviews, query, teamID); err != nil {
		return nil, fmt.Errorf("list reviews by team: %w", err)
	}
	return reviews, nil
}

// FindByID returns a review by identifier.
func (r *ReviewRepository) FindByID(ctx context.Context, reviewID string) (*models.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1 LIMIT 1`, reviewColumns)
	var review models.Review
	if err := r.db.GetContext(ctx, &review, query, reviewID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

// EvaluationUpdate carries the evaluator's write. Nil fields are left
// untouched.
type EvaluationUpdate struct {
	Result      *string
	Marks       *int
	IsCompleted *bool
}

// UpdateEvaluation applies an evaluation. completed_on is stamped only on
// the first transition to completed and preserved on later edits.
func (r *ReviewRepository) UpdateEvaluation(ctx context.Context, reviewID string, update EvaluationUpdate, now time.Time) error {
	var sets []string
	var args []interface{}
	args = append(args, reviewID)

	if update.Result != nil {
		args = append(args, *update.Result)
		sets = append(sets, fmt.Sprintf("result = $%d", len(args)))
	}
	if update.Marks != nil {
		args = append(args, *update.Marks)
		sets = append(sets, fmt.Sprintf("marks = $%d", len(args)))
	}
	if update.IsCompleted != nil {
		args = append(args, *update.IsCompleted)
		sets = append(sets, fmt.Sprintf("is_completed = $%d", len(args)))
		if *update.IsCompleted {
			args = append(args, now)
			sets = append(sets, fmt.Sprintf("completed_on = COALESCE(completed_on, $%d)", len(args)))
		}
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE reviews SET %s WHERE id = $1`, strings.Join(sets, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update review evaluation: %w", err)
	}
	return nil
}

// BulkCreate inserts one pending review per team for a schedule fan-out.
func (r *ReviewRepository) BulkCreate(ctx context.Context, teamIDs []string, stage, department string, section *string) (int, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}
	const query = `INSERT INTO reviews (id, team_id, stage, department, section, is_completed, completed_on, result, marks, created_at)
		VALUES (:id, :team_id, :stage, :department, :section, FALSE, NULL, NULL, NULL, :created_at)`

	now := time.Now().UTC()
	rows := make([]models.Review, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		rows = append(rows, models.Review{
			ID:         uuid.NewString(),
			TeamID:     teamID,
			Stage:      stage,
			Department: department,
			Section:    section,
			CreatedAt:  now,
		})
	}
	if _, err := r.db.NamedExecContext(ctx, query, rows); err != nil {
		return 0, fmt.Errorf("bulk create reviews: %w", err)
	}
	return len(rows), nil
}

// AttachmentsByReview returns a review's attachments, newest first.
func (r *ReviewRepository) AttachmentsByReview(ctx context.Context, reviewID string) ([]models.ReviewAttachment, error) {
	const query = `SELECT id, review_id, name, link, created_at FROM review_attachments WHERE review_id = $1 ORDER BY created_at DESC`
	var attachments []models.ReviewAttachment
	if err := r.db.SelectContext(ctx, &attachments, query, reviewID); err != nil {
		return nil, fmt.Errorf("list review attachments: %w", err)
	}
	return attachments, nil
}
