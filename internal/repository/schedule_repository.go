package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
)

const scheduleColumns = `id, stage, department, start_date, end_date, created_at`

// ScheduleRepository manages persistence for review schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListScoped returns schedules in scope, newest first. A mentor scope
// covers the departments of the mentor's teams.
func (r *ScheduleRepository) ListScoped(ctx context.Context, scope policy.Scope) ([]models.Schedule, error) {
	query := fmt.Sprintf(`SELECT %s FROM project_reviews`, scheduleColumns)
	var args []interface{}
	switch {
	case scope.Department != "":
		args = append(args, scope.Department)
		query += " WHERE department = $1"
	case scope.MentorID != "":
		args = append(args, scope.MentorID)
		query += " WHERE department IN (SELECT DISTINCT department FROM teams WHERE mentor = $1)"
	}
	query += " ORDER BY created_at DESC"

	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// ListByDepartment returns a department's schedules, newest first.
func (r *ScheduleRepository) ListByDepartment(ctx context.Context, department string) ([]models.Schedule, error) {
	query := fmt.Sprintf(`SELECT %s FROM project_reviews WHERE department = $1 ORDER BY created_at DESC`, scheduleColumns)
	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, department); err != nil {
		return nil, fmt.Errorf("list schedules by department: %w", err)
	}
	return schedules, nil
}

// Create inserts a schedule row.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO project_reviews (id, stage, department, start_date, end_date, created_at)
		VALUES (:id, :stage, :department, :start_date, :end_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}
