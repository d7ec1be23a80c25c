package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kite-portal/mentor-api/internal/models"
)

const studentColumns = `student_id, name, register_number, department, section, team_id, created_at`

// StudentRepository reads the student roster. The portal never mutates it.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID returns a student by identifier.
func (r *StudentRepository) FindByID(ctx context.Context, studentID string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE student_id = $1 LIMIT 1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// NameByID resolves a student identifier to a display name.
func (r *StudentRepository) NameByID(ctx context.Context, studentID string) (*string, error) {
	const query = `SELECT name FROM students WHERE student_id = $1 LIMIT 1`
	var name string
	if err := r.db.GetContext(ctx, &name, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("student name by id: %w", err)
	}
	return &name, nil
}

// ListByTeam returns all students belonging to a team.
func (r *StudentRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE team_id = $1 ORDER BY name`, studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, teamID); err != nil {
		return nil, fmt.Errorf("list students by team: %w", err)
	}
	return students, nil
}

// ListByIDs returns the named students ordered by name.
func (r *StudentRepository) ListByIDs(ctx context.Context, studentIDs []string) ([]models.Student, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf(`SELECT %s FROM students WHERE student_id IN (?) ORDER BY name`, studentColumns), studentIDs)
	if err != nil {
		return nil, fmt.Errorf("list students by ids: %w", err)
	}
	query = r.db.Rebind(query)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students by ids: %w", err)
	}
	return students, nil
}
