package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
)

const worklogColumns = `id, student_id, team_id, date, expected_task, completed_task, comments, mentor_approved, created_at`

// WorkLogRepository manages persistence for student activity logs.
type WorkLogRepository struct {
	db *sqlx.DB
}

// NewWorkLogRepository creates a new WorkLogRepository.
func NewWorkLogRepository(db *sqlx.DB) *WorkLogRepository {
	return &WorkLogRepository{db: db}
}

// FindByID returns a log by identifier.
func (r *WorkLogRepository) FindByID(ctx context.Context, logID string) (*models.WorkLog, error) {
	query := fmt.Sprintf(`SELECT %s FROM logs WHERE id = $1 LIMIT 1`, worklogColumns)
	var log models.WorkLog
	if err := r.db.GetContext(ctx, &log, query, logID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find log: %w", err)
	}
	return &log, nil
}

// PendingByTeams returns unreviewed logs across the given teams, newest
// first, enriched with student and team context.
func (r *WorkLogRepository) PendingByTeams(ctx context.Context, teamIDs []string) ([]dto.PendingLog, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT
		l.id, l.created_at, l.date, l.expected_task, l.completed_task, l.comments,
		l.student_id, s.name AS student_name,
		l.team_id, t.topic AS team_topic, t.code AS team_code
	FROM logs l
	LEFT JOIN students s ON s.student_id = l.student_id
	LEFT JOIN teams t ON t.team_id = l.team_id
	WHERE l.team_id IN (?) AND l.mentor_approved IS NULL
	ORDER BY l.created_at DESC`, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("pending logs: %w", err)
	}
	query = r.db.Rebind(query)

	var logs []dto.PendingLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("pending logs: %w", err)
	}
	return logs, nil
}

// ByStudent returns one student's logs across the given teams, date
// descending, with team context.
func (r *WorkLogRepository) ByStudent(ctx context.Context, studentID string, teamIDs []string) ([]dto.StudentLog, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT
		l.id, l.created_at, l.date, l.expected_task, l.completed_task, l.comments, l.mentor_approved,
		l.team_id, t.topic AS team_topic, t.code AS team_code
	FROM logs l
	LEFT JOIN teams t ON t.team_id = l.team_id
	WHERE l.student_id = ? AND l.team_id IN (?)
	ORDER BY l.date DESC`, studentID, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("logs by student: %w", err)
	}
	query = r.db.Rebind(query)

	var logs []dto.StudentLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("logs by student: %w", err)
	}
	return logs, nil
}

// StudentIDsWithLogs returns the distinct students who wrote logs in the
// given teams.
func (r *WorkLogRepository) StudentIDsWithLogs(ctx context.Context, teamIDs []string) ([]string, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT DISTINCT student_id FROM logs WHERE team_id IN (?) ORDER BY student_id`, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("students with logs: %w", err)
	}
	query = r.db.Rebind(query)

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("students with logs: %w", err)
	}
	return ids, nil
}

// ByTeamAscending returns a team's logs in date order with author names,
// the order the diary narrates them in.
func (r *WorkLogRepository) ByTeamAscending(ctx context.Context, teamID string) ([]dto.DiaryLog, error) {
	const query = `SELECT
		l.id, l.student_id, l.team_id, l.date, l.expected_task, l.completed_task,
		l.comments, l.mentor_approved, l.created_at,
		s.name AS student_name
	FROM logs l
	LEFT JOIN students s ON s.student_id = l.student_id
	WHERE l.team_id = $1
	ORDER BY l.date ASC`
	var logs []dto.DiaryLog
	if err := r.db.SelectContext(ctx, &logs, query, teamID); err != nil {
		return nil, fmt.Errorf("logs by team: %w", err)
	}
	return logs, nil
}

// Approve writes the mentor decision and optional comments.
func (r *WorkLogRepository) Approve(ctx context.Context, logID string, approved bool, comments *string) error {
	if comments != nil {
		const query = `UPDATE logs SET mentor_approved = $2, comments = $3 WHERE id = $1`
		if _, err := r.db.ExecContext(ctx, query, logID, approved, *comments); err != nil {
			return fmt.Errorf("approve log: %w", err)
		}
		return nil
	}
	const query = `UPDATE logs SET mentor_approved = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, logID, approved); err != nil {
		return fmt.Errorf("approve log: %w", err)
	}
	return nil
}
