package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
)

const teamColumns = `team_id, topic, code, department, section, team_lead, mentor, is_approved, current_status, created_at`

// TeamRepository manages persistence for teams.
type TeamRepository struct {
	db *sqlx.DB
}

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// scopeConditions renders a policy scope into WHERE fragments. MentorID
// filters directly on the mentor column for teams.
func teamScopeConditions(scope policy.Scope, args *[]interface{}) []string {
	var conditions []string
	if scope.Department != "" {
		*args = append(*args, scope.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(*args)))
	}
	if scope.Section != "" {
		*args = append(*args, scope.Section)
		conditions = append(conditions, fmt.Sprintf("section = $%d", len(*args)))
	}
	if scope.MentorID != "" {
		*args = append(*args, scope.MentorID)
		conditions = append(conditions, fmt.Sprintf("mentor = $%d", len(*args)))
	}
	return conditions
}

// ListScoped returns teams inside the given scope, newest first.
func (r *TeamRepository) ListScoped(ctx context.Context, scope policy.Scope) ([]models.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams`, teamColumns)
	var args []interface{}
	if conditions := teamScopeConditions(scope, &args); len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var teams []models.Team
	if err := r.db.SelectContext(ctx, &teams, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

// FindByID returns a team by identifier.
func (r *TeamRepository) FindByID(ctx context.Context, teamID string) (*models.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE team_id = $1 LIMIT 1`, teamColumns)
	var team models.Team
	if err := r.db.GetContext(ctx, &team, query, teamID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find team: %w", err)
	}
	return &team, nil
}

// IDsByMentor returns the team identifiers mentored by a staff member.
func (r *TeamRepository) IDsByMentor(ctx context.Context, staffID string) ([]string, error) {
	const query = `SELECT team_id FROM teams WHERE mentor = $1`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, staffID); err != nil {
		return nil, fmt.Errorf("team ids by mentor: %w", err)
	}
	return ids, nil
}

// DepartmentsByMentor returns the distinct departments of mentored teams.
func (r *TeamRepository) DepartmentsByMentor(ctx context.Context, staffID string) ([]string, error) {
	const query = `SELECT DISTINCT department FROM teams WHERE mentor = $1 ORDER BY department`
	var departments []string
	if err := r.db.SelectContext(ctx, &departments, query, staffID); err != nil {
		return nil, fmt.Errorf("team departments by mentor: %w", err)
	}
	return departments, nil
}

// ApprovedTeamIDs returns approved teams in a department, optionally
// narrowed to one section. Used by schedule fan-out.
func (r *TeamRepository) ApprovedTeamIDs(ctx context.Context, department, section string) ([]string, error) {
	query := `SELECT team_id FROM teams WHERE department = $1 AND is_approved = TRUE`
	args := []interface{}{department}
	if section != "" {
		args = append(args, section)
		query += fmt.Sprintf(" AND section = $%d", len(args))
	}
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("approved team ids: %w", err)
	}
	return ids, nil
}

// UpdateApproval sets the team approval flag. Repeating a decision
// rewrites the same value.
func (r *TeamRepository) UpdateApproval(ctx context.Context, teamID string, approved bool) error {
	const query = `UPDATE teams SET is_approved = $2 WHERE team_id = $1`
	if _, err := r.db.ExecContext(ctx, query, teamID, approved); err != nil {
		return fmt.Errorf("update team approval: %w", err)
	}
	return nil
}

// AssignMentor sets the team's mentor.
func (r *TeamRepository) AssignMentor(ctx context.Context, teamID, mentorID string) error {
	const query = `UPDATE teams SET mentor = $2 WHERE team_id = $1`
	if _, err := r.db.ExecContext(ctx, query, teamID, mentorID); err != nil {
		return fmt.Errorf("assign mentor: %w", err)
	}
	return nil
}

// MentorTeamCount is a mentoring load row.
type MentorTeamCount struct {
	Mentor string `db:"mentor"`
	Count  int    `db:"count"`
}

// CountByMentor returns how many teams each assigned mentor carries.
func (r *TeamRepository) CountByMentor(ctx context.Context) ([]MentorTeamCount, error) {
	const query = `SELECT mentor, COUNT(*) AS count FROM teams WHERE mentor IS NOT NULL GROUP BY mentor`
	var counts []MentorTeamCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count teams by mentor: %w", err)
	}
	return counts, nil
}
