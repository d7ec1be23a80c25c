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

const projectColumns = `p.project_id, p.title, p.team_id, p.theme, p.is_approved, p.is_hod_approved, p.created_at`

// ProjectRepository manages persistence for projects.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ProjectWithTeam is a project row joined with its team's scope fields.
type ProjectWithTeam struct {
	models.Project
	TeamDepartment string  `db:"team_department"`
	TeamSection    string  `db:"team_section"`
	TeamMentor     *string `db:"team_mentor"`
	TeamLead       *string `db:"team_lead"`
}

// ListScoped returns projects whose team falls inside the scope.
func (r *ProjectRepository) ListScoped(ctx context.Context, scope policy.Scope) ([]ProjectWithTeam, error) {
	query := fmt.Sprintf(`SELECT %s,
		t.department AS team_department,
		t.section AS team_section,
		t.mentor AS team_mentor,
		t.team_lead AS team_lead
	FROM projects p
	JOIN teams t ON t.team_id = p.team_id`, projectColumns)

	var conditions []string
	var args []interface{}
	if scope.Department != "" {
		args = append(args, scope.Department)
		conditions = append(conditions, fmt.Sprintf("t.department = $%d", len(args)))
	}
	if scope.Section != "" {
		args = append(args, scope.Section)
		conditions = append(conditions, fmt.Sprintf("t.section = $%d", len(args)))
	}
	if scope.MentorID != "" {
		args = append(args, scope.MentorID)
		conditions = append(conditions, fmt.Sprintf("t.mentor = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	var projects []ProjectWithTeam
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// FindByID returns a project by identifier.
func (r *ProjectRepository) FindByID(ctx context.Context, projectID string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects p WHERE p.project_id = $1 LIMIT 1`, projectColumns)
	var project models.Project
	if err := r.db.GetContext(ctx, &project, query, projectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &project, nil
}

// FindByTeam returns a team's project, or nil when none exists. A team
// without a project is an expected state, not an error.
func (r *ProjectRepository) FindByTeam(ctx context.Context, teamID string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects p WHERE p.team_id = $1 LIMIT 1`, projectColumns)
	var project models.Project
	if err := r.db.GetContext(ctx, &project, query, teamID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find project by team: %w", err)
	}
	return &project, nil
}

// SetMentorApproval records the mentor-level decision.
func (r *ProjectRepository) SetMentorApproval(ctx context.Context, projectID string, approved bool) error {
	const query = `UPDATE projects SET is_approved = $2 WHERE project_id = $1`
	if _, err := r.db.ExecContext(ctx, query, projectID, approved); err != nil {
		return fmt.Errorf("set project mentor approval: %w", err)
	}
	return nil
}

// SetHODApproval records the final HOD decision. The mentor-approval
// precondition is enforced by the service before this runs.
func (r *ProjectRepository) SetHODApproval(ctx context.Context, projectID string, approved bool) error {
	const query = `UPDATE projects SET is_hod_approved = $2 WHERE project_id = $1`
	if _, err := r.db.ExecContext(ctx, query, projectID, approved); err != nil {
		return fmt.Errorf("set project hod approval: %w", err)
	}
	return nil
}
