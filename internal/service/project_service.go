package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
	"github.com/kite-portal/mentor-api/internal/repository"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type projectRepo interface {
	ListScoped(ctx context.Context, scope policy.Scope) ([]repository.ProjectWithTeam, error)
	FindByID(ctx context.Context, projectID string) (*models.Project, error)
	SetMentorApproval(ctx context.Context, projectID string, approved bool) error
	SetHODApproval(ctx context.Context, projectID string, approved bool) error
}

type projectTeamReader interface {
	FindByID(ctx context.Context, teamID string) (*models.Team, error)
}

type projectStaffReader interface {
	FindInfoByStaffID(ctx context.Context, staffID string) (*models.StaffInfo, error)
	NameByStaffID(ctx context.Context, staffID string) (*string, error)
}

type projectStudentReader interface {
	FindByID(ctx context.Context, studentID string) (*models.Student, error)
	NameByID(ctx context.Context, studentID string) (*string, error)
}

type projectReviewReader interface {
	ListByTeam(ctx context.Context, teamID string, ascending bool) ([]models.Review, error)
}

// ProjectService serves project dashboards and the two-stage approval
// chain.
type ProjectService struct {
	projects projectRepo
	teams    projectTeamReader
	staff    projectStaffReader
	students projectStudentReader
	reviews  projectReviewReader
	logger   *zap.Logger
}

// NewProjectService constructs a ProjectService instance.
func NewProjectService(projects projectRepo, teams projectTeamReader, staff projectStaffReader, students projectStudentReader, reviews projectReviewReader, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{projects: projects, teams: teams, staff: staff, students: students, reviews: reviews, logger: logger}
}

// List returns the projects visible to the principal, newest first, with
// team context resolved.
func (s *ProjectService) List(ctx context.Context, p *models.Principal) ([]dto.ProjectListItem, error) {
	scope, err := policy.Decide(p, policy.Projects, policy.Read)
	if err != nil {
		if errors.Is(err, policy.ErrNoMatch) {
			return []dto.ProjectListItem{}, nil
		}
		return nil, err
	}

	rows, err := s.projects.ListScoped(ctx, scope)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list projects")
	}

	items := make([]dto.ProjectListItem, 0, len(rows))
	for _, row := range rows {
		item := dto.ProjectListItem{
			Project:        row.Project,
			TeamDepartment: row.TeamDepartment,
			TeamSection:    row.TeamSection,
			MentorID:       row.TeamMentor,
		}
		if row.TeamMentor != nil {
			if name, err := s.staff.NameByStaffID(ctx, *row.TeamMentor); err == nil {
				item.MentorName = name
			}
		}
		if row.TeamLead != nil {
			if name, err := s.students.NameByID(ctx, *row.TeamLead); err == nil {
				item.TeamLeadName = name
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// Get returns the composed project view. The owning team decides
// visibility.
func (s *ProjectService) Get(ctx context.Context, p *models.Principal, projectID string) (*dto.ProjectDetail, error) {
	scope, err := policy.Decide(p, policy.Projects, policy.Read)
	if err != nil {
		if errors.Is(err, policy.ErrNoMatch) {
			return nil, appErrors.ErrNotFound
		}
		return nil, err
	}

	project, team, err := s.findInScope(ctx, projectID, scope)
	if err != nil {
		return nil, err
	}

	detail := &dto.ProjectDetail{Project: *project, Team: team, Reviews: []models.Review{}}
	if team != nil && team.TeamLead != nil {
		if lead, err := s.students.FindByID(ctx, *team.TeamLead); err == nil {
			detail.TeamLead = lead
		}
	}
	if team != nil && team.Mentor != nil {
		if mentor, err := s.staff.FindInfoByStaffID(ctx, *team.Mentor); err == nil {
			detail.Mentor = mentor
		}
	}
	if reviews, err := s.reviews.ListByTeam(ctx, project.TeamID, false); err == nil && reviews != nil {
		detail.Reviews = reviews
	}
	return detail, nil
}

// MentorApprove records the mentor decision on a project. Only the
// assigned mentor of the owning team may decide.
func (s *ProjectService) MentorApprove(ctx context.Context, p *models.Principal, projectID string, approved bool) error {
	if _, err := policy.Decide(p, policy.Projects, policy.Approve); err != nil {
		return err
	}

	project, team, err := s.findProjectAndTeam(ctx, projectID)
	if err != nil {
		return err
	}
	if team == nil || !policy.OwnsTeam(p, team.Mentor) {
		return appErrors.Clone(appErrors.ErrForbidden, "only the assigned mentor can approve this project")
	}

	if err := s.projects.SetMentorApproval(ctx, projectID, approved); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update project approval")
	}

	s.logger.Info("project mentor decision",
		zap.String("project_id", project.ProjectID),
		zap.Bool("approved", approved),
		zap.String("decided_by", p.StaffID))
	return nil
}

// HODApprove records the HOD decision. The mentor approval must already
// be granted; otherwise the chain is out of order.
func (s *ProjectService) HODApprove(ctx context.Context, p *models.Principal, projectID string, approved bool) error {
	if !p.Roles.Has(models.RoleHOD) {
		return appErrors.ErrForbidden
	}

	project, team, err := s.findProjectAndTeam(ctx, projectID)
	if err != nil {
		return err
	}
	if team == nil || team.Department != p.Department {
		return appErrors.Clone(appErrors.ErrNotFound, "project not found")
	}

	if project.IsApproved == nil || !*project.IsApproved {
		return appErrors.Clone(appErrors.ErrValidation, "project is awaiting mentor approval")
	}

	if err := s.projects.SetHODApproval(ctx, projectID, approved); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update project approval")
	}

	s.logger.Info("project hod decision",
		zap.String("project_id", project.ProjectID),
		zap.Bool("approved", approved),
		zap.String("decided_by", p.StaffID))
	return nil
}

func (s *ProjectService) findProjectAndTeam(ctx context.Context, projectID string) (*models.Project, *models.Team, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch project")
	}

	team, err := s.teams.FindByID(ctx, project.TeamID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch team")
	}
	return project, team, nil
}

func (s *ProjectService) findInScope(ctx context.Context, projectID string, scope policy.Scope) (*models.Project, *models.Team, error) {
	project, team, err := s.findProjectAndTeam(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if team == nil {
		// Orphan projects are only visible department-wide with no filter.
		if scope.Department != "" || scope.Section != "" || scope.MentorID != "" {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return project, nil, nil
	}

	if scope.Department != "" && team.Department != scope.Department {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
	}
	if scope.Section != "" && team.Section != scope.Section {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
	}
	if scope.MentorID != "" && (team.Mentor == nil || *team.Mentor != scope.MentorID) {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
	}
	return project, team, nil
}
