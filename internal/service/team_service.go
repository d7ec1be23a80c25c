package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
	"github.com/kite-portal/mentor-api/internal/repository"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type teamRepo interface {
	ListScoped(ctx context.Context, scope policy.Scope) ([]models.Team, error)
	FindByID(ctx context.Context, teamID string) (*models.Team, error)
	UpdateApproval(ctx context.Context, teamID string, approved bool) error
	AssignMentor(ctx context.Context, teamID, mentorID string) error
	CountByMentor(ctx context.Context) ([]repository.MentorTeamCount, error)
}

type teamStaffReader interface {
	FindInfoByStaffID(ctx context.Context, staffID string) (*models.StaffInfo, error)
	NameByStaffID(ctx context.Context, staffID string) (*string, error)
}

type teamStudentReader interface {
	FindByID(ctx context.Context, studentID string) (*models.Student, error)
	NameByID(ctx context.Context, studentID string) (*string, error)
}

type teamReviewReader interface {
	ListByTeam(ctx context.Context, teamID string, ascending bool) ([]models.Review, error)
}

type teamScheduleReader interface {
	ListByDepartment(ctx context.Context, department string) ([]models.Schedule, error)
}

// TeamService serves team dashboards and the approval and mentor
// assignment workflows.
type TeamService struct {
	teams     teamRepo
	staff     teamStaffReader
	students  teamStudentReader
	reviews   teamReviewReader
	schedules teamScheduleReader
	validator *validator.Validate
	logger    *zap.Logger
	maxTeams  int
}

// NewTeamService constructs a TeamService instance.
func NewTeamService(teams teamRepo, staff teamStaffReader, students teamStudentReader, reviews teamReviewReader, schedules teamScheduleReader, validate *validator.Validate, logger *zap.Logger, maxTeams int) *TeamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamService{
		teams:     teams,
		staff:     staff,
		students:  students,
		reviews:   reviews,
		schedules: schedules,
		validator: validate,
		logger:    logger,
		maxTeams:  maxTeams,
	}
}

// List returns the teams visible to the principal, newest first, with
// mentor and lead names resolved. Missing references degrade to null.
func (s *TeamService) List(ctx context.Context, p *models.Principal) ([]dto.TeamListItem, error) {
	scope, err := policy.Decide(p, policy.Teams, policy.Read)
	if err != nil {
		if errors.Is(err, policy.ErrNoMatch) {
			return []dto.TeamListItem{}, nil
		}
		return nil, err
	}

	teams, err := s.teams.ListScoped(ctx, scope)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teams")
	}

	items := make([]dto.TeamListItem, 0, len(teams))
	for _, team := range teams {
		item := dto.TeamListItem{Team: team}
		if team.Mentor != nil {
			if name, err := s.staff.NameByStaffID(ctx, *team.Mentor); err == nil {
				item.MentorName = name
			}
		}
		if team.TeamLead != nil {
			if name, err := s.students.NameByID(ctx, *team.TeamLead); err == nil {
				item.TeamLeadName = name
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// Get returns the composed team view. The team must fall inside the
// principal's read scope.
func (s *TeamService) Get(ctx context.Context, p *models.Principal, teamID string) (*dto.TeamDetail, error) {
	scope, err := policy.Decide(p, policy.Teams, policy.Read)
	if err != nil {
		if errors.Is(err, policy.ErrNoMatch) {
			return nil, appErrors.ErrNotFound
		}
		return nil, err
	}

	team, err := s.findInScope(ctx, teamID, scope)
	if err != nil {
		return nil, err
	}

	detail := &dto.TeamDetail{Team: *team, Reviews: []models.Review{}, Schedules: []models.Schedule{}}

	if team.TeamLead != nil {
		if lead, err := s.students.FindByID(ctx, *team.TeamLead); err == nil {
			detail.TeamLead = lead
		}
	}
	if team.Mentor != nil {
		if mentor, err := s.staff.FindInfoByStaffID(ctx, *team.Mentor); err == nil {
			detail.Mentor = mentor
		}
	}
	if reviews, err := s.reviews.ListByTeam(ctx, teamID, false); err == nil && reviews != nil {
		detail.Reviews = reviews
	}
	if schedules, err := s.schedules.ListByDepartment(ctx, team.Department); err == nil && schedules != nil {
		detail.Schedules = schedules
	}
	return detail, nil
}

// Approve records the HOD decision for a team. Repeating a decision is
// not an error.
func (s *TeamService) Approve(ctx context.Context, p *models.Principal, teamID string, approved bool) error {
	scope, err := policy.Decide(p, policy.Teams, policy.Approve)
	if err != nil {
		return err
	}

	if _, err := s.findInScope(ctx, teamID, scope); err != nil {
		return err
	}

	if err := s.teams.UpdateApproval(ctx, teamID, approved); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update team approval")
	}

	s.logger.Info("team approval updated",
		zap.String("team_id", teamID),
		zap.Bool("approved", approved),
		zap.String("decided_by", p.StaffID))
	return nil
}

// AssignMentor assigns a mentor to a team. The nominee must hold the
// mentor role and have capacity left.
func (s *TeamService) AssignMentor(ctx context.Context, p *models.Principal, teamID string, req dto.AssignMentorRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "mentor_id is required")
	}

	if _, err := policy.Decide(p, policy.Teams, policy.AssignMentor); err != nil {
		return err
	}

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "team not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch team")
	}
	if !policy.InAssignScope(p, team.Department, team.Section) {
		return appErrors.ErrForbidden
	}

	mentor, err := s.staff.FindInfoByStaffID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "mentor not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch mentor")
	}
	if !models.ParseRoles(mentor.Role).Has(models.RoleProjectMentor) {
		return appErrors.Clone(appErrors.ErrValidation, "staff member is not a project mentor")
	}

	loads, err := s.teams.CountByMentor(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check mentor load")
	}
	for _, load := range loads {
		if load.Mentor == req.MentorID && load.Count >= s.maxTeams {
			return appErrors.Clone(appErrors.ErrConflict, "mentor already carries the maximum number of teams")
		}
	}

	if err := s.teams.AssignMentor(ctx, teamID, req.MentorID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign mentor")
	}

	s.logger.Info("mentor assigned",
		zap.String("team_id", teamID),
		zap.String("mentor_id", req.MentorID),
		zap.String("assigned_by", p.StaffID))
	return nil
}

func (s *TeamService) findInScope(ctx context.Context, teamID string, scope policy.Scope) (*models.Team, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch team")
	}

	if scope.Department != "" && team.Department != scope.Department {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
	}
	if scope.Section != "" && team.Section != scope.Section {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
	}
	if scope.MentorID != "" && (team.Mentor == nil || *team.Mentor != scope.MentorID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
	}
	return team, nil
}
