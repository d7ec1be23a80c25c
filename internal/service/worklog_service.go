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
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type worklogRepo interface {
	FindByID(ctx context.Context, logID string) (*models.WorkLog, error)
	PendingByTeams(ctx context.Context, teamIDs []string) ([]dto.PendingLog, error)
	ByStudent(ctx context.Context, studentID string, teamIDs []string) ([]dto.StudentLog, error)
	StudentIDsWithLogs(ctx context.Context, teamIDs []string) ([]string, error)
	Approve(ctx context.Context, logID string, approved bool, comments *string) error
}

type worklogTeamReader interface {
	FindByID(ctx context.Context, teamID string) (*models.Team, error)
	IDsByMentor(ctx context.Context, staffID string) ([]string, error)
}

type worklogStudentReader interface {
	ListByIDs(ctx context.Context, studentIDs []string) ([]models.Student, error)
}

// WorkLogService serves the mentor's log review queue and the approval
// write.
type WorkLogService struct {
	logs      worklogRepo
	teams     worklogTeamReader
	students  worklogStudentReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewWorkLogService constructs a WorkLogService instance.
func NewWorkLogService(logs worklogRepo, teams worklogTeamReader, students worklogStudentReader, validate *validator.Validate, logger *zap.Logger) *WorkLogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkLogService{logs: logs, teams: teams, students: students, validator: validate, logger: logger}
}

// Pending returns the unreviewed logs across the principal's mentored
// teams, newest first. Callers without the mentor role see nothing.
func (s *WorkLogService) Pending(ctx context.Context, p *models.Principal) ([]dto.PendingLog, error) {
	scope, err := policy.Decide(p, policy.Logs, policy.Read)
	if err != nil {
		if errors.Is(err, policy.ErrNoMatch) {
			return []dto.PendingLog{}, nil
		}
		return nil, err
	}

	teamIDs, err := s.teams.IDsByMentor(ctx, scope.MentorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve mentored teams")
	}

	logs, err := s.logs.PendingByTeams(ctx, teamIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending logs")
	}
	if logs == nil {
		logs = []dto.PendingLog{}
	}
	return logs, nil
}

// ByStudent returns one student's logs within the principal's mentored
// teams, date descending.
func (s *WorkLogService) ByStudent(ctx context.Context, p *models.Principal, studentID string) ([]dto.StudentLog, error) {
	scope, err := policy.Decide(p, policy.Logs, policy.Read)
	if err != nil {
		if errors.Is(err, policy.ErrNoMatch) {
			return []dto.StudentLog{}, nil
		}
		return nil, err
	}

	teamIDs, err := s.teams.IDsByMentor(ctx, scope.MentorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve mentored teams")
	}

	logs, err := s.logs.ByStudent(ctx, studentID, teamIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student logs")
	}
	if logs == nil {
		logs = []dto.StudentLog{}
	}
	return logs, nil
}

// Students returns the students who have written logs in the
// principal's mentored teams.
func (s *WorkLogService) Students(ctx context.Context, p *models.Principal) ([]models.Student, error) {
	scope, err := policy.Decide(p, policy.Logs, policy.Read)
	if err != nil {
		if errors.Is(err, policy.ErrNoMatch) {
			return []models.Student{}, nil
		}
		return nil, err
	}

	teamIDs, err := s.teams.IDsByMentor(ctx, scope.MentorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve mentored teams")
	}

	studentIDs, err := s.logs.StudentIDsWithLogs(ctx, teamIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students with logs")
	}
	if len(studentIDs) == 0 {
		return []models.Student{}, nil
	}

	students, err := s.students.ListByIDs(ctx, studentIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// Approve writes the mentor decision on a log. Only the assigned mentor
// of the log's team may decide; a later write replaces an earlier one.
func (s *WorkLogService) Approve(ctx context.Context, p *models.Principal, logID string, req dto.ApproveLogRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "approved is required")
	}

	if _, err := policy.Decide(p, policy.Logs, policy.Approve); err != nil {
		return err
	}

	log, err := s.logs.FindByID(ctx, logID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "log not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch log")
	}

	team, err := s.teams.FindByID(ctx, log.TeamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "team not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch team")
	}
	if !policy.OwnsTeam(p, team.Mentor) {
		return appErrors.Clone(appErrors.ErrForbidden, "only the assigned mentor can review this log")
	}

	if err := s.logs.Approve(ctx, logID, *req.Approved, req.Comments); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update log")
	}

	s.logger.Info("log reviewed",
		zap.String("log_id", logID),
		zap.String("team_id", log.TeamID),
		zap.Bool("approved", *req.Approved),
		zap.String("reviewed_by", p.StaffID))
	return nil
}
