package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type scheduleRepo interface {
	ListScoped(ctx context.Context, scope policy.Scope) ([]models.Schedule, error)
	Create(ctx context.Context, schedule *models.Schedule) error
}

type scheduleTeamReader interface {
	ApprovedTeamIDs(ctx context.Context, department, section string) ([]string, error)
}

type scheduleReviewWriter interface {
	BulkCreate(ctx context.Context, teamIDs []string, stage, department string, section *string) (int, error)
}

// ScheduleService serves the review calendar. Creating a window fans out
// one pending review per approved team in scope.
type ScheduleService struct {
	schedules scheduleRepo
	teams     scheduleTeamReader
	reviews   scheduleReviewWriter
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduleService constructs a ScheduleService instance.
func NewScheduleService(schedules scheduleRepo, teams scheduleTeamReader, reviews scheduleReviewWriter, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		schedules: schedules,
		teams:     teams,
		reviews:   reviews,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns the schedules visible to the principal, newest first.
func (s *ScheduleService) List(ctx context.Context, p *models.Principal) ([]models.Schedule, error) {
	scope, err := policy.Decide(p, policy.Schedules, policy.Read)
	if err != nil {
		if errors.Is(err, policy.ErrNoMatch) {
			return []models.Schedule{}, nil
		}
		return nil, err
	}

	schedules, err := s.schedules.ListScoped(ctx, scope)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	if schedules == nil {
		schedules = []models.Schedule{}
	}
	return schedules, nil
}

// Create opens a review window for the caller's scope and fans out
// pending reviews. Zero approved teams is a successful window with an
// empty fan-out.
func (s *ScheduleService) Create(ctx context.Context, p *models.Principal, req dto.CreateScheduleRequest) (*dto.CreateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "stage, department, start and end are required")
	}
	if !req.End.After(req.Start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end must be after start")
	}
	if !isKnownStage(req.Stage) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown review stage")
	}

	scope, err := policy.Decide(p, policy.Schedules, policy.Create)
	if err != nil {
		return nil, err
	}
	if req.Department != scope.Department {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you can only create schedules for your own department")
	}

	schedule := &models.Schedule{
		ID:         uuid.NewString(),
		Stage:      req.Stage,
		Department: scope.Department,
		Start:      req.Start,
		End:        req.End,
		CreatedAt:  s.now(),
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
	}

	teamIDs, err := s.teams.ApprovedTeamIDs(ctx, scope.Department, scope.Section)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve teams for schedule")
	}

	var section *string
	if scope.Section != "" {
		v := scope.Section
		section = &v
	}
	scheduled, err := s.reviews.BulkCreate(ctx, teamIDs, req.Stage, scope.Department, section)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reviews for schedule")
	}

	s.logger.Info("schedule created",
		zap.String("schedule_id", schedule.ID),
		zap.String("stage", req.Stage),
		zap.String("department", scope.Department),
		zap.Int("teams_scheduled", scheduled),
		zap.String("created_by", p.StaffID))

	message := "Schedule and review entries created successfully"
	if scheduled == 0 {
		message = "Schedule created, but no approved teams found in this department"
	}
	return &dto.CreateScheduleResponse{
		Message:        message,
		ScheduleID:     schedule.ID,
		TeamsScheduled: scheduled,
	}, nil
}

func isKnownStage(stage string) bool {
	for _, s := range models.ReviewStages {
		if s == stage {
			return true
		}
	}
	return false
}
