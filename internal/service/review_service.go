package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
	"github.com/kite-portal/mentor-api/internal/repository"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type reviewRepo interface {
	ListScoped(ctx context.Context, scope policy.Scope) ([]models.Review, error)
	FindByID(ctx context.Context, reviewID string) (*models.Review, error)
	UpdateEvaluation(ctx context.Context, reviewID string, update repository.EvaluationUpdate, now time.Time) error
	AttachmentsByReview(ctx context.Context, reviewID string) ([]models.ReviewAttachment, error)
}

type reviewTeamReader interface {
	FindByID(ctx context.Context, teamID string) (*models.Team, error)
}

type reviewStudentReader interface {
	NameByID(ctx context.Context, studentID string) (*string, error)
}

type templateRepo interface {
	Create(ctx context.Context, template *models.ReviewTemplate) error
	List(ctx context.Context, review string) ([]models.ReviewTemplate, error)
}

// ReviewService serves the review dashboard, evaluation writes and the
// stage template registry.
type ReviewService struct {
	reviews   reviewRepo
	teams     reviewTeamReader
	students  reviewStudentReader
	templates templateRepo
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReviewService constructs a ReviewService instance.
func NewReviewService(reviews reviewRepo, teams reviewTeamReader, students reviewStudentReader, templates templateRepo, validate *validator.Validate, logger *zap.Logger) *ReviewService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{
		reviews:   reviews,
		teams:     teams,
		students:  students,
		templates: templates,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns reviews in the principal's scope, newest first, enriched
// with team context and attachments.
func (s *ReviewService) List(ctx context.Context, p *models.Principal) ([]dto.ReviewItem, error) {
	scope, err := policy.Decide(p, policy.Reviews, policy.Read)
	if err != nil {
		if errors.Is(err, policy.ErrNoMatch) {
			return []dto.ReviewItem{}, nil
		}
		return nil, err
	}

	reviews, err := s.reviews.ListScoped(ctx, scope)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviews")
	}

	items := make([]dto.ReviewItem, 0, len(reviews))
	for _, review := range reviews {
		item := dto.ReviewItem{
			ID:          review.ID,
			TeamID:      review.TeamID,
			Stage:       review.Stage,
			Department:  review.Department,
			IsCompleted: review.IsCompleted,
			CompletedOn: review.CompletedOn,
			Result:      review.Result,
			Marks:       review.Marks,
			CreatedAt:   review.CreatedAt,
			Attachments: []models.ReviewAttachment{},
		}
		if team, err := s.teams.FindByID(ctx, review.TeamID); err == nil {
			item.TeamTopic = &team.Topic
			item.TeamCode = &team.Code
			item.TeamSection = &team.Section
			item.TeamLeadID = team.TeamLead
			if team.TeamLead != nil {
				if name, err := s.students.NameByID(ctx, *team.TeamLead); err == nil {
					item.TeamLeadName = name
				}
			}
		}
		if attachments, err := s.reviews.AttachmentsByReview(ctx, review.ID); err == nil && attachments != nil {
			item.Attachments = attachments
		}
		items = append(items, item)
	}
	return items, nil
}

// Evaluate applies an evaluator's write to a review. The completion
// timestamp is stamped on the first completing write and kept on later
// re-evaluations.
func (s *ReviewService) Evaluate(ctx context.Context, p *models.Principal, reviewID string, req dto.EvaluateReviewRequest) (*models.Review, error) {
	if req.Result == nil && req.Marks == nil && req.IsCompleted == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nothing to update")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evaluation")
	}

	if _, err := policy.Decide(p, policy.Reviews, policy.Evaluate); err != nil {
		return nil, err
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "review not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch review")
	}

	team, err := s.teams.FindByID(ctx, review.TeamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch team")
	}
	if !policy.CanEvaluateReview(p, team.Mentor, team.Department) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not an evaluator for this team")
	}

	update := repository.EvaluationUpdate{
		Result:      req.Result,
		Marks:       req.Marks,
		IsCompleted: req.IsCompleted,
	}
	if err := s.reviews.UpdateEvaluation(ctx, reviewID, update, s.now()); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update review")
	}

	updated, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch review")
	}

	s.logger.Info("review evaluated",
		zap.String("review_id", reviewID),
		zap.String("team_id", review.TeamID),
		zap.String("evaluated_by", p.StaffID))
	return updated, nil
}

// CreateTemplate registers a reference document for a review stage.
func (s *ReviewService) CreateTemplate(ctx context.Context, p *models.Principal, req dto.CreateTemplateRequest) (*models.ReviewTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name, link and review are required")
	}
	if _, err := policy.Decide(p, policy.Templates, policy.Create); err != nil {
		return nil, err
	}

	template := &models.ReviewTemplate{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Link:      req.Link,
		Review:    req.Review,
		CreatedAt: s.now(),
	}
	if err := s.templates.Create(ctx, template); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create template")
	}
	return template, nil
}

// ListTemplates returns templates, optionally filtered by review stage.
func (s *ReviewService) ListTemplates(ctx context.Context, review string) ([]models.ReviewTemplate, error) {
	templates, err := s.templates.List(ctx, review)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list templates")
	}
	if templates == nil {
		templates = []models.ReviewTemplate{}
	}
	return templates, nil
}
