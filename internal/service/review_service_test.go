package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
	"github.com/kite-portal/mentor-api/internal/repository"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type reviewRepoStub struct {
	review    *models.Review
	gotUpdate *repository.EvaluationUpdate
	gotAt     time.Time
}

func (s *reviewRepoStub) ListScoped(ctx context.Context, scope policy.Scope) ([]models.Review, error) {
	if s.review == nil {
		return nil, nil
	}
	return []models.Review{*s.review}, nil
}

func (s *reviewRepoStub) FindByID(ctx context.Context, reviewID string) (*models.Review, error) {
	if s.review == nil {
		return nil, sql.ErrNoRows
	}
	return s.review, nil
}

func (s *reviewRepoStub) UpdateEvaluation(ctx context.Context, reviewID string, update repository.EvaluationUpdate, now time.Time) error {
	s.gotUpdate = &update
	s.gotAt = now
	return nil
}

func (s *reviewRepoStub) AttachmentsByReview(ctx context.Context, reviewID string) ([]models.ReviewAttachment, error) {
	return nil, nil
}

type reviewTeamStub struct {
	team *models.Team
}

func (s *reviewTeamStub) FindByID(ctx context.Context, teamID string) (*models.Team, error) {
	if s.team == nil {
		return nil, sql.ErrNoRows
	}
	return s.team, nil
}

type reviewStudentStub struct{}

func (reviewStudentStub) NameByID(ctx context.Context, studentID string) (*string, error) {
	return nil, sql.ErrNoRows
}

type templateRepoStub struct {
	created   *models.ReviewTemplate
	templates []models.ReviewTemplate
}

func (s *templateRepoStub) Create(ctx context.Context, template *models.ReviewTemplate) error {
	s.created = template
	return nil
}

func (s *templateRepoStub) List(ctx context.Context, review string) ([]models.ReviewTemplate, error) {
	return s.templates, nil
}

func intPtr(n int) *int { return &n }

func newReviewServiceForTest(review *models.Review, team *models.Team) (*ReviewService, *reviewRepoStub) {
	repo := &reviewRepoStub{review: review}
	svc := NewReviewService(repo, &reviewTeamStub{team: team}, reviewStudentStub{}, &templateRepoStub{}, nil, zap.NewNop())
	return svc, repo
}

func TestEvaluatePassesWriteThrough(t *testing.T) {
	review := &models.Review{ID: "r1", TeamID: "t1", Stage: "Review 1", Department: "CSE"}
	team := &models.Team{TeamID: "t1", Department: "CSE", Mentor: strPtr("S9")}
	svc, repo := newReviewServiceForTest(review, team)

	mentor := &models.Principal{StaffID: "S9", Roles: models.ParseRoles("PROJECT_MENTOR"), Department: "CSE"}
	result := "good progress"
	_, err := svc.Evaluate(context.Background(), mentor, "r1", dto.EvaluateReviewRequest{
		Result:      &result,
		Marks:       intPtr(85),
		IsCompleted: boolPtr(true),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.gotUpdate)
	assert.Equal(t, "good progress", *repo.gotUpdate.Result)
	assert.Equal(t, 85, *repo.gotUpdate.Marks)
	assert.True(t, *repo.gotUpdate.IsCompleted)
	assert.False(t, repo.gotAt.IsZero())
}

func TestEvaluateForbiddenForOtherMentor(t *testing.T) {
	review := &models.Review{ID: "r1", TeamID: "t1", Department: "CSE"}
	team := &models.Team{TeamID: "t1", Department: "CSE", Mentor: strPtr("S5")}
	svc, repo := newReviewServiceForTest(review, team)

	mentor := &models.Principal{StaffID: "S9", Roles: models.ParseRoles("PROJECT_MENTOR"), Department: "CSE"}
	_, err := svc.Evaluate(context.Background(), mentor, "r1", dto.EvaluateReviewRequest{Marks: intPtr(50)})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrForbidden.Status, appErr.Status)
	assert.Nil(t, repo.gotUpdate)
}

func TestEvaluateHODInDepartment(t *testing.T) {
	review := &models.Review{ID: "r1", TeamID: "t1", Department: "CSE"}
	team := &models.Team{TeamID: "t1", Department: "CSE", Mentor: strPtr("S5")}
	svc, repo := newReviewServiceForTest(review, team)

	hod := &models.Principal{StaffID: "S1", Roles: models.ParseRoles("HOD"), Department: "CSE"}
	_, err := svc.Evaluate(context.Background(), hod, "r1", dto.EvaluateReviewRequest{IsCompleted: boolPtr(true)})
	require.NoError(t, err)
	require.NotNil(t, repo.gotUpdate)
}

func TestEvaluateEmptyWriteRejected(t *testing.T) {
	svc, _ := newReviewServiceForTest(nil, nil)

	mentor := &models.Principal{StaffID: "S9", Roles: models.ParseRoles("PROJECT_MENTOR")}
	_, err := svc.Evaluate(context.Background(), mentor, "r1", dto.EvaluateReviewRequest{})
	require.Error(t, err)
}

func TestEvaluateAdvisorForbidden(t *testing.T) {
	review := &models.Review{ID: "r1", TeamID: "t1", Department: "CSE"}
	team := &models.Team{TeamID: "t1", Department: "CSE"}
	svc, _ := newReviewServiceForTest(review, team)

	advisor := &models.Principal{StaffID: "S2", Roles: models.ParseRoles("CLASS_ADVISOR"), Department: "CSE", Section: "A"}
	_, err := svc.Evaluate(context.Background(), advisor, "r1", dto.EvaluateReviewRequest{Marks: intPtr(10)})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestCreateTemplateRoleGate(t *testing.T) {
	templates := &templateRepoStub{}
	svc := NewReviewService(&reviewRepoStub{}, &reviewTeamStub{}, reviewStudentStub{}, templates, nil, zap.NewNop())

	req := dto.CreateTemplateRequest{Name: "Report format", Link: "https://example.org/doc", Review: "Review 1"}

	advisor := &models.Principal{StaffID: "S2", Roles: models.ParseRoles("CLASS_ADVISOR"), Department: "CSE"}
	_, err := svc.CreateTemplate(context.Background(), advisor, req)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	mentor := &models.Principal{StaffID: "S9", Roles: models.ParseRoles("PROJECT_MENTOR"), Department: "CSE"}
	template, err := svc.CreateTemplate(context.Background(), mentor, req)
	require.NoError(t, err)
	assert.NotEmpty(t, template.ID)
	assert.Equal(t, "Review 1", templates.created.Review)
}
