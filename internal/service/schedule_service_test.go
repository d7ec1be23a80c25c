package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type scheduleRepoStub struct {
	listed  []models.Schedule
	created *models.Schedule
}

func (s *scheduleRepoStub) ListScoped(ctx context.Context, scope policy.Scope) ([]models.Schedule, error) {
	return s.listed, nil
}

func (s *scheduleRepoStub) Create(ctx context.Context, schedule *models.Schedule) error {
	s.created = schedule
	return nil
}

type scheduleTeamStub struct {
	approved   []string
	gotDept    string
	gotSection string
}

func (s *scheduleTeamStub) ApprovedTeamIDs(ctx context.Context, department, section string) ([]string, error) {
	s.gotDept = department
	s.gotSection = section
	return s.approved, nil
}

type scheduleReviewStub struct {
	teamIDs []string
	stage   string
}

func (s *scheduleReviewStub) BulkCreate(ctx context.Context, teamIDs []string, stage, department string, section *string) (int, error) {
	s.teamIDs = teamIDs
	s.stage = stage
	return len(teamIDs), nil
}

func scheduleRequest() dto.CreateScheduleRequest {
	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return dto.CreateScheduleRequest{
		Stage:      "Review 1",
		Department: "CSE",
		Start:      start,
		End:        start.Add(48 * time.Hour),
	}
}

func TestScheduleCreateFansOutPerApprovedTeam(t *testing.T) {
	schedules := &scheduleRepoStub{}
	teams := &scheduleTeamStub{approved: []string{"t1", "t2", "t3"}}
	reviews := &scheduleReviewStub{}
	svc := NewScheduleService(schedules, teams, reviews, nil, zap.NewNop())

	hod := &models.Principal{StaffID: "S1", Roles: models.ParseRoles("HOD"), Department: "CSE", Section: "A"}
	res, err := svc.Create(context.Background(), hod, scheduleRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, res.TeamsScheduled)
	assert.Equal(t, []string{"t1", "t2", "t3"}, reviews.teamIDs)
	assert.Equal(t, "Review 1", reviews.stage)
	require.NotNil(t, schedules.created)
	assert.Equal(t, "CSE", schedules.created.Department)
	// HOD scope covers the whole department, no section narrowing.
	assert.Equal(t, "", teams.gotSection)
}

func TestScheduleCreateZeroTeamsSucceeds(t *testing.T) {
	schedules := &scheduleRepoStub{}
	teams := &scheduleTeamStub{approved: nil}
	reviews := &scheduleReviewStub{}
	svc := NewScheduleService(schedules, teams, reviews, nil, zap.NewNop())

	hod := &models.Principal{StaffID: "S1", Roles: models.ParseRoles("HOD"), Department: "CSE"}
	res, err := svc.Create(context.Background(), hod, scheduleRequest())
	require.NoError(t, err)

	assert.Equal(t, 0, res.TeamsScheduled)
	assert.Contains(t, res.Message, "no approved teams")
	assert.NotNil(t, schedules.created)
}

func TestScheduleCreateAdvisorNarrowsToSection(t *testing.T) {
	schedules := &scheduleRepoStub{}
	teams := &scheduleTeamStub{approved: []string{"t1"}}
	reviews := &scheduleReviewStub{}
	svc := NewScheduleService(schedules, teams, reviews, nil, zap.NewNop())

	advisor := &models.Principal{StaffID: "S2", Roles: models.ParseRoles("CLASS_ADVISOR+PROJECT_MENTOR"), Department: "CSE", Section: "B"}
	res, err := svc.Create(context.Background(), advisor, scheduleRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, res.TeamsScheduled)
	assert.Equal(t, "CSE", teams.gotDept)
	assert.Equal(t, "B", teams.gotSection)
}

func TestScheduleCreatePureMentorForbidden(t *testing.T) {
	svc := NewScheduleService(&scheduleRepoStub{}, &scheduleTeamStub{}, &scheduleReviewStub{}, nil, zap.NewNop())

	mentor := &models.Principal{StaffID: "S3", Roles: models.ParseRoles("PROJECT_MENTOR"), Department: "CSE"}
	_, err := svc.Create(context.Background(), mentor, scheduleRequest())
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestScheduleCreateOtherDepartmentForbidden(t *testing.T) {
	schedules := &scheduleRepoStub{}
	svc := NewScheduleService(schedules, &scheduleTeamStub{}, &scheduleReviewStub{}, nil, zap.NewNop())
	hod := &models.Principal{StaffID: "S1", Roles: models.ParseRoles("HOD"), Department: "CSE"}

	req := scheduleRequest()
	req.Department = "ECE"
	_, err := svc.Create(context.Background(), hod, req)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrForbidden.Status, appErr.Status)
	assert.Nil(t, schedules.created)
}

func TestScheduleCreateRejectsInvalidWindow(t *testing.T) {
	svc := NewScheduleService(&scheduleRepoStub{}, &scheduleTeamStub{}, &scheduleReviewStub{}, nil, zap.NewNop())
	hod := &models.Principal{StaffID: "S1", Roles: models.ParseRoles("HOD"), Department: "CSE"}

	req := scheduleRequest()
	req.End = req.Start.Add(-time.Hour)
	_, err := svc.Create(context.Background(), hod, req)
	require.Error(t, err)

	req = scheduleRequest()
	req.Stage = "Review 9"
	_, err = svc.Create(context.Background(), hod, req)
	require.Error(t, err)
}

func TestScheduleListNoMatchIsEmpty(t *testing.T) {
	svc := NewScheduleService(&scheduleRepoStub{}, &scheduleTeamStub{}, &scheduleReviewStub{}, nil, zap.NewNop())

	stranger := &models.Principal{StaffID: "S4", Roles: models.ParseRoles(""), Department: "CSE"}
	schedules, err := svc.List(context.Background(), stranger)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}
