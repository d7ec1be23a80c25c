package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type worklogRepoStub struct {
	log          *models.WorkLog
	pending      []dto.PendingLog
	studentLogs  []dto.StudentLog
	studentIDs   []string
	approvedWith *bool
	comments     *string
}

func (s *worklogRepoStub) FindByID(ctx context.Context, logID string) (*models.WorkLog, error) {
	if s.log == nil {
		return nil, sql.ErrNoRows
	}
	return s.log, nil
}

func (s *worklogRepoStub) PendingByTeams(ctx context.Context, teamIDs []string) ([]dto.PendingLog, error) {
	return s.pending, nil
}

func (s *worklogRepoStub) ByStudent(ctx context.Context, studentID string, teamIDs []string) ([]dto.StudentLog, error) {
	return s.studentLogs, nil
}

func (s *worklogRepoStub) StudentIDsWithLogs(ctx context.Context, teamIDs []string) ([]string, error) {
	return s.studentIDs, nil
}

func (s *worklogRepoStub) Approve(ctx context.Context, logID string, approved bool, comments *string) error {
	s.approvedWith = &approved
	s.comments = comments
	return nil
}

type worklogTeamStub struct {
	team    *models.Team
	teamIDs []string
}

func (s *worklogTeamStub) FindByID(ctx context.Context, teamID string) (*models.Team, error) {
	if s.team == nil {
		return nil, sql.ErrNoRows
	}
	return s.team, nil
}

func (s *worklogTeamStub) IDsByMentor(ctx context.Context, staffID string) ([]string, error) {
	return s.teamIDs, nil
}

type worklogStudentStub struct {
	students []models.Student
}

func (s *worklogStudentStub) ListByIDs(ctx context.Context, studentIDs []string) ([]models.Student, error) {
	return s.students, nil
}

func mentorPrincipal() *models.Principal {
	return &models.Principal{StaffID: "S9", Roles: models.ParseRoles("PROJECT_MENTOR"), Department: "CSE", Section: "A"}
}

func TestLogApproveOnlyByAssignedMentor(t *testing.T) {
	logs := &worklogRepoStub{log: &models.WorkLog{ID: "l1", TeamID: "t1"}}
	teams := &worklogTeamStub{team: &models.Team{TeamID: "t1", Mentor: strPtr("S9")}}
	svc := NewWorkLogService(logs, teams, &worklogStudentStub{}, nil, zap.NewNop())

	other := &models.Principal{StaffID: "S1", Roles: models.ParseRoles("PROJECT_MENTOR")}
	err := svc.Approve(context.Background(), other, "l1", dto.ApproveLogRequest{Approved: boolPtr(true)})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrForbidden.Status, appErr.Status)
	assert.Nil(t, logs.approvedWith)
}

func TestLogApproveWritesDecisionAndComments(t *testing.T) {
	logs := &worklogRepoStub{log: &models.WorkLog{ID: "l1", TeamID: "t1"}}
	teams := &worklogTeamStub{team: &models.Team{TeamID: "t1", Mentor: strPtr("S9")}}
	svc := NewWorkLogService(logs, teams, &worklogStudentStub{}, nil, zap.NewNop())

	comments := "redo the diagrams"
	err := svc.Approve(context.Background(), mentorPrincipal(), "l1", dto.ApproveLogRequest{
		Approved: boolPtr(false),
		Comments: &comments,
	})
	require.NoError(t, err)

	require.NotNil(t, logs.approvedWith)
	assert.False(t, *logs.approvedWith)
	require.NotNil(t, logs.comments)
	assert.Equal(t, comments, *logs.comments)
}

func TestLogApproveRequiresDecision(t *testing.T) {
	svc := NewWorkLogService(&worklogRepoStub{}, &worklogTeamStub{}, &worklogStudentStub{}, nil, zap.NewNop())

	err := svc.Approve(context.Background(), mentorPrincipal(), "l1", dto.ApproveLogRequest{})
	require.Error(t, err)
}

func TestPendingForNonMentorIsEmpty(t *testing.T) {
	logs := &worklogRepoStub{pending: []dto.PendingLog{{ID: "l1"}}}
	teams := &worklogTeamStub{teamIDs: []string{"t1"}}
	svc := NewWorkLogService(logs, teams, &worklogStudentStub{}, nil, zap.NewNop())

	hod := &models.Principal{StaffID: "S1", Roles: models.ParseRoles("HOD"), Department: "CSE"}
	pending, err := svc.Pending(context.Background(), hod)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPendingForMentor(t *testing.T) {
	logs := &worklogRepoStub{pending: []dto.PendingLog{{ID: "l1"}, {ID: "l2"}}}
	teams := &worklogTeamStub{teamIDs: []string{"t1", "t2"}}
	svc := NewWorkLogService(logs, teams, &worklogStudentStub{}, nil, zap.NewNop())

	pending, err := svc.Pending(context.Background(), mentorPrincipal())
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestStudentsWithLogs(t *testing.T) {
	logs := &worklogRepoStub{studentIDs: []string{"st1", "st2"}}
	teams := &worklogTeamStub{teamIDs: []string{"t1"}}
	students := &worklogStudentStub{students: []models.Student{{StudentID: "st1"}, {StudentID: "st2"}}}
	svc := NewWorkLogService(logs, teams, students, nil, zap.NewNop())

	result, err := svc.Students(context.Background(), mentorPrincipal())
	require.NoError(t, err)
	assert.Len(t, result, 2)
}
