package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorklogByTeamAscendingScansStudentName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewWorkLogRepository(db)
	day1 := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "student_id", "team_id", "date", "expected_task", "completed_task",
		"comments", "mentor_approved", "created_at", "student_name",
	}).
		AddRow("l1", "STU1", "t1", day1, "plan", "done", nil, nil, day1, "Asha").
		AddRow("l2", "STU2", "t1", day2, "plan", "done", nil, nil, day2, nil)

	mock.ExpectQuery(regexp.QuoteMeta("s.name AS student_name")).
		WithArgs("t1").
		WillReturnRows(rows)

	logs, err := repo.ByTeamAscending(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.NotNil(t, logs[0].StudentName)
	assert.Equal(t, "Asha", *logs[0].StudentName)
	assert.Equal(t, "STU1", logs[0].StudentID)
	// A log whose author no longer exists keeps a null name.
	assert.Nil(t, logs[1].StudentName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorklogPendingByTeamsFiltersUnreviewed(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewWorkLogRepository(db)
	now := time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "created_at", "date", "expected_task", "completed_task", "comments",
		"student_id", "student_name", "team_id", "team_topic", "team_code",
	}).AddRow("l1", now, now, "plan", "done", nil, "STU1", "Asha", "t1", "Energy Monitor", "B12")

	mock.ExpectQuery(regexp.QuoteMeta("l.mentor_approved IS NULL")).
		WithArgs("t1", "t2").
		WillReturnRows(rows)

	logs, err := repo.PendingByTeams(context.Background(), []string{"t1", "t2"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].TeamTopic)
	assert.Equal(t, "Energy Monitor", *logs[0].TeamTopic)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorklogPendingByTeamsEmptyTeams(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewWorkLogRepository(db)
	logs, err := repo.PendingByTeams(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestWorklogApproveWithComments(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewWorkLogRepository(db)
	comments := "looks good"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE logs SET mentor_approved = $2, comments = $3 WHERE id = $1")).
		WithArgs("l1", true, comments).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Approve(context.Background(), "l1", true, &comments)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
