package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/kite-portal/mentor-api/internal/policy"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func teamRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"team_id", "topic", "code", "department", "section", "team_lead", "mentor", "is_approved", "current_status", "created_at"})
}

func TestTeamListScopedDepartmentFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTeamRepository(db)
	rows := teamRows().
		AddRow("t1", "IoT irrigation", "B1", "CSE", "A", nil, nil, true, "ACTIVE", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("CSE").
		WillReturnRows(rows)

	teams, err := repo.ListScoped(context.Background(), policy.Scope{Department: "CSE"})
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.Equal(t, "t1", teams[0].TeamID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamListScopedMentorFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTeamRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("S9").
		WillReturnRows(teamRows())

	teams, err := repo.ListScoped(context.Background(), policy.Scope{MentorID: "S9"})
	require.NoError(t, err)
	require.Empty(t, teams)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamUpdateApproval(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTeamRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE teams SET is_approved")).
		WithArgs("t1", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateApproval(context.Background(), "t1", true))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamApprovedTeamIDsSectionNarrowing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTeamRepository(db)
	rows := sqlmock.NewRows([]string{"team_id"}).AddRow("t1").AddRow("t2")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT team_id FROM teams WHERE department = $1 AND is_approved = TRUE AND section = $2")).
		WithArgs("CSE", "A").
		WillReturnRows(rows)

	ids, err := repo.ApprovedTeamIDs(context.Background(), "CSE", "A")
	require.NoError(t, err)
	require.Equal(t, []string{"t1", "t2"}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamCountByMentor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTeamRepository(db)
	rows := sqlmock.NewRows([]string{"mentor", "count"}).AddRow("S9", 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT mentor, COUNT(*)")).
		WillReturnRows(rows)

	counts, err := repo.CountByMentor(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 1)
	require.Equal(t, 2, counts[0].Count)
	require.NoError(t, mock.ExpectationsWereMet())
}
