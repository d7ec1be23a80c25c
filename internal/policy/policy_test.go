package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kite-portal/mentor-api/internal/models"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

func principal(role, department, section string) *models.Principal {
	return &models.Principal{
		StaffID:    "S100",
		Roles:      models.ParseRoles(role),
		Department: department,
		Section:    section,
	}
}

func TestDecideTeamReadScopes(t *testing.T) {
	hod := principal("HOD", "CSE", "A")
	scope, err := Decide(hod, Teams, Read)
	require.NoError(t, err)
	assert.Equal(t, Scope{Department: "CSE"}, scope)

	advisor := principal("CLASS_ADVISOR", "CSE", "B")
	scope, err = Decide(advisor, Teams, Read)
	require.NoError(t, err)
	assert.Equal(t, Scope{Department: "CSE", Section: "B"}, scope)

	mentor := principal("PROJECT_MENTOR", "CSE", "A")
	scope, err = Decide(mentor, Teams, Read)
	require.NoError(t, err)
	assert.Equal(t, Scope{MentorID: "S100"}, scope)
}

func TestDecideCombinationRoleWidestScopeWins(t *testing.T) {
	combo := principal("HOD+PROJECT_MENTOR", "ECE", "A")

	scope, err := Decide(combo, Teams, Read)
	require.NoError(t, err)
	assert.Equal(t, Scope{Department: "ECE"}, scope)

	scope, err = Decide(combo, Reviews, Evaluate)
	require.NoError(t, err)
	assert.Equal(t, Scope{Department: "ECE"}, scope)
}

func TestDecideAdvisorMentorComboCanCreateSchedules(t *testing.T) {
	combo := principal("CLASS_ADVISOR+PROJECT_MENTOR", "CSE", "A")

	scope, err := Decide(combo, Schedules, Create)
	require.NoError(t, err)
	assert.Equal(t, Scope{Department: "CSE", Section: "A"}, scope)
}

func TestDecidePureMentorCannotCreateSchedules(t *testing.T) {
	mentor := principal("PROJECT_MENTOR", "CSE", "A")

	_, err := Decide(mentor, Schedules, Create)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestDecideReadNoMatchIsEmptyResult(t *testing.T) {
	advisor := principal("CLASS_ADVISOR", "CSE", "A")

	_, err := Decide(advisor, Logs, Read)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestDecideWriteNoMatchIsForbidden(t *testing.T) {
	advisor := principal("CLASS_ADVISOR", "CSE", "A")

	_, err := Decide(advisor, Teams, Approve)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	mentor := principal("PROJECT_MENTOR", "CSE", "A")
	_, err = Decide(mentor, Staff, Create)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestDecideNilPrincipal(t *testing.T) {
	_, err := Decide(nil, Teams, Read)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestCanEvaluateReview(t *testing.T) {
	mentorID := "S100"
	other := "S200"

	hod := principal("HOD", "CSE", "A")
	assert.True(t, CanEvaluateReview(hod, &other, "CSE"))
	assert.False(t, CanEvaluateReview(hod, &other, "ECE"))

	mentor := principal("PROJECT_MENTOR", "CSE", "A")
	assert.True(t, CanEvaluateReview(mentor, &mentorID, "CSE"))
	assert.False(t, CanEvaluateReview(mentor, &other, "CSE"))
	assert.False(t, CanEvaluateReview(mentor, nil, "CSE"))

	advisor := principal("CLASS_ADVISOR", "CSE", "A")
	assert.False(t, CanEvaluateReview(advisor, &mentorID, "CSE"))
}

func TestInAssignScope(t *testing.T) {
	hod := principal("HOD", "CSE", "A")
	assert.True(t, InAssignScope(hod, "CSE", "B"))
	assert.False(t, InAssignScope(hod, "ECE", "A"))

	advisor := principal("CLASS_ADVISOR", "CSE", "A")
	assert.True(t, InAssignScope(advisor, "CSE", "A"))
	assert.False(t, InAssignScope(advisor, "CSE", "B"))

	mentor := principal("PROJECT_MENTOR", "CSE", "A")
	assert.False(t, InAssignScope(mentor, "CSE", "A"))
}

func TestOwnsTeam(t *testing.T) {
	mentorID := "S100"
	other := "S200"

	mentor := principal("PROJECT_MENTOR", "CSE", "A")
	assert.True(t, OwnsTeam(mentor, &mentorID))
	assert.False(t, OwnsTeam(mentor, &other))
	assert.False(t, OwnsTeam(mentor, nil))
}
