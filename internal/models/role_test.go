package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRolesCombination(t *testing.T) {
	rs := ParseRoles("CLASS_ADVISOR+PROJECT_MENTOR")

	assert.True(t, rs.Has(RoleClassAdvisor))
	assert.True(t, rs.Has(RoleProjectMentor))
	assert.False(t, rs.Has(RoleHOD))
	assert.False(t, rs.Only(RoleClassAdvisor))
	assert.Equal(t, "CLASS_ADVISOR+PROJECT_MENTOR", rs.String())
}

func TestParseRolesSingle(t *testing.T) {
	rs := ParseRoles("HOD")

	assert.True(t, rs.Has(RoleHOD))
	assert.True(t, rs.Only(RoleHOD))
	assert.False(t, rs.Has(RoleProjectMentor))
}

func TestParseRolesEmpty(t *testing.T) {
	rs := ParseRoles("")

	assert.False(t, rs.Has(RoleHOD))
	assert.False(t, rs.Has(RoleClassAdvisor))
	assert.False(t, rs.Has(RoleProjectMentor))
}

func TestIsValidRole(t *testing.T) {
	for _, role := range ValidRoles {
		assert.True(t, IsValidRole(role), role)
	}
	assert.False(t, IsValidRole("ADMIN"))
	assert.False(t, IsValidRole("hod"))
	assert.False(t, IsValidRole("PROJECT_MENTOR+HOD"))
}
