// Package policy is the single authorization table for the portal. Every
// endpoint asks Decide for a row-filter scope instead of duplicating role
// checks inline.
package policy

import (
	"errors"

	"github.com/kite-portal/mentor-api/internal/models"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

// Resource identifies the entity class an operation targets.
type Resource string

const (
	Teams     Resource = "teams"
	Projects  Resource = "projects"
	Reviews   Resource = "reviews"
	Schedules Resource = "schedules"
	Logs      Resource = "logs"
	Staff     Resource = "staff"
	Templates Resource = "templates"
)

// Operation is the action being authorized.
type Operation string

const (
	Read         Operation = "read"
	Approve      Operation = "approve"
	AssignMentor Operation = "assign_mentor"
	Evaluate     Operation = "evaluate"
	Create       Operation = "create"
)

// Scope is the row filter granted to a principal. Empty fields mean no
// restriction on that axis. MentorID scopes rows to teams mentored by
// that staff member (repositories resolve the indirection).
type Scope struct {
	Department string
	Section    string
	MentorID   string
}

// ErrNoMatch signals that no rule granted the principal any rows. Readers
// translate it to an empty result set; it is not a client-facing error.
var ErrNoMatch = errors.New("policy: no matching rule")

type rule struct {
	role  models.RoleTag
	scope func(p *models.Principal) Scope
}

func deptScope(p *models.Principal) Scope    { return Scope{Department: p.Department} }
func sectionScope(p *models.Principal) Scope { return Scope{Department: p.Department, Section: p.Section} }
func mentorScope(p *models.Principal) Scope  { return Scope{MentorID: p.StaffID} }

// rules is evaluated in order; the first rule whose role the principal
// holds wins. Combination roles therefore resolve to the widest scope
// they carry (HOD before CLASS_ADVISOR before PROJECT_MENTOR).
var rules = map[Resource]map[Operation][]rule{
	Teams: {
		Read: {
			{models.RoleHOD, deptScope},
			{models.RoleClassAdvisor, sectionScope},
			{models.RoleProjectMentor, mentorScope},
		},
		Approve: {
			{models.RoleHOD, deptScope},
		},
		AssignMentor: {
			{models.RoleHOD, deptScope},
			{models.RoleClassAdvisor, sectionScope},
		},
	},
	Projects: {
		Read: {
			{models.RoleHOD, deptScope},
			{models.RoleClassAdvisor, sectionScope},
			{models.RoleProjectMentor, mentorScope},
		},
		// Object-level checks (mentor owns team, HOD precondition) run in
		// the services on top of these role gates.
		Approve: {
			{models.RoleHOD, deptScope},
			{models.RoleProjectMentor, mentorScope},
		},
	},
	Reviews: {
		Read: {
			{models.RoleHOD, deptScope},
			{models.RoleClassAdvisor, sectionScope},
			{models.RoleProjectMentor, mentorScope},
		},
		Evaluate: {
			{models.RoleHOD, deptScope},
			{models.RoleProjectMentor, mentorScope},
		},
	},
	Schedules: {
		Read: {
			{models.RoleHOD, deptScope},
			{models.RoleClassAdvisor, deptScope},
			{models.RoleProjectMentor, mentorScope},
		},
		Create: {
			{models.RoleHOD, deptScope},
			{models.RoleClassAdvisor, sectionScope},
		},
	},
	Logs: {
		Read: {
			{models.RoleProjectMentor, mentorScope},
		},
		Approve: {
			{models.RoleProjectMentor, mentorScope},
		},
	},
	Staff: {
		Create: {
			{models.RoleHOD, deptScope},
		},
	},
	Templates: {
		Create: {
			{models.RoleHOD, deptScope},
			{models.RoleProjectMentor, mentorScope},
		},
	},
}

// Decide resolves the row filter a principal is granted for an operation.
// Reads with no matching rule return ErrNoMatch (empty result set); any
// other unmatched operation is Forbidden.
func Decide(p *models.Principal, res Resource, op Operation) (Scope, error) {
	if p == nil {
		return Scope{}, appErrors.ErrUnauthorized
	}

	ops, ok := rules[res]
	if !ok {
		return Scope{}, appErrors.ErrForbidden
	}
	candidates, ok := ops[op]
	if !ok {
		return Scope{}, appErrors.ErrForbidden
	}

	for _, r := range candidates {
		if p.Roles.Has(r.role) {
			return r.scope(p), nil
		}
	}

	if op == Read {
		return Scope{}, ErrNoMatch
	}
	return Scope{}, appErrors.ErrForbidden
}

// CanEvaluateReview reports whether the principal may evaluate a review
// for the given team. HODs evaluate anything in their department; mentors
// only their own teams.
func CanEvaluateReview(p *models.Principal, teamMentor *string, teamDepartment string) bool {
	if p.Roles.Has(models.RoleHOD) {
		return teamDepartment == p.Department
	}
	if p.Roles.Has(models.RoleProjectMentor) {
		return teamMentor != nil && *teamMentor == p.StaffID
	}
	return false
}

// OwnsTeam reports whether the principal is the assigned mentor of a team.
func OwnsTeam(p *models.Principal, teamMentor *string) bool {
	return teamMentor != nil && *teamMentor == p.StaffID
}

// InAssignScope reports whether a team falls inside the principal's mentor
// assignment scope: own department for HODs, own department and section
// for class advisors.
func InAssignScope(p *models.Principal, teamDepartment, teamSection string) bool {
	if p.Roles.Has(models.RoleHOD) {
		return teamDepartment == p.Department
	}
	if p.Roles.Has(models.RoleClassAdvisor) {
		return teamDepartment == p.Department && teamSection == p.Section
	}
	return false
}
