package models

import "strings"

// RoleTag is a single staff role. Staff may hold combinations, stored on
// the wire as a "+"-joined string such as "CLASS_ADVISOR+PROJECT_MENTOR".
type RoleTag string

const (
	RoleHOD           RoleTag = "HOD"
	RoleClassAdvisor  RoleTag = "CLASS_ADVISOR"
	RoleProjectMentor RoleTag = "PROJECT_MENTOR"
)

// ValidRoles enumerates the accepted role strings for staff creation.
var ValidRoles = []string{
	"PROJECT_MENTOR",
	"CLASS_ADVISOR",
	"HOD",
	"HOD+PROJECT_MENTOR",
	"CLASS_ADVISOR+PROJECT_MENTOR",
}

// RoleSet is the parsed form of a role string. Membership tests reproduce
// the legacy substring-contains semantics for combination roles.
type RoleSet struct {
	raw  string
	tags map[RoleTag]struct{}
}

// ParseRoles splits a "+"-joined role string into a RoleSet.
func ParseRoles(raw string) RoleSet {
	tags := make(map[RoleTag]struct{})
	for _, part := range strings.Split(raw, "+") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags[RoleTag(part)] = struct{}{}
		}
	}
	return RoleSet{raw: raw, tags: tags}
}

// Has reports whether the set contains the given role.
func (rs RoleSet) Has(tag RoleTag) bool {
	_, ok := rs.tags[tag]
	return ok
}

// Only reports whether the set contains the given role and nothing else.
func (rs RoleSet) Only(tag RoleTag) bool {
	return len(rs.tags) == 1 && rs.Has(tag)
}

// String returns the original wire form.
func (rs RoleSet) String() string {
	return rs.raw
}

// IsValidRole reports whether raw is one of the accepted role strings.
func IsValidRole(raw string) bool {
	for _, r := range ValidRoles {
		if raw == r {
			return true
		}
	}
	return false
}
