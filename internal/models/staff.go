package models

import "time"

// Staff represents a staff member stored in the staffs table.
type Staff struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	StaffID      string    `db:"staff_id" json:"staff_id"`
	Department   string    `db:"department" json:"department"`
	Section      string    `db:"section" json:"section"`
	Domain       *string   `db:"domain" json:"domain,omitempty"`
	IEAllocated  bool      `db:"ie_allocated" json:"ie_allocated"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Roles returns the parsed role set.
func (s *Staff) Roles() RoleSet {
	return ParseRoles(s.Role)
}

// StaffInfo is the projection of a staff member safe to embed in
// aggregate responses. The credential never leaves the auth path.
type StaffInfo struct {
	ID         string `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	Email      string `db:"email" json:"email"`
	Role       string `db:"role" json:"role"`
	StaffID    string `db:"staff_id" json:"staff_id"`
	Department string `db:"department" json:"department"`
	Section    string `db:"section" json:"section"`
}

// Principal is the authenticated caller resolved once per request and
// passed explicitly through policy and service layers.
type Principal struct {
	UserID     string
	StaffID    string
	Name       string
	Email      string
	Roles      RoleSet
	Department string
	Section    string
}
