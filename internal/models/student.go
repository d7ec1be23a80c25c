package models

import "time"

// Student is read-only from this system's perspective; rosters are
// provisioned elsewhere.
type Student struct {
	StudentID      string    `db:"student_id" json:"student_id"`
	Name           string    `db:"name" json:"name"`
	RegisterNumber string    `db:"register_number" json:"register_number"`
	Department     string    `db:"department" json:"department"`
	Section        string    `db:"section" json:"section"`
	TeamID         *string   `db:"team_id" json:"team_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
