package models

import (
	"time"

	"github.com/lib/pq"
)

// Project carries the two-stage approval chain: IsApproved is the mentor
// decision and must be true before IsHODApproved may be set.
type Project struct {
	ProjectID     string         `db:"project_id" json:"project_id"`
	Title         string         `db:"title" json:"title"`
	TeamID        string         `db:"team_id" json:"team_id"`
	Theme         pq.StringArray `db:"theme" json:"theme"`
	IsApproved    *bool          `db:"is_approved" json:"is_approved"`
	IsHODApproved *bool          `db:"is_hod_approved" json:"is_hod_approved"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}
