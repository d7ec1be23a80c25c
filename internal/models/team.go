package models

import "time"

// Team is a student group working on one project topic. Department and
// section are fixed at creation; mentor stays null until assigned.
type Team struct {
	TeamID        string    `db:"team_id" json:"team_id"`
	Topic         string    `db:"topic" json:"topic"`
	Code          string    `db:"code" json:"code"`
	Department    string    `db:"department" json:"department"`
	Section       string    `db:"section" json:"section"`
	TeamLead      *string   `db:"team_lead" json:"team_lead"`
	Mentor        *string   `db:"mentor" json:"mentor"`
	IsApproved    *bool     `db:"is_approved" json:"is_approved"`
	CurrentStatus string    `db:"current_status" json:"current_status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
