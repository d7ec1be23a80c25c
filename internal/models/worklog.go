package models

import "time"

// WorkLog is a student's daily activity entry. Students write them outside
// this system; the assigned mentor moves MentorApproved from null to a
// decision.
type WorkLog struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	TeamID         string    `db:"team_id" json:"team_id"`
	Date           time.Time `db:"date" json:"date"`
	ExpectedTask   string    `db:"expected_task" json:"expected_task"`
	CompletedTask  string    `db:"completed_task" json:"completed_task"`
	Comments       *string   `db:"comments" json:"comments"`
	MentorApproved *bool     `db:"mentor_approved" json:"mentor_approved"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
