package models

import "time"

// Schedule is a review window for a department. Creating one fans out a
// Review row per approved team in scope (table project_reviews).
type Schedule struct {
	ID         string    `db:"id" json:"id"`
	Stage      string    `db:"stage" json:"stage"`
	Department string    `db:"department" json:"department"`
	Start      time.Time `db:"start_date" json:"start"`
	End        time.Time `db:"end_date" json:"end"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
