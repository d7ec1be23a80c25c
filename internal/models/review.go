package models

import "time"

// ReviewStages lists the named checkpoints of the evaluation calendar.
var ReviewStages = []string{"Review 0", "Review 1", "Review 2", "Review 3", "Final Review"}

// Review is one team's evaluation at one stage. Rows are created in bulk
// by schedule fan-out and mutated by evaluators.
type Review struct {
	ID          string     `db:"id" json:"id"`
	TeamID      string     `db:"team_id" json:"team_id"`
	Stage       string     `db:"stage" json:"stage"`
	Department  string     `db:"department" json:"department"`
	Section     *string    `db:"section" json:"section,omitempty"`
	IsCompleted bool       `db:"is_completed" json:"is_completed"`
	CompletedOn *time.Time `db:"completed_on" json:"completed_on"`
	Result      *string    `db:"result" json:"result"`
	Marks       *int       `db:"marks" json:"marks"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// ReviewAttachment is append-only evidence attached to a review.
type ReviewAttachment struct {
	ID        string    `db:"id" json:"id"`
	ReviewID  string    `db:"review_id" json:"review_id"`
	Name      string    `db:"name" json:"name"`
	Link      string    `db:"link" json:"link"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ReviewTemplate is a reference document associated with a review stage.
type ReviewTemplate struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Link      string    `db:"link" json:"link"`
	Review    string    `db:"review" json:"review"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
