// Package dto holds the denormalized view objects the API returns.
// Missing secondary references degrade to null fields, never errors.
package dto

import (
	"time"

	"github.com/kite-portal/mentor-api/internal/models"
)

// TeamListItem is a team row enriched with resolved names for dashboards.
type TeamListItem struct {
	models.Team
	MentorName   *string `json:"mentor_name"`
	TeamLeadName *string `json:"team_lead_name"`
}

// TeamDetail is the composed team view.
type TeamDetail struct {
	Team      models.Team        `json:"team"`
	TeamLead  *models.Student    `json:"teamLead"`
	Mentor    *models.StaffInfo  `json:"mentor"`
	Reviews   []models.Review    `json:"reviews"`
	Schedules []models.Schedule  `json:"schedules"`
}

// ProjectListItem is a project row joined through its team.
type ProjectListItem struct {
	models.Project
	TeamDepartment string  `json:"team_department"`
	TeamSection    string  `json:"team_section"`
	TeamLeadName   *string `json:"team_lead_name"`
	MentorName     *string `json:"mentor_name"`
	MentorID       *string `json:"mentor_id"`
}

// ProjectDetail is the composed project view.
type ProjectDetail struct {
	Project  models.Project    `json:"project"`
	Team     *models.Team      `json:"team"`
	TeamLead *models.Student   `json:"teamLead"`
	Mentor   *models.StaffInfo `json:"mentor"`
	Reviews  []models.Review   `json:"reviews"`
}

// ReviewItem is a review row enriched with team and attachment data.
type ReviewItem struct {
	ID           string                    `json:"id"`
	TeamID       string                    `json:"team_id"`
	Stage        string                    `json:"stage"`
	Department   string                    `json:"department"`
	IsCompleted  bool                      `json:"is_completed"`
	CompletedOn  *time.Time                `json:"completed_on"`
	Result       *string                   `json:"result"`
	Marks        *int                      `json:"marks"`
	CreatedAt    time.Time                 `json:"created_at"`
	TeamTopic    *string                   `json:"team_topic"`
	TeamCode     *string                   `json:"team_code"`
	TeamSection  *string                   `json:"team_section"`
	TeamLeadID   *string                   `json:"team_lead_id"`
	TeamLeadName *string                   `json:"team_lead_name"`
	Attachments  []models.ReviewAttachment `json:"attachments"`
}

// PendingLog is an unreviewed log row with student and team context.
type PendingLog struct {
	ID            string    `db:"id" json:"id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	Date          time.Time `db:"date" json:"date"`
	ExpectedTask  string    `db:"expected_task" json:"expected_task"`
	CompletedTask string    `db:"completed_task" json:"completed_task"`
	Comments      *string   `db:"comments" json:"comments"`
	StudentID     string    `db:"student_id" json:"student_id"`
	StudentName   *string   `db:"student_name" json:"student_name"`
	TeamID        string    `db:"team_id" json:"team_id"`
	TeamTopic     *string   `db:"team_topic" json:"team_topic"`
	TeamCode      *string   `db:"team_code" json:"team_code"`
}

// StudentLog is one student's log row with team context and the decision.
type StudentLog struct {
	ID             string    `db:"id" json:"id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	Date           time.Time `db:"date" json:"date"`
	ExpectedTask   string    `db:"expected_task" json:"expected_task"`
	CompletedTask  string    `db:"completed_task" json:"completed_task"`
	Comments       *string   `db:"comments" json:"comments"`
	MentorApproved *bool     `db:"mentor_approved" json:"mentor_approved"`
	TeamID         string    `db:"team_id" json:"team_id"`
	TeamTopic      *string   `db:"team_topic" json:"team_topic"`
	TeamCode       *string   `db:"team_code" json:"team_code"`
}

// DiaryLog is a log entry with the author's name for diary narration.
type DiaryLog struct {
	models.WorkLog
	StudentName *string `db:"student_name" json:"student_name"`
}

// DiaryData is everything the diary document is built from. Logs are date
// ascending and reviews creation ascending (narrative order).
type DiaryData struct {
	Team     models.Team       `json:"team"`
	Students []models.Student  `json:"students"`
	TeamLead *models.Student   `json:"teamLead"`
	Mentor   *models.StaffInfo `json:"mentor"`
	Logs     []DiaryLog        `json:"logs"`
	Reviews  []models.Review   `json:"reviews"`
	Project  *models.Project   `json:"project"`
}

// AvailableStaff is a staff row with current mentoring load.
type AvailableStaff struct {
	models.Staff
	TeamCount int `json:"team_count"`
}
