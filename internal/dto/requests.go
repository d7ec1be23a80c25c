package dto

import "time"

// UpdateTeamApprovalRequest carries the HOD decision on a team.
type UpdateTeamApprovalRequest struct {
	TeamID     string `json:"team_id" validate:"required"`
	IsApproved *bool  `json:"is_approved" validate:"required"`
}

// AssignMentorRequest nominates a staff member as a team's mentor.
type AssignMentorRequest struct {
	MentorID string `json:"mentor_id" validate:"required"`
}

// AssignTeamMentorRequest is the wire form of a mentor assignment.
type AssignTeamMentorRequest struct {
	TeamID   string `json:"team_id" validate:"required"`
	MentorID string `json:"mentor_id" validate:"required"`
}

// ProjectApprovalRequest carries an approval decision on a project.
type ProjectApprovalRequest struct {
	ProjectID string `json:"project_id" validate:"required"`
	Approved  *bool  `json:"approved" validate:"required"`
}

// EvaluateReviewRequest is the evaluator's write. Omitted fields are left
// unchanged.
type EvaluateReviewRequest struct {
	Result      *string `json:"result"`
	Marks       *int    `json:"marks" validate:"omitempty,min=0,max=100"`
	IsCompleted *bool   `json:"is_completed"`
}

// UpdateReviewRequest is the wire form of an evaluation write.
type UpdateReviewRequest struct {
	ReviewID    string  `json:"review_id" validate:"required"`
	Result      *string `json:"result"`
	Marks       *int    `json:"marks" validate:"omitempty,min=0,max=100"`
	IsCompleted *bool   `json:"is_completed"`
}

// CreateScheduleRequest opens a review window. Department must match the
// caller's own department.
type CreateScheduleRequest struct {
	Stage      string    `json:"stage" validate:"required"`
	Department string    `json:"department" validate:"required"`
	Start      time.Time `json:"start" validate:"required"`
	End        time.Time `json:"end" validate:"required"`
}

// CreateScheduleResponse reports the window and its fan-out size.
type CreateScheduleResponse struct {
	Message        string `json:"message"`
	ScheduleID     string `json:"schedule_id"`
	TeamsScheduled int    `json:"teamsScheduled"`
}

// ApproveLogRequest carries the mentor's decision and optional remarks.
type ApproveLogRequest struct {
	Approved *bool   `json:"approved" validate:"required"`
	Comments *string `json:"comments"`
}

// ApproveLogWireRequest is the wire form of a log decision.
type ApproveLogWireRequest struct {
	LogID    string  `json:"log_id" validate:"required"`
	Approved *bool   `json:"approved" validate:"required"`
	Comments *string `json:"comments"`
}

// DiaryRequest names the team a diary is generated for.
type DiaryRequest struct {
	TeamID string `json:"teamId" validate:"required"`
}

// CreateStaffRequest provisions a staff account in the caller's
// department.
type CreateStaffRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required"`
	StaffID  string  `json:"staff_id"`
	Section  string  `json:"section"`
	Domain   *string `json:"domain"`
}

// CreateTemplateRequest registers a reference document for a review
// stage.
type CreateTemplateRequest struct {
	Name   string `json:"name" validate:"required"`
	Link   string `json:"link" validate:"required,url"`
	Review string `json:"review" validate:"required"`
}
