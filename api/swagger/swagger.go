package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Mentor Portal API",
        "description": "Staff portal for project mentoring: teams, projects, reviews, schedules, work logs and the project diary",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Session management"},
        {"name": "Teams", "description": "Team dashboard and workflows"},
        {"name": "Projects", "description": "Project dashboard and approval chain"},
        {"name": "Reviews", "description": "Evaluations and templates"},
        {"name": "Schedules", "description": "Review calendar"},
        {"name": "Logs", "description": "Student work log review"},
        {"name": "Staff", "description": "Staff provisioning and availability"},
        {"name": "Diary", "description": "Project diary generation"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate staff member",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK, session cookie set"},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "End the current session",
                "responses": {
                    "200": {"description": "Logged out"}
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SessionView"}},
                    "401": {"description": "No session", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/teams": {
            "get": {
                "tags": ["Teams"],
                "summary": "List teams in role scope",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/teams/details": {
            "get": {
                "tags": ["Teams"],
                "summary": "Composed team view",
                "parameters": [
                    {"name": "team_id", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/teams/update-approval": {
            "patch": {
                "tags": ["Teams"],
                "summary": "Approve or reject a team",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTeamApprovalRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/teams/assign-mentor": {
            "patch": {
                "tags": ["Teams"],
                "summary": "Assign a mentor to a team",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignTeamMentorRequest"}}
                ],
                "responses": {
                    "200": {"description": "Assigned"},
                    "409": {"description": "Mentor at capacity", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/projects": {
            "get": {
                "tags": ["Projects"],
                "summary": "List projects in role scope",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/projects/details": {
            "get": {
                "tags": ["Projects"],
                "summary": "Composed project view",
                "parameters": [
                    {"name": "project_id", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/projects/approve-mentors": {
            "post": {
                "tags": ["Projects"],
                "summary": "Mentor decision on a project",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProjectApprovalRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/projects/approve-hod": {
            "patch": {
                "tags": ["Projects"],
                "summary": "HOD decision on a project",
                "description": "The mentor approval must already be granted",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProjectApprovalRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "400": {"description": "Chain out of order", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/reviews": {
            "get": {
                "tags": ["Reviews"],
                "summary": "List reviews in role scope",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/reviews/export": {
            "get": {
                "tags": ["Reviews"],
                "summary": "Export the review marks sheet",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "Rendered sheet"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/reviews/update": {
            "patch": {
                "tags": ["Reviews"],
                "summary": "Evaluate a review",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/reviews/templates": {
            "get": {
                "tags": ["Reviews"],
                "summary": "List review templates",
                "parameters": [
                    {"name": "review", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Reviews"],
                "summary": "Register a review template",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTemplateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List review schedules in role scope",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/schedules/create": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Open a review window",
                "description": "Creates one pending review per approved team in scope",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/logs/pending": {
            "get": {
                "tags": ["Logs"],
                "summary": "Unreviewed logs across the mentor's teams",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/logs/student": {
            "get": {
                "tags": ["Logs"],
                "summary": "One student's logs",
                "parameters": [
                    {"name": "student_id", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/logs/students": {
            "get": {
                "tags": ["Logs"],
                "summary": "Students with logs in the mentor's teams",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/logs/approve": {
            "patch": {
                "tags": ["Logs"],
                "summary": "Review a log entry",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApproveLogRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/staff/create": {
            "post": {
                "tags": ["Staff"],
                "summary": "Provision a staff account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStaffRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Duplicate email", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/staff/available": {
            "get": {
                "tags": ["Staff"],
                "summary": "Mentors with capacity left",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/diary/generate": {
            "post": {
                "tags": ["Diary"],
                "summary": "Aggregated diary payload",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DiaryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        },
        "/diary/pdf": {
            "post": {
                "tags": ["Diary"],
                "summary": "Printable project diary",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DiaryRequest"}}
                ],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF document"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorMessage"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "SessionView": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "staffId": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "department": {"type": "string"},
                "section": {"type": "string"}
            }
        },
        "UpdateTeamApprovalRequest": {
            "type": "object",
            "required": ["team_id", "is_approved"],
            "properties": {
                "team_id": {"type": "string"},
                "is_approved": {"type": "boolean"}
            }
        },
        "AssignTeamMentorRequest": {
            "type": "object",
            "required": ["team_id", "mentor_id"],
            "properties": {
                "team_id": {"type": "string"},
                "mentor_id": {"type": "string"}
            }
        },
        "ProjectApprovalRequest": {
            "type": "object",
            "required": ["project_id", "approved"],
            "properties": {
                "project_id": {"type": "string"},
                "approved": {"type": "boolean"}
            }
        },
        "UpdateReviewRequest": {
            "type": "object",
            "required": ["review_id"],
            "properties": {
                "review_id": {"type": "string"},
                "result": {"type": "string"},
                "marks": {"type": "integer"},
                "is_completed": {"type": "boolean"}
            }
        },
        "CreateTemplateRequest": {
            "type": "object",
            "required": ["name", "link", "review"],
            "properties": {
                "name": {"type": "string"},
                "link": {"type": "string"},
                "review": {"type": "string"}
            }
        },
        "CreateScheduleRequest": {
            "type": "object",
            "required": ["stage", "department", "start", "end"],
            "properties": {
                "stage": {"type": "string"},
                "department": {"type": "string"},
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"}
            }
        },
        "ApproveLogRequest": {
            "type": "object",
            "required": ["log_id", "approved"],
            "properties": {
                "log_id": {"type": "string"},
                "approved": {"type": "boolean"},
                "comments": {"type": "string"}
            }
        },
        "CreateStaffRequest": {
            "type": "object",
            "required": ["name", "email", "password", "role"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"},
                "staff_id": {"type": "string"},
                "section": {"type": "string"},
                "domain": {"type": "string"}
            }
        },
        "DiaryRequest": {
            "type": "object",
            "required": ["teamId"],
            "properties": {
                "teamId": {"type": "string"}
            }
        },
        "ErrorMessage": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
