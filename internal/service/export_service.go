package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
	"github.com/kite-portal/mentor-api/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type exportReviewReader interface {
	ListScoped(ctx context.Context, scope policy.Scope) ([]models.Review, error)
}

type exportTeamReader interface {
	FindByID(ctx context.Context, teamID string) (*models.Team, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered marks sheet.
type ExportResult struct {
	Payload     []byte
	ContentType string
	Filename    string
}

// ExportService renders the review marks sheet for the caller's scope.
type ExportService struct {
	reviews exportReviewReader
	teams   exportTeamReader
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(reviews exportReviewReader, teams exportTeamReader, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{reviews: reviews, teams: teams, csv: csv, pdf: pdf, logger: logger}
}

var exportHeaders = []string{"Team", "Code", "Stage", "Status", "Marks", "Result", "Completed On"}

// MarksSheet renders the reviews in the caller's scope as a flat table.
func (s *ExportService) MarksSheet(ctx context.Context, p *models.Principal, format ExportFormat) (*ExportResult, error) {
	var reviews []models.Review
	scope, err := policy.Decide(p, policy.Reviews, policy.Read)
	switch {
	case errors.Is(err, policy.ErrNoMatch):
		// An out-of-scope caller gets an empty sheet.
	case err != nil:
		return nil, err
	default:
		reviews, err = s.reviews.ListScoped(ctx, scope)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviews")
		}
	}

	dataset := export.Dataset{Headers: exportHeaders}
	for _, review := range reviews {
		topic, code := "", ""
		if team, err := s.teams.FindByID(ctx, review.TeamID); err == nil {
			topic, code = team.Topic, team.Code
		}
		status := "Pending"
		if review.IsCompleted {
			status = "Done"
		}
		marks := ""
		if review.Marks != nil {
			marks = fmt.Sprintf("%d", *review.Marks)
		}
		result := ""
		if review.Result != nil {
			result = *review.Result
		}
		completed := ""
		if review.CompletedOn != nil {
			completed = review.CompletedOn.Format("2006-01-02")
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Team":         topic,
			"Code":         code,
			"Stage":        review.Stage,
			"Status":       status,
			"Marks":        marks,
			"Result":       result,
			"Completed On": completed,
		})
	}

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
		}
		return &ExportResult{Payload: payload, ContentType: "text/csv", Filename: "review-marks.csv"}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Review Marks")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
		}
		return &ExportResult{Payload: payload, ContentType: "application/pdf", Filename: "review-marks.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
