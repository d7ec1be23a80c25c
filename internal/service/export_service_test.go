package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type exportReviewStub struct {
	reviews  []models.Review
	gotScope policy.Scope
}

func (s *exportReviewStub) ListScoped(ctx context.Context, scope policy.Scope) ([]models.Review, error) {
	s.gotScope = scope
	return s.reviews, nil
}

type exportTeamStub struct {
	team *models.Team
}

func (s *exportTeamStub) FindByID(ctx context.Context, teamID string) (*models.Team, error) {
	return s.team, nil
}

func TestExportMarksSheetCSV(t *testing.T) {
	marks := 88
	result := "Pass"
	completed := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	reviews := &exportReviewStub{reviews: []models.Review{
		{TeamID: "t1", Stage: "Review 1", IsCompleted: true, Marks: &marks, Result: &result, CompletedOn: &completed},
	}}
	teams := &exportTeamStub{team: &models.Team{TeamID: "t1", Topic: "Energy Monitor", Code: "B12"}}
	svc := NewExportService(reviews, teams, nil, nil, zap.NewNop())

	hod := &models.Principal{StaffID: "S1", Roles: models.ParseRoles("HOD"), Department: "CSE"}
	sheet, err := svc.MarksSheet(context.Background(), hod, ExportFormatCSV)

	require.NoError(t, err)
	assert.Equal(t, "text/csv", sheet.ContentType)
	assert.Equal(t, "review-marks.csv", sheet.Filename)
	assert.Equal(t, "CSE", reviews.gotScope.Department)

	body := string(sheet.Payload)
	assert.True(t, strings.HasPrefix(body, "Team,Code,Stage,Status,Marks,Result,Completed On"))
	assert.Contains(t, body, "Energy Monitor,B12,Review 1,Done,88,Pass,2026-03-05")
}

func TestExportMarksSheetPDF(t *testing.T) {
	reviews := &exportReviewStub{reviews: []models.Review{{TeamID: "t1", Stage: "Review 1"}}}
	teams := &exportTeamStub{team: &models.Team{TeamID: "t1", Topic: "Energy Monitor", Code: "B12"}}
	svc := NewExportService(reviews, teams, nil, nil, zap.NewNop())

	hod := &models.Principal{StaffID: "S1", Roles: models.ParseRoles("HOD"), Department: "CSE"}
	sheet, err := svc.MarksSheet(context.Background(), hod, ExportFormatPDF)

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", sheet.ContentType)
	assert.Equal(t, "%PDF", string(sheet.Payload[:4]))
}

func TestExportMarksSheetOutOfScopeIsEmpty(t *testing.T) {
	reviews := &exportReviewStub{reviews: []models.Review{{TeamID: "t1", Stage: "Review 1"}}}
	svc := NewExportService(reviews, &exportTeamStub{}, nil, nil, zap.NewNop())

	// No recognized role means no reviews, but the sheet still renders.
	stranger := &models.Principal{StaffID: "S7", Roles: models.ParseRoles("")}
	sheet, err := svc.MarksSheet(context.Background(), stranger, ExportFormatCSV)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(sheet.Payload)), "\n")
	assert.Len(t, lines, 1)
	assert.Empty(t, reviews.gotScope.Department)
}

func TestExportMarksSheetUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&exportReviewStub{}, &exportTeamStub{}, nil, nil, zap.NewNop())

	hod := &models.Principal{StaffID: "S1", Roles: models.ParseRoles("HOD"), Department: "CSE"}
	_, err := svc.MarksSheet(context.Background(), hod, ExportFormat("xlsx"))

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Status, appErr.Status)
}
