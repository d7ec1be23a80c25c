package diary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
)

func diaryTeam() models.Team {
	lead := "STU1"
	return models.Team{
		TeamID:     "t1",
		Topic:      "Campus Energy Monitor",
		Code:       "B12",
		Department: "CSE",
		Section:    "A",
		TeamLead:   &lead,
	}
}

func diaryLog(studentID string, day int) dto.DiaryLog {
	name := "Student " + studentID
	return dto.DiaryLog{
		WorkLog: models.WorkLog{
			ID:            "l-" + studentID,
			StudentID:     studentID,
			TeamID:        "t1",
			Date:          time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC),
			ExpectedTask:  "plan",
			CompletedTask: "done",
		},
		StudentName: &name,
	}
}

func TestRenderEmptyDataStillProducesDocument(t *testing.T) {
	data := dto.DiaryData{Team: diaryTeam()}

	payload, err := Render(data, HeaderArt{Institution: "KITE", DocRef: "PW-01"})
	require.NoError(t, err)
	assert.NotEmpty(t, payload)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestRenderWithFullData(t *testing.T) {
	marks1, marks2 := 80, 90
	result := "Good progress"
	completed := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	data := dto.DiaryData{
		Team: diaryTeam(),
		Students: []models.Student{
			{StudentID: "STU1", Name: "Asha", RegisterNumber: "727821"},
			{StudentID: "STU2", Name: "Vimal", RegisterNumber: "727822"},
		},
		Mentor: &models.StaffInfo{Name: "Dr. Rao", StaffID: "S9"},
		Logs: []dto.DiaryLog{
			diaryLog("STU1", 2),
			diaryLog("STU2", 3),
		},
		Reviews: []models.Review{
			{Stage: "Review 1", Marks: &marks1, IsCompleted: true, CompletedOn: &completed, Result: &result},
			{Stage: "Review 2", Marks: &marks2},
		},
		Project: &models.Project{Title: "Energy Telemetry Platform"},
	}

	payload, err := Render(data, HeaderArt{Institution: "KITE"})
	require.NoError(t, err)
	assert.NotEmpty(t, payload)
}

func TestRenderCorruptHeaderImageFallsBackToText(t *testing.T) {
	data := dto.DiaryData{Team: diaryTeam()}
	header := HeaderArt{Image: []byte("not an image"), ImageType: "PNG", Institution: "KITE"}

	payload, err := Render(data, header)
	require.NoError(t, err)
	assert.NotEmpty(t, payload)
}

func TestDistinctDatesChronological(t *testing.T) {
	logs := []dto.DiaryLog{
		diaryLog("STU1", 10),
		diaryLog("STU2", 3),
		diaryLog("STU3", 10),
		diaryLog("STU4", 7),
	}

	dates := distinctDates(logs)
	assert.Equal(t, []string{"03/02", "07/02", "10/02"}, dates)
}

func reviewWithMarks(stage string, marks int) models.Review {
	return models.Review{Stage: stage, Marks: &marks}
}

func TestInternalMarkSkipsZeroMarks(t *testing.T) {
	reviews := []models.Review{
		reviewWithMarks("Review 1", 80),
		reviewWithMarks("Review 2", 0),
		reviewWithMarks("Review 3", 90),
	}
	// A zero mark is an unevaluated review, not a score: mean is (80+90)/2.
	assert.Equal(t, "85", internalMark(reviews))
}

func TestInternalMarkRoundsToNearest(t *testing.T) {
	reviews := []models.Review{
		reviewWithMarks("Review 1", 80),
		reviewWithMarks("Review 2", 85),
	}
	assert.Equal(t, "83", internalMark(reviews))
}

func TestInternalMarkEmptyWithoutScores(t *testing.T) {
	assert.Equal(t, "", internalMark(nil))
	assert.Equal(t, "", internalMark([]models.Review{reviewWithMarks("Review 1", 0)}))
	assert.Equal(t, "", internalMark([]models.Review{{Stage: "Review 1"}}))
}

func TestInternalMarkIgnoresReviewsBeyondThird(t *testing.T) {
	reviews := []models.Review{
		reviewWithMarks("Review 1", 80),
		reviewWithMarks("Review 2", 80),
		reviewWithMarks("Review 3", 80),
		reviewWithMarks("Model Review", 10),
	}
	assert.Equal(t, "80", internalMark(reviews))
}

func TestReviewMarksFormatsFirstThree(t *testing.T) {
	reviews := []models.Review{
		reviewWithMarks("Review 1", 75),
		{Stage: "Review 2"},
	}
	marks := reviewMarks(reviews)
	assert.Equal(t, "75", marks[0])
	assert.Equal(t, "", marks[1])
	assert.Equal(t, "", marks[2])
}
