package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kite-portal/mentor-api/internal/diary"
	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type diaryTeamReader interface {
	FindByID(ctx context.Context, teamID string) (*models.Team, error)
}

type diaryStudentReader interface {
	FindByID(ctx context.Context, studentID string) (*models.Student, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Student, error)
}

type diaryStaffReader interface {
	FindInfoByStaffID(ctx context.Context, staffID string) (*models.StaffInfo, error)
}

type diaryLogReader interface {
	ByTeamAscending(ctx context.Context, teamID string) ([]dto.DiaryLog, error)
}

type diaryReviewReader interface {
	ListByTeam(ctx context.Context, teamID string, ascending bool) ([]models.Review, error)
}

type diaryProjectReader interface {
	FindByTeam(ctx context.Context, teamID string) (*models.Project, error)
}

// DiaryConfig carries the rendering inputs that come from the
// environment.
type DiaryConfig struct {
	HeaderImageURL string
	Institution    string
	DocRef         string
}

// DiaryService aggregates the diary payload and renders the printable
// document.
type DiaryService struct {
	teams    diaryTeamReader
	students diaryStudentReader
	staff    diaryStaffReader
	logs     diaryLogReader
	reviews  diaryReviewReader
	projects diaryProjectReader
	client   *http.Client
	logger   *zap.Logger
	config   DiaryConfig
}

// NewDiaryService constructs a DiaryService instance. The HTTP client's
// timeout bounds the header image fetch.
func NewDiaryService(teams diaryTeamReader, students diaryStudentReader, staff diaryStaffReader, logs diaryLogReader, reviews diaryReviewReader, projects diaryProjectReader, client *http.Client, logger *zap.Logger, config DiaryConfig) *DiaryService {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiaryService{
		teams:    teams,
		students: students,
		staff:    staff,
		logs:     logs,
		reviews:  reviews,
		projects: projects,
		client:   client,
		logger:   logger,
		config:   config,
	}
}

// Aggregate collects everything the diary is built from. Logs are date
// ascending and reviews creation ascending. Missing secondary data
// degrades to nulls and empty slices.
func (s *DiaryService) Aggregate(ctx context.Context, p *models.Principal, teamID string) (*dto.DiaryData, error) {
	scope, err := policy.Decide(p, policy.Teams, policy.Read)
	if err != nil {
		if errors.Is(err, policy.ErrNoMatch) {
			return nil, appErrors.ErrNotFound
		}
		return nil, err
	}

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch team")
	}
	if scope.Department != "" && team.Department != scope.Department {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
	}
	if scope.Section != "" && team.Section != scope.Section {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
	}
	if scope.MentorID != "" && (team.Mentor == nil || *team.Mentor != scope.MentorID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
	}

	data := &dto.DiaryData{
		Team:     *team,
		Students: []models.Student{},
		Logs:     []dto.DiaryLog{},
		Reviews:  []models.Review{},
	}

	if students, err := s.students.ListByTeam(ctx, teamID); err == nil && students != nil {
		data.Students = students
	}
	if team.TeamLead != nil {
		if lead, err := s.students.FindByID(ctx, *team.TeamLead); err == nil {
			data.TeamLead = lead
		}
	}
	if team.Mentor != nil {
		if mentor, err := s.staff.FindInfoByStaffID(ctx, *team.Mentor); err == nil {
			data.Mentor = mentor
		}
	}
	if logs, err := s.logs.ByTeamAscending(ctx, teamID); err == nil {
		if logs != nil {
			data.Logs = logs
		}
	} else {
		s.logger.Warn("diary logs unavailable", zap.String("team_id", teamID), zap.Error(err))
	}
	if reviews, err := s.reviews.ListByTeam(ctx, teamID, true); err == nil && reviews != nil {
		data.Reviews = reviews
	}
	if project, err := s.projects.FindByTeam(ctx, teamID); err == nil {
		data.Project = project
	}
	return data, nil
}

// RenderPDF aggregates and renders the printable diary.
func (s *DiaryService) RenderPDF(ctx context.Context, p *models.Principal, teamID string) ([]byte, error) {
	data, err := s.Aggregate(ctx, p, teamID)
	if err != nil {
		return nil, err
	}

	header := diary.HeaderArt{Institution: s.config.Institution, DocRef: s.config.DocRef}
	if image, imageType, err := s.fetchHeaderImage(ctx); err == nil {
		header.Image = image
		header.ImageType = imageType
	} else if s.config.HeaderImageURL != "" {
		s.logger.Warn("header image unavailable, using text header", zap.Error(err))
	}

	document, err := diary.Render(*data, header)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render diary")
	}
	return document, nil
}

func (s *DiaryService) fetchHeaderImage(ctx context.Context) ([]byte, string, error) {
	if s.config.HeaderImageURL == "" {
		return nil, "", errors.New("no header image configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.HeaderImageURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.New("unexpected status fetching header image")
	}

	image, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return nil, "", err
	}

	imageType := "PNG"
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "jpeg") || strings.Contains(ct, "jpg") {
		imageType = "JPG"
	}
	return image, imageType, nil
}
