package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/policy"
	"github.com/kite-portal/mentor-api/internal/repository"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type staffRepo interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, staff *models.Staff) error
	ListAll(ctx context.Context) ([]models.Staff, error)
}

type staffTeamReader interface {
	CountByMentor(ctx context.Context) ([]repository.MentorTeamCount, error)
}

// StaffService provisions staff accounts and answers mentor
// availability.
type StaffService struct {
	staff     staffRepo
	teams     staffTeamReader
	validator *validator.Validate
	logger    *zap.Logger
	maxTeams  int
}

// NewStaffService constructs a StaffService instance.
func NewStaffService(staff staffRepo, teams staffTeamReader, validate *validator.Validate, logger *zap.Logger, maxTeams int) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{staff: staff, teams: teams, validator: validate, logger: logger, maxTeams: maxTeams}
}

// Create provisions a staff account in the caller's department. Only
// HODs may provision, and only with a recognized role.
func (s *StaffService) Create(ctx context.Context, p *models.Principal, req dto.CreateStaffRequest) (*models.StaffInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	if !models.IsValidRole(req.Role) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	roles := models.ParseRoles(req.Role)
	if roles.Has(models.RoleClassAdvisor) && req.Section == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "section is required for class advisors")
	}
	if roles.Has(models.RoleProjectMentor) && (req.Domain == nil || *req.Domain == "") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "domain is required for project mentors")
	}

	scope, err := policy.Decide(p, policy.Staff, policy.Create)
	if err != nil {
		return nil, err
	}

	exists, err := s.staff.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	staff := &models.Staff{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		StaffID:      req.StaffID,
		Department:   scope.Department,
		Section:      req.Section,
		Domain:       req.Domain,
		CreatedAt:    time.Now().UTC(),
	}
	if staff.StaffID == "" {
		staff.StaffID = staff.ID
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create staff")
	}

	s.logger.Info("staff created",
		zap.String("staff_id", staff.StaffID),
		zap.String("role", staff.Role),
		zap.String("created_by", p.StaffID))

	return &models.StaffInfo{
		ID:         staff.ID,
		Name:       staff.Name,
		Email:      staff.Email,
		Role:       staff.Role,
		StaffID:    staff.StaffID,
		Department: staff.Department,
		Section:    staff.Section,
	}, nil
}

// Available returns project mentors in the principal's department with
// capacity for another team.
func (s *StaffService) Available(ctx context.Context, p *models.Principal) ([]dto.AvailableStaff, error) {
	if p == nil {
		return nil, appErrors.ErrUnauthorized
	}

	all, err := s.staff.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff")
	}

	loads, err := s.teams.CountByMentor(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check mentor load")
	}
	counts := make(map[string]int, len(loads))
	for _, load := range loads {
		counts[load.Mentor] = load.Count
	}

	available := make([]dto.AvailableStaff, 0, len(all))
	for _, member := range all {
		if member.Department != p.Department {
			continue
		}
		if !member.Roles().Has(models.RoleProjectMentor) {
			continue
		}
		count := counts[member.StaffID]
		if count >= s.maxTeams {
			continue
		}
		member.PasswordHash = ""
		available = append(available, dto.AvailableStaff{Staff: member, TeamCount: count})
	}
	return available, nil
}
