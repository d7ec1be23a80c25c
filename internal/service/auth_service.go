package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kite-portal/mentor-api/internal/models"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type authStaffReader interface {
	FindByEmail(ctx context.Context, email string) (*models.Staff, error)
}

// SessionRevoker tracks revoked session tokens so logout takes effect
// server-side before the token expires.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthConfig defines session token issuance parameters.
type AuthConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AuthService authenticates staff and issues session tokens.
type AuthService struct {
	staff     authStaffReader
	revoker   SessionRevoker
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(staff authStaffReader, revoker SessionRevoker, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{staff: staff, revoker: revoker, validator: validate, logger: logger, config: config}
}

// Login verifies credentials and returns the user plus a signed session
// token for the cookie.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	staff, err := s.staff.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.ErrInvalidCredentials
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch staff")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", appErrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(staff)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}

	s.logger.Info("staff login", zap.String("staff_id", staff.StaffID), zap.String("role", staff.Role))

	return &models.LoginResponse{
		Message: "Login successful",
		User: models.StaffInfo{
			ID:         staff.ID,
			Name:       staff.Name,
			Email:      staff.Email,
			Role:       staff.Role,
			StaffID:    staff.StaffID,
			Department: staff.Department,
			Section:    staff.Section,
		},
	}, token, nil
}

// Logout revokes the presented session token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		// An unparseable token has nothing to revoke; clearing the cookie
		// is enough.
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke session")
	}
	return nil
}

// Validate parses a session token, checks revocation and returns the
// principal.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (*models.Principal, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidSession, "invalid session")
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check session")
	}
	if revoked {
		return nil, appErrors.Clone(appErrors.ErrInvalidSession, "session has been revoked")
	}

	return claims.Principal(), nil
}

func (s *AuthService) issueToken(staff *models.Staff) (string, error) {
	now := time.Now().UTC()
	claims := &models.SessionClaims{
		UserID:     staff.ID,
		StaffID:    staff.StaffID,
		Name:       staff.Name,
		Email:      staff.Email,
		Role:       staff.Role,
		Department: staff.Department,
		Section:    staff.Section,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   staff.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *AuthService) parseToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session claims")
	}
	return claims, nil
}
