package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kite-portal/mentor-api/internal/models"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
)

type authStaffStub struct {
	staff *models.Staff
}

func (s *authStaffStub) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	if s.staff == nil || s.staff.Email != email {
		return nil, sql.ErrNoRows
	}
	return s.staff, nil
}

type revokerStub struct {
	revoked map[string]bool
}

func newRevokerStub() *revokerStub {
	return &revokerStub{revoked: make(map[string]bool)}
}

func (s *revokerStub) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.revoked[tokenID] = true
	return nil
}

func (s *revokerStub) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], nil
}

func newAuthServiceForTest(t *testing.T) (*AuthService, *revokerStub) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	staff := &models.Staff{
		ID:           "u1",
		StaffID:      "S9",
		Name:         "Mentor Nine",
		Email:        "mentor@example.org",
		PasswordHash: string(hash),
		Role:         "CLASS_ADVISOR+PROJECT_MENTOR",
		Department:   "CSE",
		Section:      "A",
	}
	revoker := newRevokerStub()
	svc := NewAuthService(&authStaffStub{staff: staff}, revoker, nil, zap.NewNop(), AuthConfig{
		Secret: "test-secret",
		TTL:    time.Hour,
		Issuer: "mentor-api",
	})
	return svc, revoker
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	res, token, err := svc.Login(context.Background(), models.LoginRequest{Email: "mentor@example.org", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "S9", res.User.StaffID)
	assert.Equal(t, "CLASS_ADVISOR+PROJECT_MENTOR", res.User.Role)

	principal, err := svc.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "S9", principal.StaffID)
	assert.True(t, principal.Roles.Has(models.RoleProjectMentor))
	assert.Equal(t, "CSE", principal.Department)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "mentor@example.org", Password: "wrong"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.org", Password: "secret123"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "mentor@example.org"})
	require.Error(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, revoker := newAuthServiceForTest(t)

	_, token, err := svc.Login(context.Background(), models.LoginRequest{Email: "mentor@example.org", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.NotEmpty(t, revoker.revoked)

	_, err = svc.Validate(context.Background(), token)
	require.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.Validate(context.Background(), "not-a-token")
	require.Error(t, err)
}
