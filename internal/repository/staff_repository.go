package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kite-portal/mentor-api/internal/models"
)

const staffColumns = `id, name, email, password_hash, role, staff_id, department, section, domain, ie_allocated, created_at`

// StaffRepository provides database access for staff accounts.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository creates a new StaffRepository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// FindByEmail returns a staff member by email address.
func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM staffs WHERE email = $1 LIMIT 1`, staffColumns)
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find staff by email: %w", err)
	}
	return &staff, nil
}

// FindInfoByStaffID returns the safe projection for a staff identifier.
func (r *StaffRepository) FindInfoByStaffID(ctx context.Context, staffID string) (*models.StaffInfo, error) {
	const query = `SELECT id, name, email, role, staff_id, department, section FROM staffs WHERE staff_id = $1 LIMIT 1`
	var info models.StaffInfo
	if err := r.db.GetContext(ctx, &info, query, staffID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find staff info: %w", err)
	}
	return &info, nil
}

// NameByStaffID resolves a staff identifier to a display name.
func (r *StaffRepository) NameByStaffID(ctx context.Context, staffID string) (*string, error) {
	const query = `SELECT name FROM staffs WHERE staff_id = $1 LIMIT 1`
	var name string
	if err := r.db.GetContext(ctx, &name, query, staffID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("staff name by id: %w", err)
	}
	return &name, nil
}

// EmailExists reports whether an account already uses the email.
func (r *StaffRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM staffs WHERE email = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("staff email exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new staff account.
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	if staff.StaffID == "" {
		staff.StaffID = staff.ID
	}
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO staffs (id, name, email, password_hash, role, staff_id, department, section, domain, ie_allocated, created_at)
		VALUES (:id, :name, :email, :password_hash, :role, :staff_id, :department, :section, :domain, :ie_allocated, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, staff); err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// ListAll returns every staff member ordered by name.
func (r *StaffRepository) ListAll(ctx context.Context) ([]models.Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM staffs ORDER BY name`, staffColumns)
	var staff []models.Staff
	if err := r.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}
