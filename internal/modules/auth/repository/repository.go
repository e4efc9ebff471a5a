package repository

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/pkg/apperror"
	"gorm.io/gorm"
)

// CredentialRepository reads credentials and the role-specific profile rows
// that are merged into session tokens.
type CredentialRepository interface {
	FindAdminByEmail(ctx context.Context, email string) (*entity.Admin, error)
	FindLoginBySapID(ctx context.Context, sapID string) (*entity.Login, error)
	FindTeacherProfile(ctx context.Context, userID uint) (*entity.TeacherProfile, error)
	FindStudentProfile(ctx context.Context, userID uint) (*entity.StudentProfile, error)
}

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) FindAdminByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var admins []entity.Admin
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Limit(2).
		Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("query admin_info: %w", err)
	}

	switch len(admins) {
	case 0:
		return nil, fmt.Errorf("admin not found: %w", apperror.ErrNotFound)
	case 1:
		return &admins[0], nil
	default:
		return nil, fmt.Errorf("admin_info has %d rows for one email: %w", len(admins), apperror.ErrInconsistent)
	}
}

func (r *credentialRepository) FindLoginBySapID(ctx context.Context, sapID string) (*entity.Login, error) {
	var logins []entity.Login
	if err := r.db.WithContext(ctx).
		Where("sap_id = ?", sapID).
		Limit(2).
		Find(&logins).Error; err != nil {
		return nil, fmt.Errorf("query login: %w", err)
	}

	switch len(logins) {
	case 0:
		return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
	case 1:
		return &logins[0], nil
	default:
		return nil, fmt.Errorf("login has %d rows for one sap_id: %w", len(logins), apperror.ErrInconsistent)
	}
}

func (r *credentialRepository) FindTeacherProfile(ctx context.Context, userID uint) (*entity.TeacherProfile, error) {
	var profile entity.TeacherProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("teacher profile: %w", apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("query teachers_info: %w", err)
	}
	return &profile, nil
}

func (r *credentialRepository) FindStudentProfile(ctx context.Context, userID uint) (*entity.StudentProfile, error) {
	var profile entity.StudentProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student profile: %w", apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("query students_info: %w", err)
	}
	return &profile, nil
}
