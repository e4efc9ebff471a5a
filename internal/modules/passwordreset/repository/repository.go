package repository

import (
	"context"
	"fmt"
	"time"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/pkg/apperror"
	"gorm.io/gorm"
)

type ResetRepository interface {
	CreateOTP(ctx context.Context, otp *entity.OTP) error
	// FindLatestLive returns the newest code for email whose expiry is after now.
	FindLatestLive(ctx context.Context, email string, now time.Time) (*entity.OTP, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// ResetPassword stores the hashed password for every login with email and
	// removes that email's codes, in one transaction.
	ResetPassword(ctx context.Context, email, hashed string) (int64, error)
}

type resetRepository struct {
	db *gorm.DB
}

func NewResetRepository(db *gorm.DB) ResetRepository {
	return &resetRepository{db: db}
}

func (r *resetRepository) CreateOTP(ctx context.Context, otp *entity.OTP) error {
	if err := r.db.WithContext(ctx).Create(otp).Error; err != nil {
		return fmt.Errorf("insert otp: %w", err)
	}
	return nil
}

func (r *resetRepository) FindLatestLive(ctx context.Context, email string, now time.Time) (*entity.OTP, error) {
	var otps []entity.OTP
	if err := r.db.WithContext(ctx).
		Where("email = ? AND expiry_time > ?", email, now).
		Order("id DESC").
		Limit(1).
		Find(&otps).Error; err != nil {
		return nil, fmt.Errorf("query otps: %w", err)
	}

	if len(otps) == 0 {
		return nil, fmt.Errorf("no live otp: %w", apperror.ErrNotFound)
	}
	return &otps[0], nil
}

func (r *resetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expiry_time <= ?", now).
		Delete(&entity.OTP{})
	if result.Error != nil {
		return 0, fmt.Errorf("purge otps: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *resetRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Login{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count login: %w", err)
	}
	return count > 0, nil
}

func (r *resetRepository) ResetPassword(ctx context.Context, email, hashed string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Login{}).
			Where("email = ?", email).
			Updates(map[string]any{
				"password":           hashed,
				"is_password_hashed": true,
			})
		if result.Error != nil {
			return fmt.Errorf("update login password: %w", result.Error)
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}

		if err := tx.Where("email = ?", email).Delete(&entity.OTP{}).Error; err != nil {
			return fmt.Errorf("delete otps: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
