// Package account manages the login rows shared by teachers and students.
package account

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/pkg/apperror"
	"gorm.io/gorm"
)

const (
	sapIDDigits   = 10
	sapIDAttempts = 5
)

// ProfileWriter inserts the role-specific profile row inside the account
// transaction once the login row has its id.
type ProfileWriter func(tx *gorm.DB, userID uint) error

// Create inserts a login row with a fresh sap_id, whose initial plain-text
// password is the sap_id itself, and then the profile row. Both rows are
// written in one transaction.
func Create(ctx context.Context, db *gorm.DB, schoolID uint, role entity.Role, email string, writeProfile ProfileWriter) (*entity.Login, error) {
	var login *entity.Login

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var school entity.School
		if err := tx.Select("school_id", "school_name").First(&school, "school_id = ?", schoolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("school %d: %w", schoolID, apperror.ErrNotFound)
			}
			return fmt.Errorf("query school: %w", err)
		}

		sapID, err := uniqueSapID(tx)
		if err != nil {
			return err
		}

		login = &entity.Login{
			SchoolID:         &school.SchoolID,
			SapID:            sapID,
			Password:         sapID,
			IsPasswordHashed: false,
			SchoolName:       school.SchoolName,
			Role:             role,
			Email:            email,
		}
		if err := tx.Create(login).Error; err != nil {
			return fmt.Errorf("insert login: %w", err)
		}

		if err := writeProfile(tx, login.UserID); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return login, nil
}

// Delete removes the profile row and then the login row as two separate
// statements. If the second statement fails the login row is left behind
// and the error is returned.
func Delete(ctx context.Context, db *gorm.DB, userID uint, role entity.Role, profile any) error {
	db = db.WithContext(ctx)

	profileResult := db.Where("user_id = ?", userID).Delete(profile)
	if profileResult.Error != nil {
		return fmt.Errorf("delete profile: %w", profileResult.Error)
	}

	loginResult := db.Where("user_id = ? AND role = ?", userID, role).Delete(&entity.Login{})
	if loginResult.Error != nil {
		return fmt.Errorf("delete login for user %d (profile already removed): %w", userID, loginResult.Error)
	}

	if profileResult.RowsAffected == 0 && loginResult.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", role, userID, apperror.ErrNotFound)
	}
	return nil
}

// UpdateEmail keeps login.email in step with the profile email.
func UpdateEmail(tx *gorm.DB, userID uint, email string) error {
	if err := tx.Model(&entity.Login{}).
		Where("user_id = ?", userID).
		Update("email", email).Error; err != nil {
		return fmt.Errorf("update login email: %w", err)
	}
	return nil
}

func uniqueSapID(tx *gorm.DB) (string, error) {
	for i := 0; i < sapIDAttempts; i++ {
		candidate, err := GenerateSapID()
		if err != nil {
			return "", err
		}

		var count int64
		if err := tx.Model(&entity.Login{}).Where("sap_id = ?", candidate).Count(&count).Error; err != nil {
			return "", fmt.Errorf("check sap_id: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: could not allocate a free sap_id", apperror.ErrConflict)
}

// GenerateSapID returns ten random decimal digits.
func GenerateSapID() (string, error) {
	buf := make([]byte, sapIDDigits)
	ten := big.NewInt(10)
	for i := range buf {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("generate sap_id: %w", err)
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}
