package repository

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/internal/modules/account"
	"anoa.com/edapp/internal/modules/student/dto"
	"anoa.com/edapp/pkg/apperror"
	"gorm.io/gorm"
)

type StudentRepository interface {
	ListForSchool(ctx context.Context, schoolID uint) ([]dto.StudentSummary, error)
	FindDetails(ctx context.Context, schoolID, userID uint) (*dto.StudentDetails, error)
	MentorExists(ctx context.Context, mentorID uint) (bool, error)
	Create(ctx context.Context, schoolID uint, profile *entity.StudentProfile) (*entity.Login, error)
	Update(ctx context.Context, profile *entity.StudentProfile) error
	Delete(ctx context.Context, userID uint) error
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) ListForSchool(ctx context.Context, schoolID uint) ([]dto.StudentSummary, error) {
	var students []dto.StudentSummary
	err := r.db.WithContext(ctx).
		Table("login").
		Select(`login.user_id, login.sap_id,
			students_info.first_name, students_info.last_name, students_info.contact_number,
			students_info.father_name, students_info.mother_name, students_info.guardian_name,
			students_info.email, students_info.aadhar_card_number, students_info.permanent_address,
			students_info.city, students_info.state, students_info.account_number,
			mentors_info.mentor_first_name, mentors_info.mentor_last_name`).
		Joins("LEFT JOIN students_info ON login.user_id = students_info.user_id").
		Joins("LEFT JOIN mentors_info ON mentors_info.mentor_id = students_info.mentor_id").
		Where("login.school_id = ? AND login.role = ?", schoolID, entity.RoleStudent).
		Order("login.user_id").
		Scan(&students).Error
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	return students, nil
}

func (r *studentRepository) FindDetails(ctx context.Context, schoolID, userID uint) (*dto.StudentDetails, error) {
	var login entity.Login
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND school_id = ? AND role = ?", userID, schoolID, entity.RoleStudent).
		First(&login).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %d: %w", userID, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("query login: %w", err)
	}

	details := &dto.StudentDetails{Login: login}

	var profile entity.StudentProfile
	err = r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	switch {
	case err == nil:
		details.Profile = &profile
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, fmt.Errorf("query students_info: %w", err)
	}

	return details, nil
}

func (r *studentRepository) MentorExists(ctx context.Context, mentorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Mentor{}).
		Where("mentor_id = ?", mentorID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count mentors: %w", err)
	}
	return count > 0, nil
}

func (r *studentRepository) Create(ctx context.Context, schoolID uint, profile *entity.StudentProfile) (*entity.Login, error) {
	return account.Create(ctx, r.db, schoolID, entity.RoleStudent, profile.Email, func(tx *gorm.DB, userID uint) error {
		profile.UserID = userID
		return tx.Create(profile).Error
	})
}

func (r *studentRepository) Update(ctx context.Context, profile *entity.StudentProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.StudentProfile{}).
			Where("user_id = ?", profile.UserID).
			Select("*").
			Omit("user_id").
			Updates(profile)
		if result.Error != nil {
			return fmt.Errorf("update students_info: %w", result.Error)
		}
		return account.UpdateEmail(tx, profile.UserID, profile.Email)
	})
}

func (r *studentRepository) Delete(ctx context.Context, userID uint) error {
	return account.Delete(ctx, r.db, userID, entity.RoleStudent, &entity.StudentProfile{})
}
