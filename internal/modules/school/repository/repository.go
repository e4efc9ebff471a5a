package repository

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/internal/modules/school/dto"
	"anoa.com/edapp/pkg/apperror"
	"gorm.io/gorm"
)

const countColumns = `COUNT(login.user_id) AS total_users,
	COALESCE(SUM(CASE WHEN login.role = 'teacher' THEN 1 ELSE 0 END), 0) AS total_teachers,
	COALESCE(SUM(CASE WHEN login.role = 'student' THEN 1 ELSE 0 END), 0) AS total_students`

type SchoolRepository interface {
	ListWithCounts(ctx context.Context) ([]dto.SchoolSummary, error)
	FindByID(ctx context.Context, schoolID uint) (*entity.School, error)
	Create(ctx context.Context, school *entity.School) error
	Update(ctx context.Context, school *entity.School) error
	Delete(ctx context.Context, schoolID uint) error
	UserCounts(ctx context.Context, schoolID uint) (*dto.UserCounts, error)
}

type schoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) ListWithCounts(ctx context.Context) ([]dto.SchoolSummary, error) {
	var schools []dto.SchoolSummary
	err := r.db.WithContext(ctx).
		Table("schools_info").
		Select("schools_info.school_id, schools_info.school_name, schools_info.principal_name, schools_info.contact_number, " + countColumns).
		Joins("LEFT JOIN login ON schools_info.school_id = login.school_id").
		Group("schools_info.school_id, schools_info.school_name, schools_info.principal_name, schools_info.contact_number").
		Order("schools_info.school_id").
		Scan(&schools).Error
	if err != nil {
		return nil, fmt.Errorf("query schools: %w", err)
	}
	return schools, nil
}

func (r *schoolRepository) FindByID(ctx context.Context, schoolID uint) (*entity.School, error) {
	var school entity.School
	if err := r.db.WithContext(ctx).First(&school, "school_id = ?", schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("school %d: %w", schoolID, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("query school: %w", err)
	}
	return &school, nil
}

func (r *schoolRepository) Create(ctx context.Context, school *entity.School) error {
	if err := r.db.WithContext(ctx).Create(school).Error; err != nil {
		return fmt.Errorf("insert school: %w", err)
	}
	return nil
}

func (r *schoolRepository) Update(ctx context.Context, school *entity.School) error {
	if err := r.db.WithContext(ctx).
		Model(&entity.School{}).
		Where("school_id = ?", school.SchoolID).
		Select("*").
		Omit("school_id").
		Updates(school).Error; err != nil {
		return fmt.Errorf("update school: %w", err)
	}
	return nil
}

func (r *schoolRepository) Delete(ctx context.Context, schoolID uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.School{}, "school_id = ?", schoolID)
	if result.Error != nil {
		return fmt.Errorf("delete school: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("school %d: %w", schoolID, apperror.ErrNotFound)
	}
	return nil
}

func (r *schoolRepository) UserCounts(ctx context.Context, schoolID uint) (*dto.UserCounts, error) {
	var counts dto.UserCounts
	err := r.db.WithContext(ctx).
		Table("login").
		Select(countColumns).
		Where("login.school_id = ?", schoolID).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return &counts, nil
}
