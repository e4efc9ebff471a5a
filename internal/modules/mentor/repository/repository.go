package repository

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/pkg/apperror"
	"gorm.io/gorm"
)

type MentorRepository interface {
	FindAll(ctx context.Context) ([]entity.Mentor, error)
	FindByID(ctx context.Context, mentorID uint) (*entity.Mentor, error)
	Create(ctx context.Context, mentor *entity.Mentor) error
	Update(ctx context.Context, mentor *entity.Mentor) error
	// DeleteWithStudents removes the mentor and every students_info row
	// assigned to it in one transaction.
	DeleteWithStudents(ctx context.Context, mentorID uint) (int64, error)
}

type mentorRepository struct {
	db *gorm.DB
}

func NewMentorRepository(db *gorm.DB) MentorRepository {
	return &mentorRepository{db: db}
}

func (r *mentorRepository) FindAll(ctx context.Context) ([]entity.Mentor, error) {
	var mentors []entity.Mentor
	if err := r.db.WithContext(ctx).Order("mentor_id").Find(&mentors).Error; err != nil {
		return nil, fmt.Errorf("query mentors: %w", err)
	}
	return mentors, nil
}

func (r *mentorRepository) FindByID(ctx context.Context, mentorID uint) (*entity.Mentor, error) {
	var mentor entity.Mentor
	if err := r.db.WithContext(ctx).First(&mentor, "mentor_id = ?", mentorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("mentor %d: %w", mentorID, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("query mentor: %w", err)
	}
	return &mentor, nil
}

func (r *mentorRepository) Create(ctx context.Context, mentor *entity.Mentor) error {
	if err := r.db.WithContext(ctx).Create(mentor).Error; err != nil {
		return fmt.Errorf("insert mentor: %w", err)
	}
	return nil
}

func (r *mentorRepository) Update(ctx context.Context, mentor *entity.Mentor) error {
	if err := r.db.WithContext(ctx).
		Model(&entity.Mentor{}).
		Where("mentor_id = ?", mentor.MentorID).
		Select("*").
		Omit("mentor_id").
		Updates(mentor).Error; err != nil {
		return fmt.Errorf("update mentor: %w", err)
	}
	return nil
}

func (r *mentorRepository) DeleteWithStudents(ctx context.Context, mentorID uint) (int64, error) {
	var studentsRemoved int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mentorResult := tx.Delete(&entity.Mentor{}, "mentor_id = ?", mentorID)
		if mentorResult.Error != nil {
			return fmt.Errorf("delete mentor: %w", mentorResult.Error)
		}
		if mentorResult.RowsAffected == 0 {
			return fmt.Errorf("mentor %d: %w", mentorID, apperror.ErrNotFound)
		}

		studentResult := tx.Where("mentor_id = ?", mentorID).Delete(&entity.StudentProfile{})
		if studentResult.Error != nil {
			return fmt.Errorf("delete mentor students: %w", studentResult.Error)
		}
		studentsRemoved = studentResult.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return studentsRemoved, nil
}
