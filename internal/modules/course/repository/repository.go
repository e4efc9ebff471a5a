package repository

import (
	"context"
	"fmt"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/internal/modules/course/dto"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	FindByUser(ctx context.Context, userID uint) ([]dto.UserCourse, error)
	FindSubjects(ctx context.Context) ([]entity.Subject, error)
	FindClasses(ctx context.Context) ([]entity.Class, error)
	SubjectExists(ctx context.Context, subjectID uint) (bool, error)
	ClassExists(ctx context.Context, classID uint) (bool, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *courseRepository) FindByUser(ctx context.Context, userID uint) ([]dto.UserCourse, error) {
	var courses []dto.UserCourse
	err := r.db.WithContext(ctx).
		Table("courses_info").
		Select(`courses_info.course_id, courses_info.course_name, courses_info.status,
			subjects_info.subject_name, COUNT(chapters_info.chapter_id) AS total_chapters`).
		Joins("LEFT JOIN chapters_info ON courses_info.course_id = chapters_info.course_id").
		Joins("LEFT JOIN subjects_info ON courses_info.subject_id = subjects_info.subject_id").
		Where("courses_info.user_id = ?", userID).
		Group("courses_info.course_id, courses_info.course_name, courses_info.status, subjects_info.subject_name").
		Order("courses_info.course_id").
		Scan(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	return courses, nil
}

func (r *courseRepository) FindSubjects(ctx context.Context) ([]entity.Subject, error) {
	var subjects []entity.Subject
	if err := r.db.WithContext(ctx).Order("subject_id").Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	return subjects, nil
}

func (r *courseRepository) FindClasses(ctx context.Context) ([]entity.Class, error) {
	var classes []entity.Class
	if err := r.db.WithContext(ctx).Order("class_id").Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("query classes: %w", err)
	}
	return classes, nil
}

func (r *courseRepository) SubjectExists(ctx context.Context, subjectID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Subject{}).Where("subject_id = ?", subjectID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count subjects: %w", err)
	}
	return count > 0, nil
}

func (r *courseRepository) ClassExists(ctx context.Context, classID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Class{}).Where("class_id = ?", classID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count classes: %w", err)
	}
	return count > 0, nil
}
