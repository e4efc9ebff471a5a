package service

import (
	"context"
	"fmt"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/internal/modules/course/dto"
	"anoa.com/edapp/internal/modules/course/repository"
	"anoa.com/edapp/pkg/apperror"
	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/sanitize"
	"go.uber.org/zap"
)

type CourseService interface {
	CreateCourse(ctx context.Context, userID uint, input dto.CreateCourseInput) (*entity.Course, error)
	UserCourses(ctx context.Context, userID uint) ([]dto.UserCourse, error)
	ListSubjects(ctx context.Context) ([]entity.Subject, error)
	ListClasses(ctx context.Context) ([]entity.Class, error)
}

type courseService struct {
	repo repository.CourseRepository
}

func NewCourseService(repo repository.CourseRepository) CourseService {
	return &courseService{repo: repo}
}

func (s *courseService) CreateCourse(ctx context.Context, userID uint, input dto.CreateCourseInput) (*entity.Course, error) {
	ok, err := s.repo.SubjectExists(ctx, input.SubjectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: unknown subject %d", apperror.ErrInvalidInput, input.SubjectID)
	}

	ok, err = s.repo.ClassExists(ctx, input.ClassID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: unknown class %d", apperror.ErrInvalidInput, input.ClassID)
	}

	course := &entity.Course{
		UserID:            userID,
		CourseName:        sanitize.Text(input.CourseName),
		CourseDescription: sanitize.Text(input.CourseDescription),
		SubjectID:         input.SubjectID,
		ClassID:           input.ClassID,
		Status:            entity.CourseStatusDraft,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}

	logger.Log.Info("course created", zap.Uint("course_id", course.CourseID), zap.Uint("user_id", userID))
	return course, nil
}

func (s *courseService) UserCourses(ctx context.Context, userID uint) ([]dto.UserCourse, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *courseService) ListSubjects(ctx context.Context) ([]entity.Subject, error) {
	return s.repo.FindSubjects(ctx)
}

func (s *courseService) ListClasses(ctx context.Context) ([]entity.Class, error) {
	return s.repo.FindClasses(ctx)
}
