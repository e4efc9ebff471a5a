package service

import (
	"context"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/internal/modules/school/dto"
	"anoa.com/edapp/internal/modules/school/repository"
	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/sanitize"
	"go.uber.org/zap"
)

type SchoolService interface {
	List(ctx context.Context) ([]dto.SchoolSummary, error)
	Get(ctx context.Context, schoolID uint) (*entity.School, error)
	Create(ctx context.Context, input dto.SchoolInput) (*entity.School, error)
	Update(ctx context.Context, schoolID uint, input dto.SchoolInput) (*entity.School, error)
	Delete(ctx context.Context, schoolID uint) error
	UserCounts(ctx context.Context, schoolID uint) (*dto.UserCounts, error)
}

type schoolService struct {
	repo repository.SchoolRepository
}

func NewSchoolService(repo repository.SchoolRepository) SchoolService {
	return &schoolService{repo: repo}
}

func (s *schoolService) List(ctx context.Context) ([]dto.SchoolSummary, error) {
	return s.repo.ListWithCounts(ctx)
}

func (s *schoolService) Get(ctx context.Context, schoolID uint) (*entity.School, error) {
	return s.repo.FindByID(ctx, schoolID)
}

func (s *schoolService) Create(ctx context.Context, input dto.SchoolInput) (*entity.School, error) {
	school := toEntity(input)
	if err := s.repo.Create(ctx, school); err != nil {
		return nil, err
	}

	logger.Log.Info("school created", zap.Uint("school_id", school.SchoolID))
	return school, nil
}

func (s *schoolService) Update(ctx context.Context, schoolID uint, input dto.SchoolInput) (*entity.School, error) {
	if _, err := s.repo.FindByID(ctx, schoolID); err != nil {
		return nil, err
	}

	school := toEntity(input)
	school.SchoolID = schoolID
	if err := s.repo.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *schoolService) Delete(ctx context.Context, schoolID uint) error {
	if err := s.repo.Delete(ctx, schoolID); err != nil {
		return err
	}

	logger.Log.Info("school deleted", zap.Uint("school_id", schoolID))
	return nil
}

func (s *schoolService) UserCounts(ctx context.Context, schoolID uint) (*dto.UserCounts, error) {
	return s.repo.UserCounts(ctx, schoolID)
}

func toEntity(input dto.SchoolInput) *entity.School {
	return &entity.School{
		SchoolName:           sanitize.Text(input.SchoolName),
		SchoolAddress:        sanitize.Text(input.SchoolAddress),
		SchoolDocumentNumber: sanitize.Text(input.SchoolDocumentNumber),
		PrincipalName:        sanitize.Text(input.PrincipalName),
		City:                 sanitize.Text(input.City),
		State:                sanitize.Text(input.State),
		ZipCode:              sanitize.Text(input.ZipCode),
		ContactNumber:        sanitize.Text(input.ContactNumber),
		AlternativeNumber:    sanitize.Text(input.AlternativeNumber),
	}
}
