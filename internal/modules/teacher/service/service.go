package service

import (
	"context"
	"fmt"
	"strings"

	"anoa.com/edapp/internal/entity"
	search "anoa.com/edapp/internal/modules/search/service"
	"anoa.com/edapp/internal/modules/teacher/dto"
	"anoa.com/edapp/internal/modules/teacher/repository"
	"anoa.com/edapp/pkg/apperror"
	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/sanitize"
	"go.uber.org/zap"
)

type TeacherService interface {
	ListForSchool(ctx context.Context, schoolID uint) ([]dto.TeacherSummary, error)
	Get(ctx context.Context, schoolID, userID uint) (*dto.TeacherDetails, error)
	Create(ctx context.Context, schoolID uint, input dto.TeacherInput) (*entity.Login, error)
	Update(ctx context.Context, schoolID, userID uint, input dto.TeacherInput) error
	Delete(ctx context.Context, schoolID, userID uint) error
}

type teacherService struct {
	repo   repository.TeacherRepository
	search search.MemberSearchService
}

func NewTeacherService(repo repository.TeacherRepository, searchSvc search.MemberSearchService) TeacherService {
	return &teacherService{
		repo:   repo,
		search: searchSvc,
	}
}

func (s *teacherService) ListForSchool(ctx context.Context, schoolID uint) ([]dto.TeacherSummary, error) {
	return s.repo.ListForSchool(ctx, schoolID)
}

func (s *teacherService) Get(ctx context.Context, schoolID, userID uint) (*dto.TeacherDetails, error) {
	return s.repo.FindDetails(ctx, schoolID, userID)
}

func (s *teacherService) Create(ctx context.Context, schoolID uint, input dto.TeacherInput) (*entity.Login, error) {
	profile := toProfile(input)

	login, err := s.repo.Create(ctx, schoolID, profile)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("teacher created",
		zap.Uint("user_id", login.UserID),
		zap.Uint("school_id", schoolID),
	)
	s.index(login, profile)
	return login, nil
}

func (s *teacherService) Update(ctx context.Context, schoolID, userID uint, input dto.TeacherInput) error {
	details, err := s.repo.FindDetails(ctx, schoolID, userID)
	if err != nil {
		return err
	}
	if details.Profile == nil {
		return fmt.Errorf("teacher %d has no profile: %w", userID, apperror.ErrNotFound)
	}

	profile := toProfile(input)
	profile.UserID = userID
	if err := s.repo.Update(ctx, profile); err != nil {
		return err
	}

	details.Login.Email = profile.Email
	s.index(&details.Login, profile)
	return nil
}

func (s *teacherService) Delete(ctx context.Context, schoolID, userID uint) error {
	if _, err := s.repo.FindDetails(ctx, schoolID, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	logger.Log.Info("teacher deleted", zap.Uint("user_id", userID))
	if err := s.search.DeleteMember(userID); err != nil {
		logger.Log.Warn("failed to remove teacher from search index", zap.Uint("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *teacherService) index(login *entity.Login, profile *entity.TeacherProfile) {
	var schoolID uint
	if login.SchoolID != nil {
		schoolID = *login.SchoolID
	}

	err := s.search.IndexMember(search.Member{
		UserID:   login.UserID,
		SchoolID: schoolID,
		Role:     string(entity.RoleTeacher),
		SapID:    login.SapID,
		Name:     fullName(profile.FirstName, profile.MiddleName, profile.LastName),
		Email:    login.Email,
	})
	if err != nil {
		logger.Log.Warn("failed to index teacher", zap.Uint("user_id", login.UserID), zap.Error(err))
	}
}

func fullName(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func toProfile(input dto.TeacherInput) *entity.TeacherProfile {
	return &entity.TeacherProfile{
		FirstName:              sanitize.Text(input.FirstName),
		MiddleName:             sanitize.Text(input.MiddleName),
		LastName:               sanitize.Text(input.LastName),
		Gender:                 sanitize.Text(input.Gender),
		Birthday:               sanitize.Text(input.Birthday),
		Email:                  strings.TrimSpace(input.Email),
		ContactNumber:          sanitize.Text(input.ContactNumber),
		AlternativeNumber:      sanitize.Text(input.AlternativeNumber),
		AadharCardNumber:       sanitize.Text(input.AadharCardNumber),
		PanCard:                sanitize.Text(input.PanCard),
		PermanentAddress:       sanitize.Text(input.PermanentAddress),
		City:                   sanitize.Text(input.City),
		State:                  sanitize.Text(input.State),
		FatherName:             sanitize.Text(input.FatherName),
		MotherName:             sanitize.Text(input.MotherName),
		EmergencyContactName:   sanitize.Text(input.EmergencyContactName),
		EmergencyContactNumber: sanitize.Text(input.EmergencyContactNumber),
	}
}
