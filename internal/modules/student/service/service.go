package service

import (
	"context"
	"fmt"
	"strings"

	"anoa.com/edapp/internal/entity"
	search "anoa.com/edapp/internal/modules/search/service"
	"anoa.com/edapp/internal/modules/student/dto"
	"anoa.com/edapp/internal/modules/student/repository"
	"anoa.com/edapp/pkg/apperror"
	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/sanitize"
	"go.uber.org/zap"
)

type StudentService interface {
	ListForSchool(ctx context.Context, schoolID uint) ([]dto.StudentSummary, error)
	Get(ctx context.Context, schoolID, userID uint) (*dto.StudentDetails, error)
	Create(ctx context.Context, schoolID uint, input dto.StudentInput) (*entity.Login, error)
	Update(ctx context.Context, schoolID, userID uint, input dto.StudentInput) error
	Delete(ctx context.Context, schoolID, userID uint) error
}

type studentService struct {
	repo   repository.StudentRepository
	search search.MemberSearchService
}

func NewStudentService(repo repository.StudentRepository, searchSvc search.MemberSearchService) StudentService {
	return &studentService{
		repo:   repo,
		search: searchSvc,
	}
}

func (s *studentService) ListForSchool(ctx context.Context, schoolID uint) ([]dto.StudentSummary, error) {
	return s.repo.ListForSchool(ctx, schoolID)
}

func (s *studentService) Get(ctx context.Context, schoolID, userID uint) (*dto.StudentDetails, error) {
	return s.repo.FindDetails(ctx, schoolID, userID)
}

func (s *studentService) Create(ctx context.Context, schoolID uint, input dto.StudentInput) (*entity.Login, error) {
	if err := s.checkMentor(ctx, input.MentorID); err != nil {
		return nil, err
	}

	profile := toProfile(input)
	login, err := s.repo.Create(ctx, schoolID, profile)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("student created",
		zap.Uint("user_id", login.UserID),
		zap.Uint("school_id", schoolID),
	)
	s.index(login, profile)
	return login, nil
}

func (s *studentService) Update(ctx context.Context, schoolID, userID uint, input dto.StudentInput) error {
	details, err := s.repo.FindDetails(ctx, schoolID, userID)
	if err != nil {
		return err
	}
	if details.Profile == nil {
		return fmt.Errorf("student %d has no profile: %w", userID, apperror.ErrNotFound)
	}
	if err := s.checkMentor(ctx, input.MentorID); err != nil {
		return err
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

func (s *studentService) Delete(ctx context.Context, schoolID, userID uint) error {
	if _, err := s.repo.FindDetails(ctx, schoolID, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	logger.Log.Info("student deleted", zap.Uint("user_id", userID))
	if err := s.search.DeleteMember(userID); err != nil {
		logger.Log.Warn("failed to remove student from search index", zap.Uint("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *studentService) checkMentor(ctx context.Context, mentorID *uint) error {
	if mentorID == nil {
		return nil
	}
	exists, err := s.repo.MentorExists(ctx, *mentorID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: mentor %d does not exist", apperror.ErrInvalidInput, *mentorID)
	}
	return nil
}

func (s *studentService) index(login *entity.Login, profile *entity.StudentProfile) {
	var schoolID uint
	if login.SchoolID != nil {
		schoolID = *login.SchoolID
	}

	name := strings.Join(strings.Fields(profile.FirstName+" "+profile.MiddleName+" "+profile.LastName), " ")
	err := s.search.IndexMember(search.Member{
		UserID:   login.UserID,
		SchoolID: schoolID,
		Role:     string(entity.RoleStudent),
		SapID:    login.SapID,
		Name:     name,
		Email:    login.Email,
	})
	if err != nil {
		logger.Log.Warn("failed to index student", zap.Uint("user_id", login.UserID), zap.Error(err))
	}
}

func toProfile(input dto.StudentInput) *entity.StudentProfile {
	return &entity.StudentProfile{
		FirstName:           sanitize.Text(input.FirstName),
		MiddleName:          sanitize.Text(input.MiddleName),
		LastName:            sanitize.Text(input.LastName),
		Gender:              sanitize.Text(input.Gender),
		Birthday:            sanitize.Text(input.Birthday),
		Email:               strings.TrimSpace(input.Email),
		ContactNumber:       sanitize.Text(input.ContactNumber),
		AlternativeNumber:   sanitize.Text(input.AlternativeNumber),
		AadharCardNumber:    sanitize.Text(input.AadharCardNumber),
		PermanentAddress:    sanitize.Text(input.PermanentAddress),
		City:                sanitize.Text(input.City),
		State:               sanitize.Text(input.State),
		FatherName:          sanitize.Text(input.FatherName),
		FatherContactNumber: sanitize.Text(input.FatherContactNumber),
		FatherEmail:         strings.TrimSpace(input.FatherEmail),
		MotherName:          sanitize.Text(input.MotherName),
		MotherContactNumber: sanitize.Text(input.MotherContactNumber),
		MotherEmail:         strings.TrimSpace(input.MotherEmail),
		GuardianName:        sanitize.Text(input.GuardianName),
		GuardianNumber:      sanitize.Text(input.GuardianNumber),
		GuardianEmail:       strings.TrimSpace(input.GuardianEmail),
		AccountHolderName:   sanitize.Text(input.AccountHolderName),
		BankName:            sanitize.Text(input.BankName),
		AccountNumber:       sanitize.Text(input.AccountNumber),
		IFSCCode:            sanitize.Text(input.IFSCCode),
		AccountType:         sanitize.Text(input.AccountType),
		MentorID:            input.MentorID,
	}
}
