package service

import (
	"context"
	"strings"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/internal/modules/mentor/dto"
	"anoa.com/edapp/internal/modules/mentor/repository"
	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/sanitize"
	"go.uber.org/zap"
)

type MentorService interface {
	ListAll(ctx context.Context) ([]entity.Mentor, error)
	ListNames(ctx context.Context) ([]dto.MentorName, error)
	Get(ctx context.Context, mentorID uint) (*entity.Mentor, error)
	Create(ctx context.Context, input dto.MentorInput) (*entity.Mentor, error)
	Update(ctx context.Context, mentorID uint, input dto.MentorInput) (*entity.Mentor, error)
	Delete(ctx context.Context, mentorID uint) (int64, error)
}

type mentorService struct {
	repo repository.MentorRepository
}

func NewMentorService(repo repository.MentorRepository) MentorService {
	return &mentorService{repo: repo}
}

func (s *mentorService) ListAll(ctx context.Context) ([]entity.Mentor, error) {
	return s.repo.FindAll(ctx)
}

func (s *mentorService) ListNames(ctx context.Context) ([]dto.MentorName, error) {
	mentors, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]dto.MentorName, 0, len(mentors))
	for _, m := range mentors {
		names = append(names, dto.MentorName{
			MentorID:   m.MentorID,
			MentorName: strings.TrimSpace(m.MentorFirstName + " " + m.MentorLastName),
		})
	}
	return names, nil
}

func (s *mentorService) Get(ctx context.Context, mentorID uint) (*entity.Mentor, error) {
	return s.repo.FindByID(ctx, mentorID)
}

func (s *mentorService) Create(ctx context.Context, input dto.MentorInput) (*entity.Mentor, error) {
	mentor := toEntity(input)
	if err := s.repo.Create(ctx, mentor); err != nil {
		return nil, err
	}

	logger.Log.Info("mentor created", zap.Uint("mentor_id", mentor.MentorID))
	return mentor, nil
}

func (s *mentorService) Update(ctx context.Context, mentorID uint, input dto.MentorInput) (*entity.Mentor, error) {
	if _, err := s.repo.FindByID(ctx, mentorID); err != nil {
		return nil, err
	}

	mentor := toEntity(input)
	mentor.MentorID = mentorID
	if err := s.repo.Update(ctx, mentor); err != nil {
		return nil, err
	}
	return mentor, nil
}

func (s *mentorService) Delete(ctx context.Context, mentorID uint) (int64, error) {
	removed, err := s.repo.DeleteWithStudents(ctx, mentorID)
	if err != nil {
		return 0, err
	}

	logger.Log.Info("mentor deleted",
		zap.Uint("mentor_id", mentorID),
		zap.Int64("students_removed", removed),
	)
	return removed, nil
}

func toEntity(input dto.MentorInput) *entity.Mentor {
	return &entity.Mentor{
		MentorFirstName:          sanitize.Text(input.MentorFirstName),
		MentorMiddleName:         sanitize.Text(input.MentorMiddleName),
		MentorLastName:           sanitize.Text(input.MentorLastName),
		Email:                    strings.TrimSpace(input.Email),
		AadharCard:               sanitize.Text(input.AadharCard),
		Birthdate:                sanitize.Text(input.Birthdate),
		ContactNumber:            sanitize.Text(input.ContactNumber),
		AlternativeContactNumber: sanitize.Text(input.AlternativeContactNumber),
		PermanentAddress:         sanitize.Text(input.PermanentAddress),
		City:                     sanitize.Text(input.City),
		State:                    sanitize.Text(input.State),
	}
}
