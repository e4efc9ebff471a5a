package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/internal/modules/auth/dto"
	"anoa.com/edapp/internal/modules/auth/repository"
	"anoa.com/edapp/pkg/apperror"
	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/password"
	"go.uber.org/zap"
)

const successMessage = "Authentication Successful"

type AuthService interface {
	AdminLogin(ctx context.Context, input dto.AdminLoginInput) (*dto.AuthResponse, error)
	UserLogin(ctx context.Context, input dto.UserLoginInput) (*dto.AuthResponse, error)
	VerifyToken(tokenString string) (*Claims, error)
}

type authService struct {
	repo   repository.CredentialRepository
	tokens *TokenManager
}

func NewAuthService(repo repository.CredentialRepository, tokens *TokenManager) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
	}
}

func (s *authService) AdminLogin(ctx context.Context, input dto.AdminLoginInput) (*dto.AuthResponse, error) {
	admin, err := s.repo.FindAdminByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if err := password.Verify(admin.Password, admin.IsPasswordHashed, input.Password); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(Claims{
		AdminID:       admin.AdminID,
		Role:          entity.RoleAdmin,
		Email:         admin.Email,
		FirstName:     admin.FirstName,
		LastName:      admin.LastName,
		ContactNumber: admin.ContactNumber,
	})
}

func (s *authService) UserLogin(ctx context.Context, input dto.UserLoginInput) (*dto.AuthResponse, error) {
	login, err := s.repo.FindLoginBySapID(ctx, input.SapID)
	if err != nil {
		return nil, err
	}

	if err := password.Verify(login.Password, login.IsPasswordHashed, input.Password); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	claims := Claims{
		UserID:     login.UserID,
		Role:       login.Role,
		SchoolID:   login.SchoolID,
		SapID:      login.SapID,
		SchoolName: login.SchoolName,
		Email:      login.Email,
	}

	if err := s.mergeProfile(ctx, &claims); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(claims)
}

func (s *authService) VerifyToken(tokenString string) (*Claims, error) {
	return s.tokens.Verify(tokenString)
}

// mergeProfile copies the role-specific profile into the claims. Identity
// documents, bank details and guardian contacts stay out of the token. A
// missing profile row is not an error; the token then carries credential
// fields only.
func (s *authService) mergeProfile(ctx context.Context, claims *Claims) error {
	switch claims.Role {
	case entity.RoleTeacher:
		profile, err := s.repo.FindTeacherProfile(ctx, claims.UserID)
		if err != nil {
			return tolerateMissing(err, claims)
		}
		claims.FirstName = profile.FirstName
		claims.MiddleName = profile.MiddleName
		claims.LastName = profile.LastName
		claims.Gender = profile.Gender
		claims.Birthday = profile.Birthday
		claims.ContactNumber = profile.ContactNumber
		claims.AlternativeNumber = profile.AlternativeNumber
		claims.PermanentAddress = profile.PermanentAddress
		claims.City = profile.City
		claims.State = profile.State
		claims.FatherName = profile.FatherName
		claims.MotherName = profile.MotherName
	case entity.RoleStudent:
		profile, err := s.repo.FindStudentProfile(ctx, claims.UserID)
		if err != nil {
			return tolerateMissing(err, claims)
		}
		claims.FirstName = profile.FirstName
		claims.MiddleName = profile.MiddleName
		claims.LastName = profile.LastName
		claims.Gender = profile.Gender
		claims.Birthday = profile.Birthday
		claims.ContactNumber = profile.ContactNumber
		claims.AlternativeNumber = profile.AlternativeNumber
		claims.PermanentAddress = profile.PermanentAddress
		claims.City = profile.City
		claims.State = profile.State
		claims.FatherName = profile.FatherName
		claims.MotherName = profile.MotherName
		claims.MentorID = profile.MentorID
	}
	return nil
}

func tolerateMissing(err error, claims *Claims) error {
	if errors.Is(err, apperror.ErrNotFound) {
		logger.Log.Warn("login without profile row",
			zap.Uint("user_id", claims.UserID),
			zap.String("role", string(claims.Role)),
		)
		return nil
	}
	return err
}

func (s *authService) buildAuthResponse(claims Claims) (*dto.AuthResponse, error) {
	token, _, err := s.tokens.Issue(claims)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Success:   true,
		Message:   successMessage,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
	}, nil
}
