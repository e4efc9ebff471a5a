package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/internal/modules/passwordreset/repository"
	"anoa.com/edapp/pkg/apperror"
	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/password"
	"anoa.com/edapp/pkg/ratelimit"
	"go.uber.org/zap"
)

const (
	otpSubject  = "Reset Password OTP"
	otpBodyText = "Your OTP to reset the password is: %s"

	otpMin   = 10000
	otpRange = 90000

	requestAction = "otp"
	attemptAction = "otp-verify"

	// maxAttempts bounds code checks per email within one code lifetime.
	maxAttempts = 5
)

// Notifier delivers a one-time code to its owner.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Throttle is the per-email lock and attempt counter. ratelimit.Limiter
// satisfies it.
type Throttle interface {
	CheckAndSet(ctx context.Context, action, subject string, ttl time.Duration) (bool, error)
	Hit(ctx context.Context, action, subject string, limit int64, window time.Duration) (bool, error)
	TTL(ctx context.Context, action, subject string) (time.Duration, error)
	Clear(ctx context.Context, action, subject string) error
}

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (bool, error)
	CompleteReset(ctx context.Context, email, code, newPassword string) error
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type passwordResetService struct {
	repo        repository.ResetRepository
	notifier    Notifier
	throttle    Throttle
	otpTTL      time.Duration
	throttleTTL time.Duration

	now      func() time.Time
	generate func() (string, error)
}

func NewPasswordResetService(repo repository.ResetRepository, notifier Notifier, throttle Throttle, otpTTL, throttleTTL time.Duration) PasswordResetService {
	return &passwordResetService{
		repo:        repo,
		notifier:    notifier,
		throttle:    throttle,
		otpTTL:      otpTTL,
		throttleTTL: throttleTTL,
		now:         time.Now,
		generate:    generateCode,
	}
}

func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	allowed, err := s.throttle.CheckAndSet(ctx, requestAction, email, s.throttleTTL)
	if err != nil {
		// fail open
		logger.Log.Warn("otp throttle unavailable", zap.Error(err))
	} else if !allowed {
		return ratelimit.Exceeded("wait before requesting another code", s.wait(ctx, requestAction, email))
	}

	code, err := s.generate()
	if err != nil {
		s.release(ctx, requestAction, email)
		return fmt.Errorf("generate otp: %w", err)
	}

	otp := &entity.OTP{
		Email:      email,
		Code:       code,
		ExpiryTime: s.now().Add(s.otpTTL),
	}
	if err := s.repo.CreateOTP(ctx, otp); err != nil {
		s.release(ctx, requestAction, email)
		return err
	}

	if err := s.notifier.Send(ctx, email, otpSubject, fmt.Sprintf(otpBodyText, code)); err != nil {
		s.release(ctx, requestAction, email)
		return fmt.Errorf("%w: send otp: %v", apperror.ErrUpstream, err)
	}

	logger.Log.Info("password reset code issued", zap.String("email", email))
	return nil
}

// VerifyCode compares code against the newest live code for email without
// consuming it. Every call counts against the email's attempt budget.
func (s *passwordResetService) VerifyCode(ctx context.Context, email, code string) (bool, error) {
	if err := s.attempt(ctx, email); err != nil {
		return false, err
	}
	return s.matches(ctx, email, code)
}

// CompleteReset checks code again and, on a match, stores the new password
// and drops every code for email in one transaction.
func (s *passwordResetService) CompleteReset(ctx context.Context, email, code, newPassword string) error {
	if err := s.attempt(ctx, email); err != nil {
		return err
	}

	ok, err := s.matches(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.New(http.StatusBadRequest, "invalid or expired code", apperror.ErrInvalidInput)
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	affected, err := s.repo.ResetPassword(ctx, email, hashed)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no account for email: %w", apperror.ErrNotFound)
	}

	s.release(ctx, attemptAction, email)
	logger.Log.Info("password reset completed", zap.String("email", email))
	return nil
}

func (s *passwordResetService) matches(ctx context.Context, email, code string) (bool, error) {
	otp, err := s.repo.FindLatestLive(ctx, email, s.now())
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) == 1, nil
}

func (s *passwordResetService) attempt(ctx context.Context, email string) error {
	allowed, err := s.throttle.Hit(ctx, attemptAction, email, maxAttempts, s.otpTTL)
	if err != nil {
		logger.Log.Warn("otp attempt counter unavailable", zap.Error(err))
		return nil
	}
	if !allowed {
		return ratelimit.Exceeded("too many code attempts", s.wait(ctx, attemptAction, email))
	}
	return nil
}

func (s *passwordResetService) wait(ctx context.Context, action, email string) time.Duration {
	d, err := s.throttle.TTL(ctx, action, email)
	if err != nil {
		logger.Log.Warn("read throttle ttl", zap.String("action", action), zap.Error(err))
		return 0
	}
	return d
}

func (s *passwordResetService) release(ctx context.Context, action, email string) {
	if err := s.throttle.Clear(ctx, action, email); err != nil {
		logger.Log.Warn("clear throttle", zap.String("action", action), zap.Error(err))
	}
}

func (s *passwordResetService) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, email)
}

func (s *passwordResetService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}

// generateCode draws uniformly from [10000, 99999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+otpMin), nil
}
