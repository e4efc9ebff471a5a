package jobs

import (
	"context"
	"time"

	"anoa.com/edapp/pkg/logger"
	"go.uber.org/zap"
)

type expiredCodePurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// OTPPurgeJob deletes one-time codes whose expiry has passed.
type OTPPurgeJob struct {
	purger   expiredCodePurger
	interval time.Duration
}

func NewOTPPurgeJob(purger expiredCodePurger, interval time.Duration) *OTPPurgeJob {
	return &OTPPurgeJob{purger: purger, interval: interval}
}

func (j *OTPPurgeJob) Name() string { return "otp-purge" }

func (j *OTPPurgeJob) Schedule() string {
	if j.interval <= 0 {
		return ""
	}
	return Every(j.interval)
}

func (j *OTPPurgeJob) Run(ctx context.Context) error {
	n, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Log.Info("expired otps purged", zap.Int64("rows", n))
	}
	return nil
}
