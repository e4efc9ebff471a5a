package entity

import "time"

// OTP is a one-time password-reset code. Rows are append-only until a
// successful verification or the cleanup job removes them.
type OTP struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string    `gorm:"size:100;not null;index" json:"email"`
	Code       string    `gorm:"column:otp;size:5;not null" json:"-"`
	ExpiryTime time.Time `gorm:"not null;index" json:"expiry_time"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (OTP) TableName() string { return "otps" }
