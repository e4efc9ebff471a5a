package dto

type EmailInput struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,numeric,len=5"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,numeric,len=5"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

type VerifyOTPResponse struct {
	Valid bool `json:"valid"`
}

type EmailExistsResponse struct {
	Exists bool `json:"exists"`
}
