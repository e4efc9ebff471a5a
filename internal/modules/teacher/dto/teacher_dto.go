package dto

import "anoa.com/edapp/internal/entity"

type TeacherInput struct {
	FirstName              string `json:"first_name" binding:"required,max=100"`
	MiddleName             string `json:"middle_name" binding:"max=100"`
	LastName               string `json:"last_name" binding:"max=100"`
	Gender                 string `json:"gender" binding:"max=20"`
	Birthday               string `json:"birthday" binding:"max=10"`
	Email                  string `json:"email" binding:"required,email"`
	ContactNumber          string `json:"contact_number" binding:"max=20"`
	AlternativeNumber      string `json:"alternative_number" binding:"max=20"`
	AadharCardNumber       string `json:"aadhar_card_number" binding:"max=20"`
	PanCard                string `json:"pan_card" binding:"max=20"`
	PermanentAddress       string `json:"permanent_address"`
	City                   string `json:"city" binding:"max=100"`
	State                  string `json:"state" binding:"max=100"`
	FatherName             string `json:"father_name" binding:"max=100"`
	MotherName             string `json:"mother_name" binding:"max=100"`
	EmergencyContactName   string `json:"emergency_contact_name" binding:"max=100"`
	EmergencyContactNumber string `json:"emergency_contact_number" binding:"max=20"`
}

type TeacherSummary struct {
	UserID         uint     `json:"user_id"`
	SchoolID       uint     `json:"school_id"`
	SapID          string   `json:"sap_id"`
	SchoolName     string   `json:"school_name"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	ContactNumber  string   `json:"contact_number"`
	Email          string   `json:"email"`
	Birthday       string   `json:"birthday"`
	SubjectsTaught []string `json:"subjects_taught" gorm:"-"`
	ClassesTaught  []string `json:"classes_taught" gorm:"-"`
}

type TeacherDetails struct {
	Login   entity.Login           `json:"login"`
	Profile *entity.TeacherProfile `json:"profile"`
}

type CreateTeacherResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
	SapID   string `json:"sap_id"`
}

type SchoolURI struct {
	SchoolID uint `uri:"school_id" binding:"required"`
}

type TeacherURI struct {
	SchoolID uint `uri:"school_id" binding:"required"`
	UserID   uint `uri:"user_id" binding:"required"`
}
