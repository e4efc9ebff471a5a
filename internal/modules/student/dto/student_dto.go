package dto

import "anoa.com/edapp/internal/entity"

type StudentInput struct {
	FirstName           string `json:"first_name" binding:"required,max=100"`
	MiddleName          string `json:"middle_name" binding:"max=100"`
	LastName            string `json:"last_name" binding:"max=100"`
	Gender              string `json:"gender" binding:"max=20"`
	Birthday            string `json:"birthday" binding:"max=10"`
	Email               string `json:"email" binding:"required,email"`
	ContactNumber       string `json:"contact_number" binding:"max=20"`
	AlternativeNumber   string `json:"alternative_number" binding:"max=20"`
	AadharCardNumber    string `json:"aadhar_card_number" binding:"max=20"`
	PermanentAddress    string `json:"permanent_address"`
	City                string `json:"city" binding:"max=100"`
	State               string `json:"state" binding:"max=100"`
	FatherName          string `json:"father_name" binding:"max=100"`
	FatherContactNumber string `json:"father_contact_number" binding:"max=20"`
	FatherEmail         string `json:"father_email" binding:"omitempty,email"`
	MotherName          string `json:"mother_name" binding:"max=100"`
	MotherContactNumber string `json:"mother_contact_number" binding:"max=20"`
	MotherEmail         string `json:"mother_email" binding:"omitempty,email"`
	GuardianName        string `json:"guardian_name" binding:"max=100"`
	GuardianNumber      string `json:"guardian_number" binding:"max=20"`
	GuardianEmail       string `json:"guardian_email" binding:"omitempty,email"`
	AccountHolderName   string `json:"account_holder_name" binding:"max=100"`
	BankName            string `json:"bank_name" binding:"max=100"`
	AccountNumber       string `json:"account_number" binding:"max=30"`
	IFSCCode            string `json:"ifsc_code" binding:"max=20"`
	AccountType         string `json:"account_type" binding:"max=20"`
	MentorID            *uint  `json:"mentor_id"`
}

type StudentSummary struct {
	UserID           uint   `json:"user_id"`
	SapID            string `json:"sap_id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	ContactNumber    string `json:"contact_number"`
	FatherName       string `json:"father_name"`
	MotherName       string `json:"mother_name"`
	GuardianName     string `json:"guardian_name"`
	Email            string `json:"email"`
	AadharCardNumber string `json:"aadhar_card_number"`
	PermanentAddress string `json:"permanent_address"`
	City             string `json:"city"`
	State            string `json:"state"`
	AccountNumber    string `json:"account_number"`
	MentorFirstName  string `json:"mentor_first_name"`
	MentorLastName   string `json:"mentor_last_name"`
}

type StudentDetails struct {
	Login   entity.Login           `json:"login"`
	Profile *entity.StudentProfile `json:"profile"`
}

type CreateStudentResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
	SapID   string `json:"sap_id"`
}

type SchoolURI struct {
	SchoolID uint `uri:"school_id" binding:"required"`
}

type StudentURI struct {
	SchoolID uint `uri:"school_id" binding:"required"`
	UserID   uint `uri:"user_id" binding:"required"`
}
