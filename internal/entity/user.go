package entity

import (
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Login is a teacher or student credential. Admins live in admin_info.
type Login struct {
	UserID           uint      `gorm:"primaryKey;autoIncrement" json:"user_id"`
	SchoolID         *uint     `gorm:"index" json:"school_id"`
	SapID            string    `gorm:"size:20;uniqueIndex;not null" json:"sap_id"`
	Password         string    `gorm:"size:255;not null" json:"-"`
	IsPasswordHashed bool      `gorm:"not null;default:false" json:"-"`
	SchoolName       string    `gorm:"size:255" json:"school_name"`
	Role             Role      `gorm:"size:20;not null;index" json:"role"`
	Email            string    `gorm:"size:100;index" json:"email"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Login) TableName() string { return "login" }

type Admin struct {
	AdminID          uint   `gorm:"primaryKey;autoIncrement" json:"admin_id"`
	Email            string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password         string `gorm:"size:255;not null" json:"-"`
	IsPasswordHashed bool   `gorm:"not null;default:false" json:"-"`
	FirstName        string `gorm:"size:100" json:"first_name"`
	LastName         string `gorm:"size:100" json:"last_name"`
	ContactNumber    string `gorm:"size:20" json:"contact_number"`
}

func (Admin) TableName() string { return "admin_info" }

type TeacherProfile struct {
	UserID                 uint   `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FirstName              string `gorm:"size:100;not null" json:"first_name"`
	MiddleName             string `gorm:"size:100" json:"middle_name"`
	LastName               string `gorm:"size:100" json:"last_name"`
	Gender                 string `gorm:"size:20" json:"gender"`
	Birthday               string `gorm:"size:10" json:"birthday"`
	Email                  string `gorm:"size:100" json:"email"`
	ContactNumber          string `gorm:"size:20" json:"contact_number"`
	AlternativeNumber      string `gorm:"size:20" json:"alternative_number"`
	AadharCardNumber       string `gorm:"size:20" json:"aadhar_card_number"`
	PanCard                string `gorm:"size:20" json:"pan_card"`
	PermanentAddress       string `gorm:"type:text" json:"permanent_address"`
	City                   string `gorm:"size:100" json:"city"`
	State                  string `gorm:"size:100" json:"state"`
	FatherName             string `gorm:"size:100" json:"father_name"`
	MotherName             string `gorm:"size:100" json:"mother_name"`
	EmergencyContactName   string `gorm:"size:100" json:"emergency_contact_name"`
	EmergencyContactNumber string `gorm:"size:20" json:"emergency_contact_number"`
}

func (TeacherProfile) TableName() string { return "teachers_info" }

type StudentProfile struct {
	UserID              uint   `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FirstName           string `gorm:"size:100;not null" json:"first_name"`
	MiddleName          string `gorm:"size:100" json:"middle_name"`
	LastName            string `gorm:"size:100" json:"last_name"`
	Gender              string `gorm:"size:20" json:"gender"`
	Birthday            string `gorm:"size:10" json:"birthday"`
	Email               string `gorm:"size:100" json:"email"`
	ContactNumber       string `gorm:"size:20" json:"contact_number"`
	AlternativeNumber   string `gorm:"size:20" json:"alternative_number"`
	AadharCardNumber    string `gorm:"size:20" json:"aadhar_card_number"`
	PermanentAddress    string `gorm:"type:text" json:"permanent_address"`
	City                string `gorm:"size:100" json:"city"`
	State               string `gorm:"size:100" json:"state"`
	FatherName          string `gorm:"size:100" json:"father_name"`
	FatherContactNumber string `gorm:"size:20" json:"father_contact_number"`
	FatherEmail         string `gorm:"size:100" json:"father_email"`
	MotherName          string `gorm:"size:100" json:"mother_name"`
	MotherContactNumber string `gorm:"size:20" json:"mother_contact_number"`
	MotherEmail         string `gorm:"size:100" json:"mother_email"`
	GuardianName        string `gorm:"size:100" json:"guardian_name"`
	GuardianNumber      string `gorm:"size:20" json:"guardian_number"`
	GuardianEmail       string `gorm:"size:100" json:"guardian_email"`
	AccountHolderName   string `gorm:"size:100" json:"account_holder_name"`
	BankName            string `gorm:"size:100" json:"bank_name"`
	AccountNumber       string `gorm:"size:30" json:"account_number"`
	IFSCCode            string `gorm:"column:ifsc_code;size:20" json:"ifsc_code"`
	AccountType         string `gorm:"size:20" json:"account_type"`
	MentorID            *uint  `gorm:"index" json:"mentor_id"`
}

func (StudentProfile) TableName() string { return "students_info" }
