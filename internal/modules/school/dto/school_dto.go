package dto

type SchoolInput struct {
	SchoolName           string `json:"school_name" binding:"required,max=255"`
	SchoolAddress        string `json:"school_address"`
	SchoolDocumentNumber string `json:"school_document_number" binding:"max=100"`
	PrincipalName        string `json:"principal_name" binding:"max=100"`
	City                 string `json:"city" binding:"max=100"`
	State                string `json:"state" binding:"max=100"`
	ZipCode              string `json:"zip_code" binding:"max=20"`
	ContactNumber        string `json:"contact_number" binding:"max=20"`
	AlternativeNumber    string `json:"alternative_number" binding:"max=20"`
}

type SchoolSummary struct {
	SchoolID      uint   `json:"school_id"`
	SchoolName    string `json:"school_name"`
	PrincipalName string `json:"principal_name"`
	ContactNumber string `json:"contact_number"`
	UserCounts
}

type UserCounts struct {
	TotalUsers    int64 `json:"total_users"`
	TotalTeachers int64 `json:"total_teachers"`
	TotalStudents int64 `json:"total_students"`
}

type SchoolURI struct {
	SchoolID uint `uri:"school_id" binding:"required"`
}
