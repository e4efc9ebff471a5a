package dto

type MentorInput struct {
	MentorFirstName          string `json:"mentor_first_name" binding:"required,max=100"`
	MentorMiddleName         string `json:"mentor_middle_name" binding:"max=100"`
	MentorLastName           string `json:"mentor_last_name" binding:"max=100"`
	Email                    string `json:"email" binding:"omitempty,email"`
	AadharCard               string `json:"aadhar_card" binding:"max=20"`
	Birthdate                string `json:"birthdate" binding:"max=10"`
	ContactNumber            string `json:"contact_number" binding:"max=20"`
	AlternativeContactNumber string `json:"alternative_contact_number" binding:"max=20"`
	PermanentAddress         string `json:"permanent_address"`
	City                     string `json:"city" binding:"max=100"`
	State                    string `json:"state" binding:"max=100"`
}

type MentorName struct {
	MentorID   uint   `json:"mentor_id"`
	MentorName string `json:"mentor_name"`
}

type MentorURI struct {
	MentorID uint `uri:"mentor_id" binding:"required"`
}

type DeleteMentorResponse struct {
	Message         string `json:"message"`
	StudentsRemoved int64  `json:"students_removed"`
}
