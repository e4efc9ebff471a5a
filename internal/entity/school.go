package entity

type School struct {
	SchoolID             uint   `gorm:"primaryKey;autoIncrement" json:"school_id"`
	SchoolName           string `gorm:"size:255;not null" json:"school_name"`
	SchoolAddress        string `gorm:"type:text" json:"school_address"`
	SchoolDocumentNumber string `gorm:"size:100" json:"school_document_number"`
	PrincipalName        string `gorm:"size:100" json:"principal_name"`
	City                 string `gorm:"size:100" json:"city"`
	State                string `gorm:"size:100" json:"state"`
	ZipCode              string `gorm:"size:20" json:"zip_code"`
	ContactNumber        string `gorm:"size:20" json:"contact_number"`
	AlternativeNumber    string `gorm:"size:20" json:"alternative_number"`
}

func (School) TableName() string { return "schools_info" }

type Mentor struct {
	MentorID                 uint   `gorm:"primaryKey;autoIncrement" json:"mentor_id"`
	MentorFirstName          string `gorm:"size:100;not null" json:"mentor_first_name"`
	MentorMiddleName         string `gorm:"size:100" json:"mentor_middle_name"`
	MentorLastName           string `gorm:"size:100" json:"mentor_last_name"`
	Email                    string `gorm:"size:100" json:"email"`
	AadharCard               string `gorm:"size:20" json:"aadhar_card"`
	Birthdate                string `gorm:"size:10" json:"birthdate"`
	ContactNumber            string `gorm:"size:20" json:"contact_number"`
	AlternativeContactNumber string `gorm:"size:20" json:"alternative_contact_number"`
	PermanentAddress         string `gorm:"type:text" json:"permanent_address"`
	City                     string `gorm:"size:100" json:"city"`
	State                    string `gorm:"size:100" json:"state"`
}

func (Mentor) TableName() string { return "mentors_info" }
