package entity

import "time"

const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
)

type Course struct {
	CourseID          uint      `gorm:"primaryKey;autoIncrement" json:"course_id"`
	UserID            uint      `gorm:"index;not null" json:"user_id"`
	CourseName        string    `gorm:"size:255;not null" json:"course_name"`
	CourseDescription string    `gorm:"type:text" json:"course_description"`
	SubjectID         uint      `gorm:"index" json:"subject_id"`
	ClassID           uint      `gorm:"index" json:"class_id"`
	Status            string    `gorm:"size:20;not null;default:'draft'" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Course) TableName() string { return "courses_info" }

type Subject struct {
	SubjectID   uint   `gorm:"primaryKey;autoIncrement" json:"subject_id"`
	SubjectName string `gorm:"size:100;not null" json:"subject_name"`
}

func (Subject) TableName() string { return "subjects_info" }

type Class struct {
	ClassID   uint   `gorm:"primaryKey;autoIncrement" json:"class_id"`
	ClassName string `gorm:"size:100;not null" json:"class_name"`
}

func (Class) TableName() string { return "classes_info" }

type Chapter struct {
	ChapterID   uint   `gorm:"primaryKey;autoIncrement" json:"chapter_id"`
	CourseID    uint   `gorm:"index;not null" json:"course_id"`
	ChapterName string `gorm:"size:255;not null" json:"chapter_name"`
}

func (Chapter) TableName() string { return "chapters_info" }
