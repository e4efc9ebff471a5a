package dto

type CreateCourseInput struct {
	CourseName        string `json:"course_name" binding:"required,max=255"`
	CourseDescription string `json:"course_description"`
	SubjectID         uint   `json:"subject_id" binding:"required"`
	ClassID           uint   `json:"class_id" binding:"required"`
}

type UserCourse struct {
	CourseID      uint   `json:"course_id"`
	CourseName    string `json:"course_name"`
	Status        string `json:"status"`
	SubjectName   string `json:"subject_name"`
	TotalChapters int64  `json:"total_chapters"`
}
