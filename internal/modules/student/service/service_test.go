package service

import (
	"context"
	"errors"
	"testing"

	"anoa.com/edapp/internal/entity"
	search "anoa.com/edapp/internal/modules/search/service"
	"anoa.com/edapp/internal/modules/student/dto"
	"anoa.com/edapp/internal/modules/student/repository"
	"anoa.com/edapp/internal/testutil"
	"anoa.com/edapp/pkg/apperror"
	"gorm.io/gorm"
)

type fakeSearch struct {
	indexed []search.Member
	deleted []uint
}

func (f *fakeSearch) IndexMember(m search.Member) error {
	f.indexed = append(f.indexed, m)
	return nil
}

func (f *fakeSearch) DeleteMember(userID uint) error {
	f.deleted = append(f.deleted, userID)
	return errors.New("index unavailable")
}

func (f *fakeSearch) Search(uint, string, string, int64) ([]search.Member, error) {
	return nil, nil
}

func setup(t *testing.T) (StudentService, *gorm.DB, *fakeSearch, uint, uint) {
	t.Helper()
	db := testutil.NewDB(t)

	school := entity.School{SchoolName: "Sunrise High"}
	if err := db.Create(&school).Error; err != nil {
		t.Fatal(err)
	}
	mentor := entity.Mentor{MentorFirstName: "Anil", MentorLastName: "Kapoor"}
	if err := db.Create(&mentor).Error; err != nil {
		t.Fatal(err)
	}

	fs := &fakeSearch{}
	return NewStudentService(repository.NewStudentRepository(db), fs), db, fs, school.SchoolID, mentor.MentorID
}

func TestCreateListGet(t *testing.T) {
	svc, _, fs, schoolID, mentorID := setup(t)
	ctx := context.Background()

	withMentor, err := svc.Create(ctx, schoolID, dto.StudentInput{FirstName: "Arjun", LastName: "Das", Email: "arjun@x.com", MentorID: &mentorID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	alone, err := svc.Create(ctx, schoolID, dto.StudentInput{FirstName: "Kavya", Email: "kavya@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if withMentor.Role != entity.RoleStudent || withMentor.Password != withMentor.SapID {
		t.Errorf("login = %+v", withMentor)
	}

	students, err := svc.ListForSchool(ctx, schoolID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("students = %+v", students)
	}
	if students[0].UserID != withMentor.UserID || students[0].MentorFirstName != "Anil" || students[0].MentorLastName != "Kapoor" {
		t.Errorf("first = %+v", students[0])
	}
	if students[1].UserID != alone.UserID || students[1].MentorFirstName != "" {
		t.Errorf("second = %+v", students[1])
	}

	details, err := svc.Get(ctx, schoolID, withMentor.UserID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if details.Profile == nil || details.Profile.MentorID == nil || *details.Profile.MentorID != mentorID {
		t.Errorf("profile = %+v", details.Profile)
	}

	if len(fs.indexed) != 2 || fs.indexed[0].Name != "Arjun Das" || fs.indexed[0].Role != "student" {
		t.Errorf("indexed = %+v", fs.indexed)
	}
}

func TestCreateUnknownMentor(t *testing.T) {
	svc, db, _, schoolID, _ := setup(t)

	missing := uint(999)
	_, err := svc.Create(context.Background(), schoolID, dto.StudentInput{FirstName: "Arjun", Email: "a@x.com", MentorID: &missing})
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	var count int64
	db.Model(&entity.Login{}).Count(&count)
	if count != 0 {
		t.Errorf("login rows = %d", count)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc, db, fs, schoolID, mentorID := setup(t)
	ctx := context.Background()

	login, err := svc.Create(ctx, schoolID, dto.StudentInput{FirstName: "Arjun", Email: "arjun@x.com", MentorID: &mentorID})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Update(ctx, schoolID, login.UserID, dto.StudentInput{FirstName: "Arjun", BankName: "SBI", Email: "arjun@x.com"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	var profile entity.StudentProfile
	db.First(&profile, "user_id = ?", login.UserID)
	if profile.BankName != "SBI" || profile.MentorID != nil {
		t.Errorf("profile = %+v", profile)
	}

	// index failures are logged, not returned
	if err := svc.Delete(ctx, schoolID, login.UserID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(fs.deleted) != 1 {
		t.Errorf("deleted = %v", fs.deleted)
	}

	if _, err := svc.Get(ctx, schoolID, login.UserID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("get after delete err = %v", err)
	}
}
