package account

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/internal/testutil"
	"anoa.com/edapp/pkg/apperror"
	"gorm.io/gorm"
)

func seedSchool(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	school := entity.School{SchoolName: "Sunrise High"}
	if err := db.Create(&school).Error; err != nil {
		t.Fatal(err)
	}
	return school.SchoolID
}

func TestCreate(t *testing.T) {
	db := testutil.NewDB(t)
	schoolID := seedSchool(t, db)

	login, err := Create(context.Background(), db, schoolID, entity.RoleTeacher, "t@x.com", func(tx *gorm.DB, userID uint) error {
		return tx.Create(&entity.TeacherProfile{UserID: userID, FirstName: "Meera"}).Error
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !regexp.MustCompile(`^[0-9]{10}$`).MatchString(login.SapID) {
		t.Errorf("sap_id = %q", login.SapID)
	}
	if login.Password != login.SapID || login.IsPasswordHashed {
		t.Errorf("initial credential = %q hashed=%v", login.Password, login.IsPasswordHashed)
	}
	if login.SchoolName != "Sunrise High" {
		t.Errorf("school_name = %q", login.SchoolName)
	}

	var profile entity.TeacherProfile
	if err := db.First(&profile, "user_id = ?", login.UserID).Error; err != nil {
		t.Errorf("profile not written: %v", err)
	}
}

func TestCreateRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	schoolID := seedSchool(t, db)

	boom := errors.New("profile insert failed")
	_, err := Create(context.Background(), db, schoolID, entity.RoleStudent, "s@x.com", func(tx *gorm.DB, userID uint) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}

	var count int64
	db.Model(&entity.Login{}).Count(&count)
	if count != 0 {
		t.Errorf("login rows after rollback = %d", count)
	}
}

func TestCreateUnknownSchool(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := Create(context.Background(), db, 404, entity.RoleTeacher, "t@x.com", func(tx *gorm.DB, userID uint) error {
		t.Fatal("profile writer called for unknown school")
		return nil
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.NewDB(t)
	schoolID := seedSchool(t, db)
	ctx := context.Background()

	login, err := Create(ctx, db, schoolID, entity.RoleTeacher, "t@x.com", func(tx *gorm.DB, userID uint) error {
		return tx.Create(&entity.TeacherProfile{UserID: userID, FirstName: "Meera"}).Error
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := Delete(ctx, db, login.UserID, entity.RoleStudent, &entity.StudentProfile{}); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("wrong role err = %v, want ErrNotFound", err)
	}

	if err := Delete(ctx, db, login.UserID, entity.RoleTeacher, &entity.TeacherProfile{}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var logins, profiles int64
	db.Model(&entity.Login{}).Count(&logins)
	db.Model(&entity.TeacherProfile{}).Count(&profiles)
	if logins != 0 || profiles != 0 {
		t.Errorf("rows left: login=%d profile=%d", logins, profiles)
	}
}

func TestDeleteLeavesDanglingLoginOnSecondFailure(t *testing.T) {
	db := testutil.NewDB(t)
	schoolID := seedSchool(t, db)
	ctx := context.Background()

	login, err := Create(ctx, db, schoolID, entity.RoleStudent, "s@x.com", func(tx *gorm.DB, userID uint) error {
		return tx.Create(&entity.StudentProfile{UserID: userID, FirstName: "Arjun"}).Error
	})
	if err != nil {
		t.Fatal(err)
	}

	injected := errors.New("login table locked")
	if err := db.Callback().Delete().Before("gorm:delete").Register("test:fail_login_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "login" {
			tx.AddError(injected)
		}
	}); err != nil {
		t.Fatal(err)
	}

	err = Delete(ctx, db, login.UserID, entity.RoleStudent, &entity.StudentProfile{})
	if !errors.Is(err, injected) {
		t.Fatalf("err = %v, want injected failure", err)
	}

	var profiles, logins int64
	db.Model(&entity.StudentProfile{}).Where("user_id = ?", login.UserID).Count(&profiles)
	db.Model(&entity.Login{}).Where("user_id = ?", login.UserID).Count(&logins)
	if profiles != 0 {
		t.Errorf("profile row survived: %d", profiles)
	}
	if logins != 1 {
		t.Errorf("login rows = %d, want the dangling row", logins)
	}
}

func TestGenerateSapID(t *testing.T) {
	re := regexp.MustCompile(`^[0-9]{10}$`)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id, err := GenerateSapID()
		if err != nil {
			t.Fatal(err)
		}
		if !re.MatchString(id) {
			t.Fatalf("sap_id %q", id)
		}
		seen[id] = true
	}
	if len(seen) < 190 {
		t.Errorf("only %d distinct ids out of 200", len(seen))
	}
}
