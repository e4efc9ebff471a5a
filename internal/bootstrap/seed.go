package bootstrap

import (
	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/password"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&entity.School{},
		&entity.Admin{},
		&entity.Login{},
		&entity.TeacherProfile{},
		&entity.Mentor{},
		&entity.StudentProfile{},
		&entity.Subject{},
		&entity.Class{},
		&entity.Course{},
		&entity.Chapter{},
		&entity.OTP{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// SeedCatalogue inserts the default subjects and classes when the tables are empty.
func SeedCatalogue(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Subject{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		subjects := []entity.Subject{
			{SubjectName: "Mathematics"},
			{SubjectName: "Science"},
			{SubjectName: "English"},
			{SubjectName: "Social Studies"},
		}
		if err := db.Create(&subjects).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&entity.Class{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		var classes []entity.Class
		for _, name := range []string{"Class 6", "Class 7", "Class 8", "Class 9", "Class 10"} {
			classes = append(classes, entity.Class{ClassName: name})
		}
		if err := db.Create(&classes).Error; err != nil {
			return err
		}
	}

	return nil
}

// SeedAdminUser creates a development administrator with a hashed password.
func SeedAdminUser(db *gorm.DB, email, plain string) error {
	var count int64
	if err := db.Model(&entity.Admin{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Log.Info("admin user already exists, skipping seed", zap.String("email", email))
		return nil
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return err
	}

	admin := entity.Admin{
		Email:            email,
		Password:         hashed,
		IsPasswordHashed: true,
		FirstName:        "System",
		LastName:         "Administrator",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Log.Info("admin user seeded", zap.String("email", email))
	return nil
}
