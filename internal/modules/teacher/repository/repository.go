package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/internal/modules/account"
	"anoa.com/edapp/internal/modules/teacher/dto"
	"anoa.com/edapp/pkg/apperror"
	"gorm.io/gorm"
)

type TeacherRepository interface {
	ListForSchool(ctx context.Context, schoolID uint) ([]dto.TeacherSummary, error)
	FindDetails(ctx context.Context, schoolID, userID uint) (*dto.TeacherDetails, error)
	Create(ctx context.Context, schoolID uint, profile *entity.TeacherProfile) (*entity.Login, error)
	Update(ctx context.Context, profile *entity.TeacherProfile) error
	Delete(ctx context.Context, userID uint) error
}

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

type teachingRow struct {
	UserID      uint
	SubjectName *string
	ClassName   *string
}

func (r *teacherRepository) ListForSchool(ctx context.Context, schoolID uint) ([]dto.TeacherSummary, error) {
	var teachers []dto.TeacherSummary
	err := r.db.WithContext(ctx).
		Table("login").
		Select(`login.user_id, login.school_id, login.sap_id, login.school_name,
			teachers_info.first_name, teachers_info.last_name, teachers_info.contact_number,
			teachers_info.email, teachers_info.birthday`).
		Joins("LEFT JOIN teachers_info ON login.user_id = teachers_info.user_id").
		Where("login.school_id = ? AND login.role = ?", schoolID, entity.RoleTeacher).
		Order("login.user_id").
		Scan(&teachers).Error
	if err != nil {
		return nil, fmt.Errorf("query teachers: %w", err)
	}
	if len(teachers) == 0 {
		return teachers, nil
	}

	userIDs := make([]uint, len(teachers))
	for i, t := range teachers {
		userIDs[i] = t.UserID
	}

	var rows []teachingRow
	err = r.db.WithContext(ctx).
		Table("courses_info").
		Select("courses_info.user_id, subjects_info.subject_name, classes_info.class_name").
		Joins("LEFT JOIN subjects_info ON courses_info.subject_id = subjects_info.subject_id").
		Joins("LEFT JOIN classes_info ON courses_info.class_id = classes_info.class_id").
		Where("courses_info.user_id IN ?", userIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query teaching assignments: %w", err)
	}

	subjects := map[uint]map[string]struct{}{}
	classes := map[uint]map[string]struct{}{}
	for _, row := range rows {
		addName(subjects, row.UserID, row.SubjectName)
		addName(classes, row.UserID, row.ClassName)
	}

	for i := range teachers {
		teachers[i].SubjectsTaught = sortedNames(subjects[teachers[i].UserID])
		teachers[i].ClassesTaught = sortedNames(classes[teachers[i].UserID])
	}
	return teachers, nil
}

func addName(set map[uint]map[string]struct{}, userID uint, name *string) {
	if name == nil || *name == "" {
		return
	}
	if set[userID] == nil {
		set[userID] = map[string]struct{}{}
	}
	set[userID][*name] = struct{}{}
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *teacherRepository) FindDetails(ctx context.Context, schoolID, userID uint) (*dto.TeacherDetails, error) {
	var login entity.Login
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND school_id = ? AND role = ?", userID, schoolID, entity.RoleTeacher).
		First(&login).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("teacher %d: %w", userID, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("query login: %w", err)
	}

	details := &dto.TeacherDetails{Login: login}

	var profile entity.TeacherProfile
	err = r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	switch {
	case err == nil:
		details.Profile = &profile
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, fmt.Errorf("query teachers_info: %w", err)
	}

	return details, nil
}

func (r *teacherRepository) Create(ctx context.Context, schoolID uint, profile *entity.TeacherProfile) (*entity.Login, error) {
	return account.Create(ctx, r.db, schoolID, entity.RoleTeacher, profile.Email, func(tx *gorm.DB, userID uint) error {
		profile.UserID = userID
		return tx.Create(profile).Error
	})
}

func (r *teacherRepository) Update(ctx context.Context, profile *entity.TeacherProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.TeacherProfile{}).
			Where("user_id = ?", profile.UserID).
			Select("*").
			Omit("user_id").
			Updates(profile)
		if result.Error != nil {
			return fmt.Errorf("update teachers_info: %w", result.Error)
		}
		return account.UpdateEmail(tx, profile.UserID, profile.Email)
	})
}

func (r *teacherRepository) Delete(ctx context.Context, userID uint) error {
	return account.Delete(ctx, r.db, userID, entity.RoleTeacher, &entity.TeacherProfile{})
}
