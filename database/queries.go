package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilchouksey/uni-portal/model"
	"gorm.io/gorm"
)

// FindUserByUsername returns ErrNotFound when no user has that username
func (s *GORMStore) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GORMStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GORMStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "username = ?", username)
}

func (s *GORMStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email = ?", email)
}

func (s *GORMStore) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser inserts the user. A unique index violation is reported as
// ErrUsernameTaken or ErrEmailTaken so callers racing past the pre-check
// still get a validation error instead of a store failure.
func (s *GORMStore) CreateUser(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if !isDuplicateKey(err) {
		return fmt.Errorf("create user: %w", err)
	}

	if taken, lookupErr := s.UsernameExists(ctx, user.Username); lookupErr == nil && taken {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without error translation
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// ListUniversities returns every university in storage order
func (s *GORMStore) ListUniversities(ctx context.Context) ([]model.University, error) {
	universities := []model.University{}
	if err := s.db.WithContext(ctx).Order("id").Find(&universities).Error; err != nil {
		return nil, err
	}
	return universities, nil
}

func (s *GORMStore) GetUniversity(ctx context.Context, id uint) (*model.University, error) {
	var university model.University
	if err := s.db.WithContext(ctx).First(&university, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &university, nil
}

func (s *GORMStore) CreateUniversity(ctx context.Context, university *model.University) error {
	return s.db.WithContext(ctx).Create(university).Error
}

// ListCoursesByUniversity returns an empty slice when the university has no courses
func (s *GORMStore) ListCoursesByUniversity(ctx context.Context, universityID uint) ([]model.Course, error) {
	courses := []model.Course{}
	if err := s.db.WithContext(ctx).
		Where("university_id = ?", universityID).
		Order("id").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *GORMStore) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := s.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (s *GORMStore) CreateCourse(ctx context.Context, course *model.Course) error {
	return s.db.WithContext(ctx).Create(course).Error
}

func (s *GORMStore) ListEventsByUniversity(ctx context.Context, universityID uint) ([]model.Event, error) {
	events := []model.Event{}
	if err := s.db.WithContext(ctx).
		Where("university_id = ?", universityID).
		Order("date").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CreateApplication inserts the application, defaulting the status to Pending
func (s *GORMStore) CreateApplication(ctx context.Context, application *model.Application) error {
	if application.Status == "" {
		application.Status = model.StatusPending
	}
	return s.db.WithContext(ctx).Create(application).Error
}

func (s *GORMStore) ListRecentApplications(ctx context.Context, limit int) ([]model.Application, error) {
	if limit <= 0 {
		limit = 20
	}
	applications := []model.Application{}
	if err := s.db.WithContext(ctx).
		Preload("University").
		Preload("Course").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (s *GORMStore) CreateAuditLog(ctx context.Context, entry *model.AdminAuditLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}
