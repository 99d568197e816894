package database

import (
	"context"

	"github.com/sahilchouksey/uni-portal/model"
	"gorm.io/gorm"
)

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// GORM DB access
	GetDB() *gorm.DB

	// Users
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *model.User) error

	// Catalog
	ListUniversities(ctx context.Context) ([]model.University, error)
	GetUniversity(ctx context.Context, id uint) (*model.University, error)
	CreateUniversity(ctx context.Context, university *model.University) error
	ListCoursesByUniversity(ctx context.Context, universityID uint) ([]model.Course, error)
	GetCourse(ctx context.Context, id uint) (*model.Course, error)
	CreateCourse(ctx context.Context, course *model.Course) error
	ListEventsByUniversity(ctx context.Context, universityID uint) ([]model.Event, error)

	// Applications
	CreateApplication(ctx context.Context, application *model.Application) error
	ListRecentApplications(ctx context.Context, limit int) ([]model.Application, error)

	// Audit
	CreateAuditLog(ctx context.Context, entry *model.AdminAuditLog) error
}

var _ Storage = (*GORMStore)(nil)
