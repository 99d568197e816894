package router

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/config"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/handlers"
	admin_handlers "github.com/sahilchouksey/uni-portal/handlers/admin"
	application_handlers "github.com/sahilchouksey/uni-portal/handlers/application"
	auth_handlers "github.com/sahilchouksey/uni-portal/handlers/auth"
	course_handlers "github.com/sahilchouksey/uni-portal/handlers/course"
	university_handlers "github.com/sahilchouksey/uni-portal/handlers/university"
	"github.com/sahilchouksey/uni-portal/services/catalog"
	"github.com/sahilchouksey/uni-portal/services/events"
	"github.com/sahilchouksey/uni-portal/services/storage"
	"github.com/sahilchouksey/uni-portal/utils/auth"
	"github.com/sahilchouksey/uni-portal/utils/cache"
	"github.com/sahilchouksey/uni-portal/utils/metrics"
	"github.com/sahilchouksey/uni-portal/utils/middleware"
)

// Dependencies are the services the routes are built from.
// Cache, Publisher and Pictures are optional.
type Dependencies struct {
	Store     database.Storage
	Env       *config.EnviornmentVariable
	Cache     *cache.RedisCache
	Publisher events.Publisher
	Pictures  storage.PictureStore

	// RateLimitRequests per minute per IP; zero disables the limiter
	RateLimitRequests int
	DisableAccessLog  bool
}

func SetupRoutes(app *fiber.App, deps Dependencies) error {
	getEnv := deps.Env
	if getEnv.JWT_SECRET == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}

	// Initialize JWT manager with config
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: 24 * time.Hour,
		Issuer: getEnv.JWT_ISSUER,
	})

	if deps.Cache == nil {
		log.Warn("Redis is not configured. Brute force protection and catalog caching are disabled.")
	}
	bruteForceProtection := middleware.NewBruteForceProtection(deps.Cache)

	if !getEnv.AdminLoginEnabled() {
		log.Warn("ADMIN_USERNAME/ADMIN_PASSWORD not set. Admin login is disabled.")
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, deps.Store, getEnv.COOKIE_NAME)
	catalogService := catalog.NewService(deps.Store, deps.Cache)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(deps.Store, jwtManager, bruteForceProtection, deps.Publisher, auth_handlers.Config{
		AdminUsername: getEnv.ADMIN_USERNAME,
		AdminPassword: getEnv.ADMIN_PASSWORD,
		CookieName:    getEnv.COOKIE_NAME,
		CookieSecure:  getEnv.COOKIE_SECURE,
	})
	universityHandler := university_handlers.NewUniversityHandler(catalogService, deps.Pictures)
	courseHandler := course_handlers.NewCourseHandler(deps.Store)
	applicationHandler := application_handlers.NewApplicationHandler(deps.Store, catalogService, deps.Publisher)
	adminHandler := admin_handlers.NewAdminHandler(deps.Store, catalogService, deps.Pictures != nil)
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Cache)

	// Apply security middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: deps.RateLimitRequests,
		RateLimitWindow:   1 * time.Minute,
		DisableAccessLog:  deps.DisableAccessLog,
	})
	app.Use(metrics.Middleware())

	// Operational endpoints
	app.Get("/ping", healthHandler.Ping)
	app.Get("/metrics", metrics.Handler())

	// Read-only JSON API
	v1 := app.Group("/api/v1")
	v1.Get("/universities", universityHandler.APIListUniversities)
	v1.Get("/universities/:id/courses", courseHandler.APIListByUniversity)

	// HTML pages: flashes, CSRF and the optional identity apply from here on
	sessionStore := middleware.NewSessionStore(middleware.FlashConfig{CookieSecure: getEnv.COOKIE_SECURE})
	app.Use(middleware.Flashes(sessionStore))
	app.Use(middleware.CSRF(middleware.CSRFConfig{
		Enabled:      getEnv.CSRF_ENABLED,
		CookieSecure: getEnv.COOKIE_SECURE,
	}))
	app.Use(authMiddleware.Optional())

	app.Get("/", handlers.Index)
	app.Get("/main", handlers.Main)

	// Auth
	app.Get("/register", authHandler.ShowRegister)
	app.Post("/register", authHandler.Register)
	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login", bruteForceProtection.CheckLockout(), authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	// Catalog
	app.Get("/universities", universityHandler.ListUniversities)
	app.Get("/courses/:university_id", courseHandler.ListByUniversity)

	// Applications
	app.Get("/apply", applicationHandler.ShowApply)
	app.Post("/apply", applicationHandler.Apply)

	// Admin
	requireAdmin := authMiddleware.RequireAdmin()
	app.Get("/admin", requireAdmin, adminHandler.Dashboard)
	app.Post("/add_university",
		requireAdmin,
		middleware.AdminAuditLog(deps.Store, "university_create", "universities"),
		universityHandler.AddUniversity,
	)
	app.Post("/add_course",
		requireAdmin,
		middleware.AdminAuditLog(deps.Store, "course_create", "courses"),
		courseHandler.AddCourse,
	)

	return nil
}
