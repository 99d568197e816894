package auth

import (
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/services/events"
	authutil "github.com/sahilchouksey/uni-portal/utils/auth"
	"github.com/sahilchouksey/uni-portal/utils/middleware"
	"github.com/sahilchouksey/uni-portal/utils/validation"
)

// Config holds the auth handler settings taken from the environment
type Config struct {
	AdminUsername string
	AdminPassword string
	CookieName    string
	CookieSecure  bool
}

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	store                database.Storage
	jwtManager           *authutil.JWTManager
	blacklistService     *authutil.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	publisher            events.Publisher
	validator            *validation.Validator
	config               Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	store database.Storage,
	jwtManager *authutil.JWTManager,
	bruteForceProtection *middleware.BruteForceProtection,
	publisher events.Publisher,
	config Config,
) *AuthHandler {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &AuthHandler{
		store:                store,
		jwtManager:           jwtManager,
		blacklistService:     authutil.NewBlacklistService(store.GetDB()),
		bruteForceProtection: bruteForceProtection,
		publisher:            publisher,
		validator:            validation.NewValidator(),
		config:               config,
	}
}
