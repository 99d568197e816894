package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/model"
	"github.com/sahilchouksey/uni-portal/utils/auth"
)

// AuthMiddleware resolves the session cookie into an identity
type AuthMiddleware struct {
	jwtManager       *auth.JWTManager
	blacklistService *auth.BlacklistService
	store            database.Storage
	cookieName       string
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, store database.Storage, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:       jwtManager,
		blacklistService: auth.NewBlacklistService(store.GetDB()),
		store:            store,
		cookieName:       cookieName,
	}
}

// resolve validates the cookie token. Admin tokens carry user id 0 and are
// not backed by a users row.
func (m *AuthMiddleware) resolve(c *fiber.Ctx) (*auth.Claims, bool) {
	tokenString := c.Cookies(m.cookieName)
	if tokenString == "" {
		return nil, false
	}

	claims, err := m.jwtManager.ValidateToken(tokenString)
	if err != nil {
		return nil, false
	}

	// Check if token is revoked
	isRevoked, err := m.blacklistService.IsTokenRevoked(c.UserContext(), claims.ID)
	if err != nil {
		log.Errorf("Failed to check token status: %v", err)
		return nil, false
	}
	if isRevoked {
		return nil, false
	}

	if claims.Role == model.RoleAdmin && claims.UserID == 0 {
		return claims, true
	}

	// Load user and verify token version
	user, err := m.store.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return nil, false
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, false
	}

	return claims, true
}

func setIdentity(c *fiber.Ctx, claims *auth.Claims) {
	c.Locals("user_id", claims.UserID)
	c.Locals("username", claims.Username)
	c.Locals("user_role", claims.Role)
	c.Locals("claims", claims)
	c.Locals("token_jti", claims.ID)
}

// Optional is middleware that allows requests with or without a session cookie
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, ok := m.resolve(c); ok {
			setIdentity(c, claims)
		}
		return c.Next()
	}
}

// RequireAdmin sends anonymous and non-admin visitors to the login page
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := m.resolve(c)
		if !ok || claims.Role != model.RoleAdmin {
			SetFlash(c, FlashError, "Please log in as an administrator to continue.")
			return c.Redirect("/login", fiber.StatusFound)
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("user_id").(uint)
	return id, ok
}

// GetUsername extracts the username from context
func GetUsername(c *fiber.Ctx) (string, bool) {
	name, ok := c.Locals("username").(string)
	return name, ok
}

// GetUserRole extracts user role from context
func GetUserRole(c *fiber.Ctx) (string, bool) {
	role, ok := c.Locals("user_role").(string)
	return role, ok
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals("claims").(*auth.Claims)
	return claims, ok
}

// IsAdmin reports whether the request carries an admin identity
func IsAdmin(c *fiber.Ctx) bool {
	role, ok := GetUserRole(c)
	return ok && role == model.RoleAdmin
}
