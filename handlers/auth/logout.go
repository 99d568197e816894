package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/utils/middleware"
	"github.com/sahilchouksey/uni-portal/utils/render"
)

// Logout handles GET /logout: revokes the current token and clears the cookie
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if claims, ok := middleware.GetClaims(c); ok && claims.ExpiresAt != nil {
		if err := h.blacklistService.RevokeToken(c.UserContext(), claims.ID, claims.UserID, claims.ExpiresAt.Time, "logout"); err != nil {
			log.Errorf("Failed to revoke token for %s: %v", claims.Username, err)
		}
	}

	h.clearAuthCookie(c)
	return render.Redirect(c, "/", middleware.FlashInfo, "You have been logged out.")
}
