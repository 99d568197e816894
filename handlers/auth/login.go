package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/model"
	authutil "github.com/sahilchouksey/uni-portal/utils/auth"
	"github.com/sahilchouksey/uni-portal/utils/metrics"
	"github.com/sahilchouksey/uni-portal/utils/middleware"
	"github.com/sahilchouksey/uni-portal/utils/render"
	"github.com/sahilchouksey/uni-portal/utils/validation"
)

const msgInvalidCredentials = "Invalid username or password."

// LoginForm is the sign-in form
type LoginForm struct {
	Username string `form:"username" validate:"required" label:"Username"`
	Password string `form:"password" validate:"required" label:"Password"`
}

// ShowLogin handles GET /login
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return h.renderLogin(c, fiber.StatusOK, LoginForm{}, nil)
}

// Login handles POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form LoginForm
	if err := c.BodyParser(&form); err != nil {
		return h.renderLogin(c, fiber.StatusUnprocessableEntity, form, []string{"Invalid form submission"})
	}
	form.Username = validation.SanitizeString(form.Username)

	if err := h.validator.ValidateStruct(form); err != nil {
		return h.renderLogin(c, fiber.StatusUnprocessableEntity, form, validation.Messages(err))
	}

	ctx := c.UserContext()
	ip := c.IP()

	// Configured admin credentials never touch the store
	if h.isAdminCredential(form.Username, form.Password) {
		issued, err := h.jwtManager.GenerateToken(0, form.Username, model.RoleAdmin, 0)
		if err != nil {
			return err
		}
		h.clearFailedAttempts(ctx, ip)
		h.setAuthCookie(c, issued.Value, issued.ExpiresAt)
		metrics.Logins.WithLabelValues(metrics.LoginAdmin).Inc()
		log.Infof("Admin %s logged in from %s", form.Username, ip)
		return c.Redirect("/admin", fiber.StatusFound)
	}

	user, err := h.store.FindUserByUsername(ctx, form.Username)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}
	if user == nil || authutil.VerifyPassword(user.PasswordHash, form.Password) != nil {
		// Record failed attempt even if user not found
		if err := h.bruteForceProtection.RecordFailedAttempt(ctx, ip); err != nil {
			log.Warnf("Failed to record login failure for %s: %v", ip, err)
		}
		metrics.Logins.WithLabelValues(metrics.LoginFailed).Inc()
		return render.Redirect(c, "/login", middleware.FlashError, msgInvalidCredentials)
	}

	h.clearFailedAttempts(ctx, ip)

	issued, err := h.jwtManager.GenerateToken(user.ID, user.Username, user.Role, user.TokenVersion)
	if err != nil {
		return err
	}
	h.setAuthCookie(c, issued.Value, issued.ExpiresAt)
	metrics.Logins.WithLabelValues(metrics.LoginSuccess).Inc()

	return render.Page(c, fiber.StatusOK, "main", "Welcome", fiber.Map{
		"Username": user.Username,
		"IsAdmin":  user.IsAdmin(),
	})
}

// clearFailedAttempts resets the lockout counters after a successful login
func (h *AuthHandler) clearFailedAttempts(ctx context.Context, ip string) {
	if err := h.bruteForceProtection.RecordSuccessfulAttempt(ctx, ip); err != nil {
		log.Warnf("Failed to clear login failures for %s: %v", ip, err)
	}
}

// isAdminCredential compares against the configured pair in constant time
func (h *AuthHandler) isAdminCredential(username, password string) bool {
	if h.config.AdminUsername == "" || h.config.AdminPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.config.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.config.AdminPassword)) == 1
	return userOK && passOK
}

func (h *AuthHandler) renderLogin(c *fiber.Ctx, status int, form LoginForm, errs []string) error {
	form.Password = ""
	return render.Page(c, status, "login", "Log in", fiber.Map{
		"Form":   form,
		"Errors": errs,
	})
}
