package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/model"
	"github.com/sahilchouksey/uni-portal/services/events"
	authutil "github.com/sahilchouksey/uni-portal/utils/auth"
	"github.com/sahilchouksey/uni-portal/utils/metrics"
	"github.com/sahilchouksey/uni-portal/utils/middleware"
	"github.com/sahilchouksey/uni-portal/utils/render"
	"github.com/sahilchouksey/uni-portal/utils/validation"
)

const (
	msgUsernameTaken = "Username is already taken. Please choose a different one."
	msgEmailTaken    = "Email is already registered. Please use a different one."
	msgRegistered    = "Registration successful. You can now log in."
	msgPasswordLong  = "Password must be at most 72 bytes"
)

// RegisterForm is the sign-up form
type RegisterForm struct {
	Username        string `form:"username" validate:"required,max=64" label:"Username"`
	Email           string `form:"email" validate:"required,email,max=254" label:"Email"`
	Password        string `form:"password" validate:"required,max=72" label:"Password"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password" label:"Confirm Password"`
}

// ShowRegister handles GET /register
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	return h.renderRegister(c, fiber.StatusOK, RegisterForm{}, nil)
}

// Register handles POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return h.renderRegister(c, fiber.StatusUnprocessableEntity, form, []string{"Invalid form submission"})
	}
	form.Username = validation.SanitizeString(form.Username)
	form.Email = validation.SanitizeString(form.Email)

	if err := h.validator.ValidateStruct(form); err != nil {
		return h.renderRegister(c, fiber.StatusUnprocessableEntity, form, validation.Messages(err))
	}

	// max=72 counts characters; bcrypt's limit is bytes
	if len(form.Password) > authutil.MaxPasswordBytes {
		return h.renderRegister(c, fiber.StatusUnprocessableEntity, form, []string{msgPasswordLong})
	}

	ctx := c.UserContext()

	// Friendly pre-checks; the unique indexes settle any race below
	var problems []string
	taken, err := h.store.UsernameExists(ctx, form.Username)
	if err != nil {
		return err
	}
	if taken {
		problems = append(problems, msgUsernameTaken)
	}
	taken, err = h.store.EmailExists(ctx, form.Email)
	if err != nil {
		return err
	}
	if taken {
		problems = append(problems, msgEmailTaken)
	}
	if len(problems) > 0 {
		return h.renderRegister(c, fiber.StatusUnprocessableEntity, form, problems)
	}

	hash, err := authutil.HashPassword(form.Password)
	if err != nil {
		if errors.Is(err, authutil.ErrPasswordTooLong) {
			return h.renderRegister(c, fiber.StatusUnprocessableEntity, form, []string{msgPasswordLong})
		}
		return err
	}

	user := model.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
		Role:         model.RoleStudent,
	}
	if err := h.store.CreateUser(ctx, &user); err != nil {
		switch {
		case errors.Is(err, database.ErrUsernameTaken):
			return h.renderRegister(c, fiber.StatusUnprocessableEntity, form, []string{msgUsernameTaken})
		case errors.Is(err, database.ErrEmailTaken):
			return h.renderRegister(c, fiber.StatusUnprocessableEntity, form, []string{msgEmailTaken})
		default:
			return err
		}
	}

	metrics.Registrations.Inc()
	if err := h.publisher.Publish(ctx, events.SubjectUserRegistered, events.UserRegistered{
		UserID:       user.ID,
		Username:     user.Username,
		RegisteredAt: user.CreatedAt,
	}); err != nil {
		log.Warnf("Failed to publish registration of %s: %v", user.Username, err)
	}

	log.Infof("Registered user %s (id=%d) at %s", user.Username, user.ID, user.CreatedAt.Format(time.RFC3339))
	return render.Redirect(c, "/login", middleware.FlashSuccess, msgRegistered)
}

func (h *AuthHandler) renderRegister(c *fiber.Ctx, status int, form RegisterForm, errs []string) error {
	// never echo passwords back
	form.Password, form.ConfirmPassword = "", ""
	return render.Page(c, status, "register", "Register", fiber.Map{
		"Form":   form,
		"Errors": errs,
	})
}
