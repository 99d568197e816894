package render

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/uni-portal/utils/middleware"
	"github.com/sahilchouksey/uni-portal/views"
)

// Page renders a template inside the shared layout with the per-request
// values every page needs (CSRF token, flashes, identity).
func Page(c *fiber.Ctx, status int, name, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["CSRF"] = middleware.CSRFToken(c)
	data["Flashes"] = middleware.PopFlashes(c)

	// login renders the landing page before the cookie round-trips
	if _, ok := data["Username"]; !ok {
		username, _ := middleware.GetUsername(c)
		data["Username"] = username
	}
	if _, ok := data["IsAdmin"]; !ok {
		data["IsAdmin"] = middleware.IsAdmin(c)
	}

	return c.Status(status).Render(name, data, views.Layout)
}

// Redirect queues a flash message and redirects with 302
func Redirect(c *fiber.Ctx, location, category, message string) error {
	if message != "" {
		middleware.SetFlash(c, category, message)
	}
	return c.Redirect(location, fiber.StatusFound)
}
