package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/uni-portal/utils/render"
)

// Index handles GET /
func Index(c *fiber.Ctx) error {
	return render.Page(c, fiber.StatusOK, "index", "Home", nil)
}

// Main handles GET /main, the post-login landing page
func Main(c *fiber.Ctx) error {
	return render.Page(c, fiber.StatusOK, "main", "Welcome", nil)
}
