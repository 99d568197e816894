package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/services/catalog"
	"github.com/sahilchouksey/uni-portal/utils/render"
)

// recentApplications is how many applications the dashboard lists
const recentApplications = 20

// AdminHandler serves the admin dashboard
type AdminHandler struct {
	store          database.Storage
	catalog        *catalog.Service
	uploadsEnabled bool
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store database.Storage, catalogService *catalog.Service, uploadsEnabled bool) *AdminHandler {
	return &AdminHandler{
		store:          store,
		catalog:        catalogService,
		uploadsEnabled: uploadsEnabled,
	}
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	universities, err := h.catalog.ListUniversities(ctx)
	if err != nil {
		return err
	}

	applications, err := h.store.ListRecentApplications(ctx, recentApplications)
	if err != nil {
		return err
	}

	return render.Page(c, fiber.StatusOK, "admin", "Admin", fiber.Map{
		"Universities":   universities,
		"Applications":   applications,
		"UploadsEnabled": h.uploadsEnabled,
	})
}
