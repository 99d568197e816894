package middleware

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/model"
	"gorm.io/datatypes"
)

const (
	auditResourceIDKey = "audit_resource_id"
	auditPayloadKey    = "audit_payload"
)

// RecordAudit marks the current admin request as a successful mutation.
// AdminAuditLog writes the entry after the handler returns.
func RecordAudit(c *fiber.Ctx, resourceID uint, payload interface{}) {
	c.Locals(auditResourceIDKey, resourceID)
	c.Locals(auditPayloadKey, payload)
}

// AdminAuditLog creates an audit log entry for admin actions recorded with RecordAudit
func AdminAuditLog(store database.Storage, action, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Execute the actual handler
		err := c.Next()
		if err != nil {
			return err
		}

		resourceID, ok := c.Locals(auditResourceIDKey).(uint)
		if !ok {
			return nil
		}

		payload, jsonErr := json.Marshal(c.Locals(auditPayloadKey))
		if jsonErr != nil {
			payload = []byte("null")
		}

		adminName, _ := GetUsername(c)
		auditLog := model.AdminAuditLog{
			AdminName:   adminName,
			Action:      action,
			Resource:    resource,
			ResourceID:  resourceID,
			Payload:     datatypes.JSON(payload),
			IPAddress:   c.IP(),
			UserAgent:   c.Get(fiber.HeaderUserAgent),
			Description: c.Method() + " " + c.Path(),
		}

		if err := store.CreateAuditLog(c.UserContext(), &auditLog); err != nil {
			log.Errorf("Failed to write audit log for %s: %v", action, err)
		}
		return nil
	}
}
