package middleware

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	flashLocalsKey  = "flash_store"
	flashSessionKey = "flashes"
)

// Flash categories used by the templates
const (
	FlashSuccess = "success"
	FlashError   = "danger"
	FlashInfo    = "info"
)

// FlashMessage is a one-shot message shown on the next rendered page
type FlashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// FlashConfig configures the session cookie that carries flash messages
type FlashConfig struct {
	CookieName   string
	CookieSecure bool
}

// NewSessionStore creates the cookie-backed session store used for flashes
func NewSessionStore(config FlashConfig) *session.Store {
	if config.CookieName == "" {
		config.CookieName = "portal_session"
	}
	return session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:" + config.CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   config.CookieSecure,
		CookieSameSite: "Lax",
	})
}

// Flashes makes the session store available to SetFlash and PopFlashes
func Flashes(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(flashLocalsKey, store)
		return c.Next()
	}
}

// SetFlash queues a message for the next page render
func SetFlash(c *fiber.Ctx, category, message string) {
	sess := flashSession(c)
	if sess == nil {
		return
	}

	messages := decodeFlashes(sess.Get(flashSessionKey))
	messages = append(messages, FlashMessage{Category: category, Message: message})

	raw, err := json.Marshal(messages)
	if err != nil {
		return
	}
	sess.Set(flashSessionKey, string(raw))
	if err := sess.Save(); err != nil {
		log.Errorf("Failed to save flash message: %v", err)
	}
}

// PopFlashes returns and clears the queued messages
func PopFlashes(c *fiber.Ctx) []FlashMessage {
	sess := flashSession(c)
	if sess == nil {
		return nil
	}

	messages := decodeFlashes(sess.Get(flashSessionKey))
	if len(messages) == 0 {
		return nil
	}

	sess.Delete(flashSessionKey)
	if err := sess.Save(); err != nil {
		log.Errorf("Failed to clear flash messages: %v", err)
	}
	return messages
}

func flashSession(c *fiber.Ctx) *session.Session {
	store, ok := c.Locals(flashLocalsKey).(*session.Store)
	if !ok || store == nil {
		return nil
	}
	sess, err := store.Get(c)
	if err != nil {
		log.Errorf("Failed to load session: %v", err)
		return nil
	}
	return sess
}

func decodeFlashes(v interface{}) []FlashMessage {
	raw, ok := v.(string)
	if !ok || raw == "" {
		return nil
	}
	var messages []FlashMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil
	}
	return messages
}
