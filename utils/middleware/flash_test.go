package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashes_SurviveOneRedirect(t *testing.T) {
	app := fiber.New()
	app.Use(Flashes(NewSessionStore(FlashConfig{})))
	app.Get("/set", func(c *fiber.Ctx) error {
		SetFlash(c, FlashSuccess, "Saved.")
		return c.Redirect("/show", fiber.StatusFound)
	})
	app.Get("/show", func(c *fiber.Ctx) error {
		var out []string
		for _, f := range PopFlashes(c) {
			out = append(out, f.Category+":"+f.Message)
		}
		return c.SendString(strings.Join(out, ","))
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/set", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	var session *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "portal_session" {
			session = cookie
		}
	}
	require.NotNil(t, session)

	show := func() string {
		req := httptest.NewRequest(fiber.MethodGet, "/show", nil)
		req.AddCookie(&http.Cookie{Name: session.Name, Value: session.Value})
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	assert.Equal(t, "success:Saved.", show())
	assert.Empty(t, show())
}

func TestFlashes_WithoutStoreIsNoop(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		SetFlash(c, FlashError, "ignored")
		assert.Nil(t, PopFlashes(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestCSRF_Disabled(t *testing.T) {
	app := fiber.New()
	app.Use(CSRF(CSRFConfig{Enabled: false}))
	app.Post("/", func(c *fiber.Ctx) error {
		assert.Empty(t, CSRFToken(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
