package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/utils/render"
	"github.com/sahilchouksey/uni-portal/utils/response"
	"github.com/sahilchouksey/uni-portal/views"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:      "uni-portal",
			Views:        views.NewEngine(),
			ErrorHandler: ErrorHandler,
			BodyLimit:    8 * 1024 * 1024, // picture uploads
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}),
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	log.Info("Starting API Server")
	log.Infof("Listening on %s", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

// ErrorHandler renders errors as the JSON envelope under /api and as the error page elsewhere
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong. Please try again later."

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
		if code == fiber.StatusNotFound {
			message = "The page you are looking for does not exist."
		}
	} else {
		log.Errorf("%s %s failed: %v", c.Method(), c.Path(), err)
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		return response.FromStatus(c, code, message)
	}

	if renderErr := render.Page(c, code, "error", "Error", fiber.Map{
		"Status":  code,
		"Message": message,
	}); renderErr != nil {
		log.Errorf("Failed to render error page: %v", renderErr)
		return c.Status(code).SendString(message)
	}
	return nil
}
