package application

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/model"
	"github.com/sahilchouksey/uni-portal/services/catalog"
	"github.com/sahilchouksey/uni-portal/services/events"
	"github.com/sahilchouksey/uni-portal/utils/metrics"
	"github.com/sahilchouksey/uni-portal/utils/middleware"
	"github.com/sahilchouksey/uni-portal/utils/render"
	"github.com/sahilchouksey/uni-portal/utils/validation"
)

const msgApplicationAdded = "Application added successfully."

// ApplicationHandler handles the student application form
type ApplicationHandler struct {
	store     database.Storage
	catalog   *catalog.Service
	publisher events.Publisher
	validator *validation.Validator
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(store database.Storage, catalogService *catalog.Service, publisher events.Publisher) *ApplicationHandler {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &ApplicationHandler{
		store:     store,
		catalog:   catalogService,
		publisher: publisher,
		validator: validation.NewValidator(),
	}
}

// ApplyForm is the application submission form
type ApplyForm struct {
	UniversityID string `form:"university_id" validate:"required,number" label:"University"`
	CourseID     string `form:"course_id" validate:"required,number" label:"Course"`
	Intake       string `form:"intake" validate:"required,max=50" label:"Intake"`
	Year         string `form:"year" validate:"required,number" label:"Year"`
}

// ShowApply handles GET /apply
func (h *ApplicationHandler) ShowApply(c *fiber.Ctx) error {
	return h.renderApply(c, fiber.StatusOK, ApplyForm{}, nil)
}

// Apply handles POST /apply
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	var form ApplyForm
	if err := c.BodyParser(&form); err != nil {
		return h.renderApply(c, fiber.StatusUnprocessableEntity, form, []string{"Invalid form submission"})
	}
	form.UniversityID = validation.SanitizeString(form.UniversityID)
	form.CourseID = validation.SanitizeString(form.CourseID)
	form.Intake = validation.SanitizeString(form.Intake)
	form.Year = validation.SanitizeString(form.Year)

	if err := h.validator.ValidateStruct(form); err != nil {
		return h.renderApply(c, fiber.StatusUnprocessableEntity, form, validation.Messages(err))
	}

	universityID, errU := strconv.ParseUint(form.UniversityID, 10, 32)
	courseID, errC := strconv.ParseUint(form.CourseID, 10, 32)
	year, errY := strconv.Atoi(form.Year)
	if errU != nil || errC != nil || errY != nil {
		return h.renderApply(c, fiber.StatusUnprocessableEntity, form, []string{"University, course and year must be numbers"})
	}

	ctx := c.UserContext()
	if problem, err := h.checkOffering(c, uint(universityID), uint(courseID)); err != nil {
		return err
	} else if problem != "" {
		return h.renderApply(c, fiber.StatusUnprocessableEntity, form, []string{problem})
	}

	application := model.Application{
		UniversityID: uint(universityID),
		CourseID:     uint(courseID),
		Status:       model.StatusPending,
		Intake:       form.Intake,
		Year:         year,
	}
	if userID, ok := middleware.GetUserID(c); ok && userID != 0 {
		application.UserID = &userID
	}

	if err := h.store.CreateApplication(ctx, &application); err != nil {
		return err
	}

	metrics.ApplicationsSubmitted.Inc()
	if err := h.publisher.Publish(ctx, events.SubjectApplicationSubmitted, events.ApplicationSubmitted{
		ApplicationID: application.ID,
		UserID:        application.UserID,
		UniversityID:  application.UniversityID,
		CourseID:      application.CourseID,
		Intake:        application.Intake,
		Year:          application.Year,
		SubmittedAt:   application.CreatedAt,
	}); err != nil {
		log.Warnf("Failed to publish application %d: %v", application.ID, err)
	}

	return render.Redirect(c, "/main", middleware.FlashSuccess, msgApplicationAdded)
}

// checkOffering verifies the university exists and offers the course
func (h *ApplicationHandler) checkOffering(c *fiber.Ctx, universityID, courseID uint) (string, error) {
	ctx := c.UserContext()

	if _, err := h.store.GetUniversity(ctx, universityID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "Selected university does not exist.", nil
		}
		return "", err
	}

	course, err := h.store.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "Selected course does not exist.", nil
		}
		return "", err
	}
	if course.UniversityID != universityID {
		return "Selected course is not offered by that university.", nil
	}
	return "", nil
}

func (h *ApplicationHandler) renderApply(c *fiber.Ctx, status int, form ApplyForm, errs []string) error {
	universities, err := h.catalog.ListUniversities(c.UserContext())
	if err != nil {
		return err
	}
	return render.Page(c, status, "apply", "Apply", fiber.Map{
		"Form":         form,
		"Errors":       errs,
		"Universities": universities,
	})
}
