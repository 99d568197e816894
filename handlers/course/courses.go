package course

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/model"
	"github.com/sahilchouksey/uni-portal/utils/middleware"
	"github.com/sahilchouksey/uni-portal/utils/render"
	"github.com/sahilchouksey/uni-portal/utils/response"
	"github.com/sahilchouksey/uni-portal/utils/validation"
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	store     database.Storage
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(store database.Storage) *CourseHandler {
	return &CourseHandler{
		store:     store,
		validator: validation.NewValidator(),
	}
}

// CourseForm is the admin add-course form
type CourseForm struct {
	UniversityID      string `form:"university_id" validate:"required,number" label:"University"`
	CourseName        string `form:"course_name" validate:"required,max=255" label:"Course name"`
	DurationSemesters string `form:"duration_semesters" validate:"omitempty,number" label:"Duration"`
	Description       string `form:"description" label:"Description"`
}

// parseID reads a positive numeric route parameter; anything else is a 404
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrNotFound
	}
	return uint(id), nil
}

// ListByUniversity handles GET /courses/:university_id.
// A university without courses renders an empty list.
func (h *CourseHandler) ListByUniversity(c *fiber.Ctx) error {
	universityID, err := parseID(c, "university_id")
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	courses, err := h.store.ListCoursesByUniversity(ctx, universityID)
	if err != nil {
		return err
	}

	university, err := h.store.GetUniversity(ctx, universityID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}

	events := []model.Event{}
	if university != nil {
		if events, err = h.store.ListEventsByUniversity(ctx, universityID); err != nil {
			return err
		}
	}

	return render.Page(c, fiber.StatusOK, "courses", "Courses", fiber.Map{
		"University": university,
		"Courses":    courses,
		"Events":     events,
	})
}

// APIListByUniversity handles GET /api/v1/universities/:id/courses
func (h *CourseHandler) APIListByUniversity(c *fiber.Ctx) error {
	universityID, err := parseID(c, "id")
	if err != nil {
		return response.NotFound(c, "University not found")
	}

	ctx := c.UserContext()
	if _, err := h.store.GetUniversity(ctx, universityID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "University not found")
		}
		return err
	}

	courses, err := h.store.ListCoursesByUniversity(ctx, universityID)
	if err != nil {
		return err
	}
	return response.Success(c, courses)
}

// AddCourse handles POST /add_course
func (h *CourseHandler) AddCourse(c *fiber.Ctx) error {
	var form CourseForm
	if err := c.BodyParser(&form); err != nil {
		return render.Redirect(c, "/admin", middleware.FlashError, "Invalid form submission")
	}
	form.UniversityID = validation.SanitizeString(form.UniversityID)
	form.CourseName = validation.SanitizeString(form.CourseName)
	form.DurationSemesters = validation.SanitizeString(form.DurationSemesters)
	form.Description = validation.SanitizeString(form.Description)

	if err := h.validator.ValidateStruct(form); err != nil {
		return render.Redirect(c, "/admin", middleware.FlashError, validation.Messages(err)[0])
	}

	universityID, err := strconv.ParseUint(form.UniversityID, 10, 32)
	if err != nil {
		return render.Redirect(c, "/admin", middleware.FlashError, "University must be a number")
	}

	course := model.Course{
		Name:         form.CourseName,
		UniversityID: uint(universityID),
		Description:  form.Description,
	}
	if form.DurationSemesters != "" {
		duration, err := strconv.Atoi(form.DurationSemesters)
		if err != nil {
			return render.Redirect(c, "/admin", middleware.FlashError, "Duration must be a number")
		}
		course.DurationSemesters = duration
	}

	ctx := c.UserContext()
	if _, err := h.store.GetUniversity(ctx, course.UniversityID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return render.Redirect(c, "/admin", middleware.FlashError, "Selected university does not exist.")
		}
		return err
	}

	if err := h.store.CreateCourse(ctx, &course); err != nil {
		return err
	}

	middleware.RecordAudit(c, course.ID, course)
	return render.Redirect(c, "/admin", middleware.FlashSuccess, "Course added successfully.")
}
