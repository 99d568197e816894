package university

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/model"
	"github.com/sahilchouksey/uni-portal/services/catalog"
	"github.com/sahilchouksey/uni-portal/services/storage"
	"github.com/sahilchouksey/uni-portal/utils/middleware"
	"github.com/sahilchouksey/uni-portal/utils/render"
	"github.com/sahilchouksey/uni-portal/utils/response"
	"github.com/sahilchouksey/uni-portal/utils/validation"
	"github.com/valyala/fasthttp"
)

// UniversityHandler handles university-related requests
type UniversityHandler struct {
	catalog   *catalog.Service
	pictures  storage.PictureStore
	validator *validation.Validator
}

// NewUniversityHandler creates a new university handler; pictures may be nil
func NewUniversityHandler(catalogService *catalog.Service, pictures storage.PictureStore) *UniversityHandler {
	return &UniversityHandler{
		catalog:   catalogService,
		pictures:  pictures,
		validator: validation.NewValidator(),
	}
}

// UniversityForm is the admin add-university form
type UniversityForm struct {
	Name       string `form:"name" validate:"required,max=255" label:"Name"`
	Location   string `form:"location" validate:"max=255" label:"Location"`
	Ranking    string `form:"ranking" validate:"omitempty,number" label:"Ranking"`
	PictureURL string `form:"picture_url" validate:"max=512" label:"Picture URL"`
}

// ListUniversities handles GET /universities
func (h *UniversityHandler) ListUniversities(c *fiber.Ctx) error {
	universities, err := h.catalog.ListUniversities(c.UserContext())
	if err != nil {
		return err
	}

	return render.Page(c, fiber.StatusOK, "uni", "Universities", fiber.Map{
		"Universities": universities,
	})
}

// APIListUniversities handles GET /api/v1/universities
func (h *UniversityHandler) APIListUniversities(c *fiber.Ctx) error {
	universities, err := h.catalog.ListUniversities(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, universities)
}

// AddUniversity handles POST /add_university
func (h *UniversityHandler) AddUniversity(c *fiber.Ctx) error {
	var form UniversityForm
	if err := c.BodyParser(&form); err != nil {
		return render.Redirect(c, "/admin", middleware.FlashError, "Invalid form submission")
	}
	form.Name = validation.SanitizeString(form.Name)
	form.Location = validation.SanitizeString(form.Location)
	form.Ranking = validation.SanitizeString(form.Ranking)
	form.PictureURL = validation.SanitizeString(form.PictureURL)

	if err := h.validator.ValidateStruct(form); err != nil {
		return render.Redirect(c, "/admin", middleware.FlashError, validation.Messages(err)[0])
	}

	university := model.University{
		Name:       form.Name,
		Location:   form.Location,
		PictureURL: form.PictureURL,
	}
	if form.Ranking != "" {
		ranking, err := strconv.Atoi(form.Ranking)
		if err != nil {
			return render.Redirect(c, "/admin", middleware.FlashError, "Ranking must be a number")
		}
		university.Ranking = ranking
	}

	pictureURL, problem := h.uploadPicture(c)
	if problem != "" {
		return render.Redirect(c, "/admin", middleware.FlashError, problem)
	}
	if pictureURL != "" {
		university.PictureURL = pictureURL
	}

	if err := h.catalog.AddUniversity(c.UserContext(), &university); err != nil {
		return err
	}

	middleware.RecordAudit(c, university.ID, university)
	return render.Redirect(c, "/admin", middleware.FlashSuccess, "University added successfully.")
}

// uploadPicture stores the optional multipart "picture" file. It returns the
// public URL, or a message for the admin when the upload cannot be used.
func (h *UniversityHandler) uploadPicture(c *fiber.Ctx) (string, string) {
	file, err := c.FormFile("picture")
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return "", ""
		}
		return "", "Could not read the uploaded picture."
	}
	if file.Size == 0 {
		return "", ""
	}
	if h.pictures == nil {
		return "", "Picture uploads are not configured."
	}

	src, err := file.Open()
	if err != nil {
		return "", "Could not read the uploaded picture."
	}
	defer src.Close()

	url, err := h.pictures.UploadPicture(c.UserContext(), file.Filename, src)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return "", "Picture must be a jpg, png, gif or webp image."
		}
		log.Errorf("Picture upload failed: %v", err)
		return "", "Picture upload failed. Please try again."
	}
	return url, ""
}
