package handler

import (
	"io"
	"mime/multipart"
	"strings"

	listingapp "github.com/carhive/backend/internal/application/listing"
	"github.com/carhive/backend/internal/domain/listing"
	"github.com/carhive/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CarHandler handles car listing HTTP requests
type CarHandler struct {
	BaseHandler
	carService *listingapp.CarService
}

// NewCarHandler creates a new car handler
func NewCarHandler(carService *listingapp.CarService) *CarHandler {
	return &CarHandler{
		carService: carService,
	}
}

// Create adds a car for the authenticated owner. The payload is
// multipart form data with title, description, optional tags, and
// optional image files under the images field.
func (h *CarHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Invalid multipart form")
		return
	}

	input := listingapp.CreateCarInput{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		Tags:        tagInputFromForm(form),
		Images:      imageUploads(form.File["images"]),
	}

	car, err := h.carService.Create(c.Request.Context(), ownerID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, car)
}

// List returns all cars of the owner, optionally narrowed by the
// search query parameter.
func (h *CarHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cars, err := h.carService.List(c.Request.Context(), ownerID, c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cars)
}

// Get returns one car of the owner
func (h *CarHandler) Get(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	carID, ok := h.carIDParam(c)
	if !ok {
		return
	}

	car, err := h.carService.Get(c.Request.Context(), ownerID, carID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, car)
}

// Update modifies one car of the owner. Absent form fields keep their
// stored values; new image files replace the whole image set.
func (h *CarHandler) Update(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	carID, ok := h.carIDParam(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Invalid multipart form")
		return
	}

	input := listingapp.UpdateCarInput{
		Title:       optionalFormValue(form, "title"),
		Description: optionalFormValue(form, "description"),
		Tags:        tagInputFromForm(form),
		Images:      imageUploads(form.File["images"]),
	}

	car, err := h.carService.Update(c.Request.Context(), ownerID, carID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, car)
}

// Delete removes one car of the owner
func (h *CarHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	carID, ok := h.carIDParam(c)
	if !ok {
		return
	}

	if err := h.carService.Delete(c.Request.Context(), ownerID, carID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers car routes on the given router group
func (h *CarHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cars := rg.Group("/cars")
	{
		cars.POST("", h.Create)
		cars.GET("", h.List)
		cars.GET("/:id", h.Get)
		cars.PUT("/:id", h.Update)
		cars.DELETE("/:id", h.Delete)
	}
}

// carIDParam parses the :id path parameter, responding with 400 on a
// malformed ID.
func (h *CarHandler) carIDParam(c *gin.Context) (uuid.UUID, bool) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.ValidationError(c, []dto.ValidationDetail{
			{Field: "id", Message: "Invalid UUID format"},
		})
		return uuid.Nil, false
	}
	return carID, true
}

// formValue returns the first value of a form field, or empty
func formValue(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// optionalFormValue distinguishes an absent field from an empty one
func optionalFormValue(form *multipart.Form, key string) *string {
	values := form.Value[key]
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

// tagInputFromForm maps the tags form field onto the normalization
// input. Repeated fields form a sequence, a single field stays text,
// and a missing field means the tags were not provided at all.
func tagInputFromForm(form *multipart.Form) listing.TagInput {
	values := form.Value["tags"]
	switch len(values) {
	case 0:
		return listing.AbsentTags()
	case 1:
		return listing.TextTags(values[0])
	default:
		elems := make([]any, len(values))
		for i, v := range values {
			elems[i] = v
		}
		return listing.SequenceTags(elems)
	}
}

// imageUploads converts multipart file headers into upload descriptors
// without reading file contents yet.
func imageUploads(files []*multipart.FileHeader) []listingapp.ImageUpload {
	if len(files) == 0 {
		return nil
	}
	uploads := make([]listingapp.ImageUpload, len(files))
	for i, fh := range files {
		uploads[i] = listingapp.ImageUpload{
			Filename:    fh.Filename,
			ContentType: strings.TrimSpace(fh.Header.Get("Content-Type")),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		}
	}
	return uploads
}
