package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jjss-seva/registration-service/internal/services"
	"github.com/jjss-seva/registration-service/internal/utils"
)

// RegistrationHandler serves the public submission endpoints.
type RegistrationHandler struct {
	BaseHandler
	service services.RegistrationService
}

func NewRegistrationHandler(service services.RegistrationService, logger utils.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Submit accepts the multipart registration form. Fields bind from the
// form parts, the photo arrives as the "photo" file part.
func (h *RegistrationHandler) Submit(c *gin.Context) {
	h.LogRequest(c, "Submitting registration")

	var req services.RegistrationCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid form data",
			Details: err.Error(),
		})
		return
	}

	photo, err := h.readPhoto(c)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), &req, photo)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetReceipt returns the confirmation payload for one application id.
func (h *RegistrationHandler) GetReceipt(c *gin.Context) {
	applicationID := c.Param("application_id")
	h.LogRequest(c, "Getting registration receipt", "application_id", applicationID)

	receipt, err := h.service.GetReceipt(c.Request.Context(), applicationID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// BuildLocationLink turns device coordinates into a shareable map link.
func (h *RegistrationHandler) BuildLocationLink(c *gin.Context) {
	h.LogRequest(c, "Building location link")

	var req services.LocationLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.BuildLocationLink(&req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// readPhoto pulls the photo file part. Reads are capped one byte past
// the limit so oversized uploads fail without buffering the whole file.
func (h *RegistrationHandler) readPhoto(c *gin.Context) (*services.PhotoUpload, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return nil, services.ErrPhotoRequired
	}
	if fileHeader.Size > services.MaxPhotoSize {
		return nil, services.ErrPhotoTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, services.ErrPhotoRequired
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, services.MaxPhotoSize+1))
	if err != nil {
		return nil, services.ErrPhotoRequired
	}

	return &services.PhotoUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Content:  content,
	}, nil
}
