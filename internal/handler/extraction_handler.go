package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"passportx/internal/ingest"
	"passportx/internal/service"
)

// ExtractionHandler handles the passport extraction endpoints.
type ExtractionHandler struct {
	extractionService service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// WebExtract handles POST /web-extract
// @Summary Extract passport fields for the bundled UI
// @Description Upload a passport image; the cleaned model output is returned as a string
// @Tags extraction
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Passport image"
// @Success 200 {object} WebExtractResponse "Cleaned model output"
// @Failure 400 {object} ErrorBody "No image uploaded"
// @Failure 500 {object} ErrorBody "Extraction failed"
// @Router /web-extract [post]
func (h *ExtractionHandler) WebExtract(c *gin.Context) {
	img, err := ingest.FromMultipart(c.Request, ingest.ImageField)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.extractionService.ExtractText(c.Request.Context(), img)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, WebExtractResponse{ExtractedData: result.Text})
}

// APIExtract handles POST /api/v1/extract
// @Summary Extract passport fields
// @Description Upload a passport image as multipart or base64 JSON; returns the parsed fields
// @Tags extraction
// @Accept multipart/form-data,json
// @Produce json
// @Param image formData file false "Passport image"
// @Success 200 {object} APIExtractResponse "Parsed passport fields"
// @Failure 400 {object} ErrorBody "Missing image input"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Failure 502 {object} ParseFailureBody "Model returned invalid JSON"
// @Failure 500 {object} ErrorBody "Extraction failed"
// @Security BearerAuth
// @Router /api/v1/extract [post]
func (h *ExtractionHandler) APIExtract(c *gin.Context) {
	img, err := ingest.FromRequest(c.Request, ingest.ImageField)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.extractionService.ExtractFields(c.Request.Context(), img)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIExtractResponse{
		Status: "success",
		Data:   result.Fields,
	})
}
