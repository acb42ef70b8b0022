package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"passportx/internal/domain"
	"passportx/internal/middleware"
)

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ParseFailureBody is returned when the model output is not valid JSON.
// RawOutput is the cleaned model text, verbatim.
type ParseFailureBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RawOutput string `json:"raw_output"`
}

// WebExtractResponse is the UI endpoint's success body.
type WebExtractResponse struct {
	ExtractedData string `json:"extracted_data"`
}

// APIExtractResponse is the external API's success body.
type APIExtractResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorBody{Error: msg, Code: code})
}

// MapDomainError translates an error to an HTTP status, error code and message
// by its kind.
func MapDomainError(err error) (status int, code, msg string) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest, "INVALID_INPUT", err.Error()
	case domain.KindAuth:
		return http.StatusUnauthorized, "UNAUTHORIZED", domain.ErrUnauthorized.Message
	case domain.KindOutputParse:
		return http.StatusBadGateway, "INVALID_MODEL_OUTPUT", "LLM returned invalid JSON format"
	case domain.KindConfiguration:
		return http.StatusInternalServerError, "CONFIGURATION_ERROR", err.Error()
	case domain.KindUpstream:
		return http.StatusInternalServerError, "UPSTREAM_ERROR", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", err.Error()
	}
}

// HandleError maps an error and sends the appropriate error response. Output
// parse failures carry the raw model text.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		slog.Error("request failed",
			"request_id", middleware.GetRequestID(c),
			"kind", domain.KindOf(err),
			"err", err,
		)
	}

	var parseErr *domain.OutputParseError
	if errors.As(err, &parseErr) {
		c.JSON(status, ParseFailureBody{Error: msg, Code: code, RawOutput: parseErr.Raw})
		return
	}
	RespondError(c, status, code, msg)
}
