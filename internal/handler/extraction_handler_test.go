package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"passportx/internal/domain"
	"passportx/internal/handler"
	"passportx/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func imageUploadRequest(t *testing.T, path, field string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "passport.jpg")
	require.NoError(t, err)
	_, _ = part.Write(data)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func runHandler(req *http.Request, h gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	h(c)
	return w
}

func TestExtractionHandler_WebExtract_Success(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(mockSvc)

	mockSvc.On("ExtractText", mock.Anything, mock.MatchedBy(func(req *domain.ExtractionRequest) bool {
		// CreateFormFile declares application/octet-stream, which is kept.
		return string(req.Data) == "jpeg-bytes" && req.MimeType == "application/octet-stream"
	})).Return(&domain.ExtractionResult{Kind: domain.ResultRawText, Text: `{"first_name":"JOHN"}`}, nil)

	w := runHandler(imageUploadRequest(t, "/web-extract", "image", []byte("jpeg-bytes")), h.WebExtract)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.WebExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, `{"first_name":"JOHN"}`, resp.ExtractedData)
	mockSvc.AssertExpectations(t)
}

func TestExtractionHandler_WebExtract_MalformedOutputIsForwarded(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(mockSvc)

	mockSvc.On("ExtractText", mock.Anything, mock.Anything).
		Return(&domain.ExtractionResult{Kind: domain.ResultRawText, Text: `{first_name: "A"`}, nil)

	w := runHandler(imageUploadRequest(t, "/web-extract", "image", []byte("x")), h.WebExtract)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.WebExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, `{first_name: "A"`, resp.ExtractedData)
}

func TestExtractionHandler_WebExtract_MissingImage(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(mockSvc)

	w := runHandler(imageUploadRequest(t, "/web-extract", "photo", []byte("x")), h.WebExtract)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	mockSvc.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything)
}

func TestExtractionHandler_WebExtract_ErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"configuration", domain.ErrProviderKeyMissing, http.StatusInternalServerError, "OpenRouter API key is missing."},
		{"upstream", &domain.UpstreamError{Provider: "openrouter", StatusCode: 503, Body: "down"}, http.StatusInternalServerError, "openrouter API error (status 503): down"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, "connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockExtractionService)
			h := handler.NewExtractionHandler(mockSvc)
			mockSvc.On("ExtractText", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := runHandler(imageUploadRequest(t, "/web-extract", "image", []byte("x")), h.WebExtract)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp handler.ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}

func TestExtractionHandler_APIExtract_Success(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(mockSvc)

	mockSvc.On("ExtractFields", mock.Anything, mock.MatchedBy(func(req *domain.ExtractionRequest) bool {
		return req.EncodedData == "QUJD" && req.MimeType == "image/png"
	})).Return(&domain.ExtractionResult{
		Kind:   domain.ResultParsed,
		Fields: json.RawMessage(`{"first_name":"JOHN","passport_number":"X1234567"}`),
	}, nil)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/extract",
		strings.NewReader(`{"image_base64":"QUJD","mime_type":"image/png"}`))
	req.Header.Set("Content-Type", "application/json")

	w := runHandler(req, h.APIExtract)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status string            `json:"status"`
		Data   map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "JOHN", resp.Data["first_name"])
	assert.Equal(t, "X1234567", resp.Data["passport_number"])
}

func TestExtractionHandler_APIExtract_MissingInput(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(mockSvc)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader(`{"mime_type":"image/png"}`))
	req.Header.Set("Content-Type", "application/json")

	w := runHandler(req, h.APIExtract)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Must provide 'image' file or JSON with 'image_base64'", resp.Error)
	mockSvc.AssertNotCalled(t, "ExtractFields", mock.Anything, mock.Anything)
}

func TestExtractionHandler_APIExtract_InvalidModelJSON(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(mockSvc)

	raw := `{first_name: "A"`
	mockSvc.On("ExtractFields", mock.Anything, mock.Anything).
		Return(nil, &domain.OutputParseError{Raw: raw, Err: errors.New("invalid character 'f'")})

	w := runHandler(imageUploadRequest(t, "/api/v1/extract", "image", []byte("x")), h.APIExtract)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp handler.ParseFailureBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LLM returned invalid JSON format", resp.Error)
	assert.Equal(t, raw, resp.RawOutput)
}

func TestExtractionHandler_APIExtract_UpstreamError(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(mockSvc)

	mockSvc.On("ExtractFields", mock.Anything, mock.Anything).
		Return(nil, &domain.UpstreamError{Provider: "openrouter", StatusCode: 402, Body: "insufficient credits"})

	w := runHandler(imageUploadRequest(t, "/api/v1/extract", "image", []byte("x")), h.APIExtract)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "insufficient credits")
	assert.NotContains(t, resp, "raw_output")
}
