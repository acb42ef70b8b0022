// Package ingest turns inbound HTTP requests into extraction requests.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"passportx/internal/domain"
)

// ImageField is the multipart field carrying the passport image.
const ImageField = "image"

// jsonPayload is the body accepted by the JSON path.
type jsonPayload struct {
	ImageBase64 *string `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
}

// FromMultipart reads the file uploaded under field. The declared MIME type is
// kept, defaulting to image/jpeg when the part declares none.
func FromMultipart(r *http.Request, field string) (*domain.ExtractionRequest, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, domain.ErrNoImageUploaded
		}
		return nil, domain.NewValidationError("invalid multipart body", err)
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" {
		return nil, domain.ErrNoImageUploaded
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded image: %w", err)
	}

	return domain.NewImageRequest(data, declaredMimeType(header.Header.Get("Content-Type"))), nil
}

// FromJSON reads a {"image_base64": "...", "mime_type": "..."} body. The
// base64 string is forwarded without decoding.
func FromJSON(r *http.Request) (*domain.ExtractionRequest, error) {
	var payload jsonPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, domain.NewValidationError("invalid JSON body", err)
	}
	if payload.ImageBase64 == nil || *payload.ImageBase64 == "" {
		return nil, domain.ErrNoImageInput
	}
	return domain.NewEncodedRequest(*payload.ImageBase64, payload.MimeType), nil
}

// FromRequest accepts either a multipart upload under field or a JSON base64
// payload. A multipart file takes precedence.
func FromRequest(r *http.Request, field string) (*domain.ExtractionRequest, error) {
	switch {
	case isMultipart(r):
		img, err := FromMultipart(r, field)
		if errors.Is(err, domain.ErrNoImageUploaded) {
			return nil, domain.ErrNoImageInput
		}
		return img, err
	case isJSON(r):
		return FromJSON(r)
	default:
		return nil, domain.ErrNoImageInput
	}
}

func declaredMimeType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return domain.DefaultMimeType
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}
	return mediaType
}

func requestMediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func isMultipart(r *http.Request) bool {
	return requestMediaType(r) == "multipart/form-data"
}

func isJSON(r *http.Request) bool {
	mt := requestMediaType(r)
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
