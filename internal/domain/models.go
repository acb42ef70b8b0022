package domain

import (
	"encoding/base64"
	"encoding/json"
)

// DefaultMimeType is assumed when a caller declares no image type.
const DefaultMimeType = "image/jpeg"

// ExtractionRequest carries one passport image for a single provider call.
// Exactly one of Data or EncodedData is set.
type ExtractionRequest struct {
	Data        []byte
	EncodedData string
	MimeType    string
}

// NewImageRequest builds a request from raw image bytes.
func NewImageRequest(data []byte, mimeType string) *ExtractionRequest {
	return &ExtractionRequest{Data: data, MimeType: orDefaultMime(mimeType)}
}

// NewEncodedRequest builds a request from an already base64-encoded image.
func NewEncodedRequest(encoded, mimeType string) *ExtractionRequest {
	return &ExtractionRequest{EncodedData: encoded, MimeType: orDefaultMime(mimeType)}
}

// Base64 returns the image as standard base64. A pre-encoded payload is
// returned untouched.
func (r *ExtractionRequest) Base64() string {
	if r.EncodedData != "" {
		return r.EncodedData
	}
	return base64.StdEncoding.EncodeToString(r.Data)
}

// DataURI returns the image as a data:<mime>;base64,<data> URI.
func (r *ExtractionRequest) DataURI() string {
	return "data:" + r.MimeType + ";base64," + r.Base64()
}

func orDefaultMime(mimeType string) string {
	if mimeType == "" {
		return DefaultMimeType
	}
	return mimeType
}

// ResultKind tags which contract an ExtractionResult satisfies.
type ResultKind string

const (
	ResultRawText ResultKind = "raw_text"
	ResultParsed  ResultKind = "parsed"
)

// ExtractionResult is the outcome of one extraction. Text always holds the
// cleaned model output; Fields is set only for ResultParsed and is a JSON object.
type ExtractionResult struct {
	Kind   ResultKind
	Text   string
	Fields json.RawMessage
	Model  string
}
