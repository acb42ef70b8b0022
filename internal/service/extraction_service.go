package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"passportx/internal/domain"
	"passportx/internal/extractor"
	"passportx/internal/port"
)

// ExtractionService defines the passport extraction contract. Each call makes
// exactly one vision-model request.
type ExtractionService interface {
	// ExtractText returns the cleaned model output as text, valid JSON or not.
	ExtractText(ctx context.Context, req *domain.ExtractionRequest) (*domain.ExtractionResult, error)
	// ExtractFields returns the cleaned model output parsed as a JSON object,
	// or a *domain.OutputParseError carrying the text verbatim.
	ExtractFields(ctx context.Context, req *domain.ExtractionRequest) (*domain.ExtractionResult, error)
}

type extractionService struct {
	model port.VisionModel
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(model port.VisionModel) ExtractionService {
	return &extractionService{model: model}
}

func (s *extractionService) ExtractText(ctx context.Context, req *domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	text, err := s.extract(ctx, req)
	if err != nil {
		return nil, err
	}
	return &domain.ExtractionResult{
		Kind:  domain.ResultRawText,
		Text:  text,
		Model: s.model.Model(),
	}, nil
}

func (s *extractionService) ExtractFields(ctx context.Context, req *domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	text, err := s.extract(ctx, req)
	if err != nil {
		return nil, err
	}

	// Decoding into a map rejects arrays and scalars; the raw bytes are kept
	// so the model's key order survives.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, &domain.OutputParseError{Raw: text, Err: err}
	}
	if fields == nil {
		return nil, &domain.OutputParseError{Raw: text, Err: fmt.Errorf("expected JSON object, got null")}
	}

	return &domain.ExtractionResult{
		Kind:   domain.ResultParsed,
		Text:   text,
		Fields: json.RawMessage(text),
		Model:  s.model.Model(),
	}, nil
}

func (s *extractionService) extract(ctx context.Context, req *domain.ExtractionRequest) (string, error) {
	start := time.Now()
	raw, err := s.model.Extract(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "vision model call failed",
			"model", s.model.Model(), "mime_type", req.MimeType, "latency", time.Since(start), "err", err)
		return "", err
	}
	slog.DebugContext(ctx, "vision model call succeeded",
		"model", s.model.Model(), "mime_type", req.MimeType, "latency", time.Since(start), "chars", len(raw))
	return extractor.Sanitize(raw), nil
}
