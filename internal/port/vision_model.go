package port

import (
	"context"

	"passportx/internal/domain"
)

// VisionModel abstracts a hosted vision-capable LLM that reads a passport image
// and answers with the model's raw reply text.
type VisionModel interface {
	Extract(ctx context.Context, req *domain.ExtractionRequest) (string, error)
	// Model returns the model identifier requests are sent to.
	Model() string
}
