// Package gateway talks to the Gemini API for resume analysis, question
// generation, and open-answer grading. Without an API key it degrades
// to a canned provider so the rest of the system stays usable.
package gateway

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/skillcheck-ai/skillcheck-api/internal/ingestion"
	"github.com/skillcheck-ai/skillcheck-api/internal/quiz"
)

// Provider is the full AI surface the application depends on.
type Provider interface {
	ingestion.Extractor
	quiz.Gateway
}

// New returns the Gemini-backed provider when GEMINI_API_KEY is set and
// the canned fallback otherwise.
func New(ctx context.Context, model string) (Provider, error) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		logrus.Warn("GEMINI_API_KEY not set, using canned AI provider")
		return NewFallback(), nil
	}
	return NewGemini(ctx, model)
}
