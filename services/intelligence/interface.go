// File: services/intelligence/interface.go
package ai

import (
	"context"
	"time"

	"schedulo/models"
	"schedulo/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxModelRequestsPerMinute = 20

// Service is the language boundary of the booking agent: turning an utterance
// into intent/entity candidates, and turning a conversation snapshot into a
// user-facing reply. Both operations always produce a usable result; model
// failures are absorbed by rule-based and template fallbacks.
type Service interface {
	ExtractIntent(ctx context.Context, message string) models.Extraction
	GenerateResponse(ctx context.Context, history []models.ChatMessage, rc models.RenderContext) string
}

// DefaultService uses Gemini when a key is configured and the request budget
// allows, and deterministic rules otherwise.
type DefaultService struct {
	gemini  *GeminiClient
	limiter *rate.Limiter
}

func NewDefaultService(geminiAPIKey string) *DefaultService {
	svc := &DefaultService{
		limiter: rate.NewLimiter(rate.Every(time.Minute/maxModelRequestsPerMinute), maxModelRequestsPerMinute),
	}
	if geminiAPIKey != "" {
		svc.gemini = NewGeminiClient(geminiAPIKey)
		utils.GetLogger().Info("Gemini API initialized")
	} else {
		utils.GetLogger().Warn("No Gemini API key configured, using rule-based extraction only")
	}
	return svc
}

// modelAllowed reports whether a model call may be made right now. A denied
// call is not queued; the caller falls back to rules instead of waiting.
func (s *DefaultService) modelAllowed() bool {
	if s.gemini == nil {
		return false
	}
	if !s.limiter.Allow() {
		utils.GetLogger().Warn("Model rate limit reached, using rule-based path",
			zap.Int("maxPerMinute", maxModelRequestsPerMinute))
		return false
	}
	return true
}
