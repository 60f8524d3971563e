// File: services/intelligence/extraction.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"schedulo/models"
	"schedulo/utils"

	"go.uber.org/zap"
)

var (
	jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)
	emailRe     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	purposePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:purpose|topic)\s+is\s+(.+)`),
		regexp.MustCompile(`(?:it's|its)\s+(?:about|for)\s+(.+)`),
		regexp.MustCompile(`(?:the\s+)?(?:purpose|topic):\s*(.+)`),
		regexp.MustCompile(`"(.+)"\s+is\s+the\s+(?:purpose|topic)`),
	}
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:meeting|call|session)\s+(?:about|regarding|on)\s+([^,.]+)`),
		regexp.MustCompile(`(?:schedule|book)\s+(?:a\s+)?(?:meeting|call)\s+(?:about|regarding|on)\s+([^,.]+)`),
		regexp.MustCompile(`discuss\s+([^,.]+)`),
		regexp.MustCompile(`talk\s+about\s+([^,.]+)`),
		regexp.MustCompile(`(?:have\s+a\s+)?(?:meeting|call)\s+(?:to\s+)?(?:discuss\s+)?([^,.]+)`),
	}
	quotedTitleRe = regexp.MustCompile(`"([^"]+)"`)
	spacesRe      = regexp.MustCompile(`\s+`)

	hoursRe      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:hours?|hrs?)`)
	glueHourRe   = regexp.MustCompile(`(\d+)hour`)
	minutesRe    = regexp.MustCompile(`(\d+)\s*(?:minutes?|mins?)`)
	anHourRe     = regexp.MustCompile(`an?\s+hour`)
	halfHourRe   = regexp.MustCompile(`half\s+(?:an\s+)?hour`)
	clockPhrases = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2}:\d{2}\s*(?:am|pm))`),
		regexp.MustCompile(`(\d{1,2}\s*(?:am|pm))`),
		regexp.MustCompile(`(\d{1,2})(?::\d{2})?\s*(?:o'?clock)?`),
	}
)

var datePhrases = []string{
	"today", "tomorrow", "next week", "this friday", "next friday",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var titleSkipWords = map[string]bool{
	"time": true, "hour": true, "minute": true, "pm": true, "am": true,
	"today": true, "tomorrow": true, "yes": true, "no": true, "ok": true, "okay": true,
}

var titleQuestionWords = map[string]bool{
	"what": true, "when": true, "where": true, "how": true, "why": true, "who": true, "which": true,
}

var simpleConfirmations = map[string]bool{
	"yes": true, "yep": true, "yeah": true, "confirm": true, "book it": true,
	"schedule it": true, "ok": true, "okay": true, "sure": true, "go ahead": true,
}

var simpleRejections = map[string]bool{
	"no": true, "nope": true, "cancel": true, "nevermind": true, "not now": true,
}

// ExtractIntent analyzes one utterance. Short confirmations and rejections
// never reach the model; everything else goes to Gemini when allowed, falling
// back to the deterministic extractor.
func (s *DefaultService) ExtractIntent(ctx context.Context, message string) models.Extraction {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if simpleConfirmations[normalized] {
		return models.Extraction{Intent: models.IntentConfirmBooking}
	}
	if simpleRejections[normalized] {
		return models.Extraction{Intent: models.IntentReject}
	}

	if s.modelAllowed() {
		extraction, err := s.geminiExtraction(ctx, message)
		if err == nil {
			return extraction
		}
		utils.GetLogger().Warn("Gemini extraction failed, falling back to rules", zap.Error(err))
	}

	return ruleBasedExtraction(message)
}

func (s *DefaultService) geminiExtraction(ctx context.Context, message string) (models.Extraction, error) {
	prompt := fmt.Sprintf(`Extract booking information from this message. Return valid JSON only.

Message: %q

Return JSON with:
{
  "intent": "book_appointment|check_availability|provide_info|confirm_booking",
  "entities": {
    "title": "meeting topic or null",
    "date": "date mentioned or null",
    "time": "time mentioned or null",
    "duration": "duration mentioned or null",
    "attendees": ["email addresses found or empty array"]
  }
}

Examples:
- "Book a meeting about AI" -> {"intent": "book_appointment", "entities": {"title": "AI"}}
- "tomorrow at 3pm" -> {"intent": "provide_info", "entities": {"date": "tomorrow", "time": "3pm"}}
- "1 hour" -> {"intent": "provide_info", "entities": {"duration": "1 hour"}}`, message)

	content, err := s.gemini.GenerateContent(ctx, prompt, 0.1, 300)
	if err != nil {
		return models.Extraction{}, err
	}

	block := jsonBlockRe.FindString(content)
	if block == "" {
		return models.Extraction{}, fmt.Errorf("no JSON object in model output")
	}

	var raw struct {
		Intent   string         `json:"intent"`
		Entities map[string]any `json:"entities"`
	}
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return models.Extraction{}, fmt.Errorf("parse model output: %w", err)
	}
	return cleanExtraction(raw.Intent, raw.Entities), nil
}

// cleanExtraction drops null-ish values and coerces the model's loose typing
// into the candidate struct. A title returned as a list is joined.
func cleanExtraction(intent string, entities map[string]any) models.Extraction {
	extraction := models.Extraction{Intent: intent}
	for key, value := range entities {
		switch key {
		case "title":
			if list, ok := value.([]any); ok {
				var parts []string
				for _, item := range list {
					if s := cleanString(item); s != "" {
						parts = append(parts, s)
					}
				}
				extraction.Entities.Title = strings.Join(parts, " ")
			} else {
				extraction.Entities.Title = cleanString(value)
			}
		case "date":
			extraction.Entities.Date = cleanString(value)
		case "time":
			extraction.Entities.Time = cleanString(value)
		case "duration":
			extraction.Entities.Duration = cleanString(value)
		case "attendees":
			if list, ok := value.([]any); ok {
				for _, item := range list {
					if s := cleanString(item); s != "" {
						extraction.Entities.Attendees = append(extraction.Entities.Attendees, s)
					}
				}
			} else if s := cleanString(value); s != "" {
				extraction.Entities.Attendees = []string{s}
			}
		}
	}
	return extraction
}

func cleanString(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" || s == "null" || s == "None" {
		return ""
	}
	return s
}

// ruleBasedExtraction is the deterministic path: regex and keyword matching
// good enough to keep the dialogue moving without a model.
func ruleBasedExtraction(message string) models.Extraction {
	var entities models.EntityCandidates

	if title := extractTitlePhrase(message); title != "" {
		entities.Title = title
	}
	if duration := extractDurationPhrase(message); duration != "" {
		entities.Duration = duration
	}
	if timePhrase := extractTimePhrase(message); timePhrase != "" {
		entities.Time = timePhrase
	}
	if date := extractDatePhrase(message); date != "" {
		entities.Date = date
	}
	if emails := emailRe.FindAllString(message, -1); len(emails) > 0 {
		entities.Attendees = emails
	}

	return models.Extraction{
		Intent:   determineIntent(message),
		Entities: entities,
	}
}

func extractTitlePhrase(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))

	if strings.Contains(lower, "purpose") || strings.Contains(lower, "topic") {
		for _, re := range purposePatterns {
			if match := re.FindStringSubmatch(lower); match != nil {
				return toTitle(strings.Trim(strings.TrimSpace(match[1]), `"'`))
			}
		}
	}

	for _, re := range titlePatterns {
		if match := re.FindStringSubmatch(lower); match != nil {
			title := spacesRe.ReplaceAllString(strings.TrimSpace(match[1]), " ")
			return toTitle(title)
		}
	}

	// Short free text with no time or question words is taken as the title
	// itself ("casual call", "project review").
	words := strings.Fields(strings.TrimSpace(message))
	if len(words) >= 1 && len(words) <= 4 {
		clean := true
		for _, word := range words {
			w := strings.ToLower(word)
			if titleSkipWords[w] || titleQuestionWords[w] {
				clean = false
				break
			}
		}
		if clean {
			if len(words) == 1 && len(words[0]) <= 2 {
				return ""
			}
			return toTitle(strings.TrimSpace(message))
		}
	}

	if match := quotedTitleRe.FindStringSubmatch(message); match != nil {
		return toTitle(match[1])
	}
	return ""
}

func extractDurationPhrase(message string) string {
	lower := strings.ToLower(message)

	if halfHourRe.MatchString(lower) {
		return "30 minutes"
	}
	if match := hoursRe.FindStringSubmatch(lower); match != nil {
		return formatHours(match[1])
	}
	if match := glueHourRe.FindStringSubmatch(lower); match != nil {
		return formatHours(match[1])
	}
	if match := minutesRe.FindStringSubmatch(lower); match != nil {
		return match[1] + " minutes"
	}
	if anHourRe.MatchString(lower) {
		return "1 hour"
	}
	return ""
}

func formatHours(num string) string {
	if v, err := strconv.ParseFloat(num, 64); err == nil && v == 1 {
		return num + " hour"
	}
	return num + " hours"
}

func extractTimePhrase(message string) string {
	lower := strings.ToLower(message)
	for _, re := range clockPhrases {
		if match := re.FindStringSubmatch(lower); match != nil {
			return match[1]
		}
	}
	return ""
}

func extractDatePhrase(message string) string {
	lower := strings.ToLower(message)
	for _, phrase := range datePhrases {
		if strings.Contains(lower, phrase) {
			return phrase
		}
	}
	return ""
}

func determineIntent(message string) string {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "book", "schedule", "arrange", "set up"):
		return models.IntentBookAppointment
	case containsAny(lower, "available", "free", "check"):
		return models.IntentCheckAvailability
	case containsAny(lower, "yes", "confirm", "book it"):
		return models.IntentConfirmBooking
	default:
		return models.IntentProvideInfo
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// toTitle uppercases the first letter of each word and lowercases the rest.
func toTitle(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
