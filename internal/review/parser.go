package review

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/models"
)

const fallbackSummary = "Automated parsing of the model response failed; manual review of this pull request is required."

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\n?(.*?)```")

// FallbackReview is the fixed degraded verdict used whenever the model
// response cannot be parsed or validated. The run still completes and posts
// an honest "please review manually" report instead of failing CI.
func FallbackReview() models.StructuredReview {
	return models.StructuredReview{
		OverallScore:    5,
		Recommendation:  models.RecommendationNeedsChanges,
		Summary:         fallbackSummary,
		Findings:        []models.ReviewFinding{},
		PositiveAspects: []string{},
		AreasForImprovement: []string{
			"The automated reviewer could not produce a structured verdict; a human should review these changes.",
		},
	}
}

// ParseReview turns raw model output into a validated StructuredReview.
// Total function: any parse or validation failure yields the fallback
// verdict, never an error.
func ParseReview(ctx context.Context, raw string) models.StructuredReview {
	log := logger.FromContext(ctx)

	candidate := extractJSON(raw)
	if candidate == "" {
		log.Warn("model response contains no JSON object, using fallback review",
			"response_length", len(raw))
		return FallbackReview()
	}

	var review models.StructuredReview
	if err := json.Unmarshal([]byte(candidate), &review); err != nil {
		log.Warn("model response is not valid JSON, using fallback review",
			"error", err,
			"response_length", len(raw))
		return FallbackReview()
	}

	if err := validateReview(&review); err != nil {
		log.Warn("model response failed schema validation, using fallback review",
			"error", err)
		return FallbackReview()
	}

	return review
}

// extractJSON pulls the JSON object out of text that may carry leading or
// trailing prose and markdown fences despite the prompt's instructions.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	for _, m := range fenceRe.FindAllStringSubmatch(text, -1) {
		if len(m) > 1 {
			inner := strings.TrimSpace(m[1])
			if json.Valid([]byte(inner)) {
				return inner
			}
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// validateReview enforces the schema: score bounds, enum membership and
// required fields. Optional arrays the model omitted are normalized to
// empty slices so downstream rendering never sees nil.
func validateReview(review *models.StructuredReview) error {
	if review.OverallScore < 1 || review.OverallScore > 10 {
		return fmt.Errorf("overall_score %d out of range [1,10]", review.OverallScore)
	}
	if !models.ValidRecommendation(review.Recommendation) {
		return fmt.Errorf("unknown recommendation %q", review.Recommendation)
	}
	if strings.TrimSpace(review.Summary) == "" {
		return fmt.Errorf("summary is empty")
	}

	for i, finding := range review.Findings {
		if !models.ValidCategory(finding.Category) {
			return fmt.Errorf("finding %d: unknown category %q", i, finding.Category)
		}
		if !models.ValidSeverity(finding.Severity) {
			return fmt.Errorf("finding %d: unknown severity %q", i, finding.Severity)
		}
		if strings.TrimSpace(finding.File) == "" {
			return fmt.Errorf("finding %d: file is empty", i)
		}
		if finding.Line < 0 {
			return fmt.Errorf("finding %d: negative line %d", i, finding.Line)
		}
	}

	if review.Findings == nil {
		review.Findings = []models.ReviewFinding{}
	}
	if review.PositiveAspects == nil {
		review.PositiveAspects = []string{}
	}
	if review.AreasForImprovement == nil {
		review.AreasForImprovement = []string{}
	}

	return nil
}
