package review

import (
	"fmt"
	"strings"

	"github.com/thomas-vilte/matereview/internal/models"
)

var recommendationGlyphs = map[models.Recommendation]string{
	models.RecommendationPositive:     "✅",
	models.RecommendationNegative:     "❌",
	models.RecommendationNeedsChanges: "⚠️",
}

// GlyphForRecommendation returns the status glyph used in the report heading.
func GlyphForRecommendation(rec models.Recommendation) string {
	if glyph, ok := recommendationGlyphs[rec]; ok {
		return glyph
	}
	return recommendationGlyphs[models.RecommendationNeedsChanges]
}

// RecommendationForGlyph is the inverse mapping, used to read a
// recommendation back out of a rendered report.
func RecommendationForGlyph(glyph string) (models.Recommendation, bool) {
	for rec, g := range recommendationGlyphs {
		if g == glyph {
			return rec, true
		}
	}
	return "", false
}

// FormatReport renders the structured review as Markdown. Pure projection:
// the same review always yields byte-identical output. Empty sections are
// omitted entirely rather than rendered as bare headings.
func FormatReport(review models.StructuredReview) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## %s AI Code Review\n\n", GlyphForRecommendation(review.Recommendation))
	fmt.Fprintf(&sb, "**Recommendation:** %s\n", review.Recommendation)
	fmt.Fprintf(&sb, "**Score:** %d/10\n\n", review.OverallScore)

	fmt.Fprintf(&sb, "### Summary\n\n%s\n", review.Summary)

	if len(review.PositiveAspects) > 0 {
		sb.WriteString("\n### Positive Aspects\n\n")
		for _, aspect := range review.PositiveAspects {
			fmt.Fprintf(&sb, "- %s\n", aspect)
		}
	}

	if len(review.Findings) > 0 {
		sb.WriteString("\n### Findings\n")
		for _, file := range findingFiles(review.Findings) {
			fmt.Fprintf(&sb, "\n#### `%s`\n\n", file)
			for _, finding := range review.Findings {
				if finding.File != file {
					continue
				}
				location := ""
				if finding.Line > 0 {
					location = fmt.Sprintf(" (line %d)", finding.Line)
				}
				fmt.Fprintf(&sb, "- **%s** [%s]%s: %s\n", finding.Severity, finding.Category, location, finding.Issue)
				if finding.Suggestion != "" {
					fmt.Fprintf(&sb, "  - Suggestion: %s\n", finding.Suggestion)
				}
			}
		}
	}

	if len(review.AreasForImprovement) > 0 {
		sb.WriteString("\n### Areas for Improvement\n\n")
		for _, area := range review.AreasForImprovement {
			fmt.Fprintf(&sb, "- %s\n", area)
		}
	}

	return sb.String()
}

// findingFiles returns the distinct files in first-appearance order so the
// grouping is deterministic.
func findingFiles(findings []models.ReviewFinding) []string {
	seen := make(map[string]bool)
	var files []string
	for _, f := range findings {
		if !seen[f.File] {
			seen[f.File] = true
			files = append(files, f.File)
		}
	}
	return files
}
