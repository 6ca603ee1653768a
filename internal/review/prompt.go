package review

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thomas-vilte/matereview/internal/models"
)

// maxPatchChars bounds the diff body embedded per file so one huge patch
// cannot blow the prompt past the model's context window.
const maxPatchChars = 12000

// BuildPrompt assembles the single instruction text sent to the model: the
// reviewer persona, the PR title and description verbatim, every relevant
// file's diff under clear delimiters, and the exact JSON shape expected back.
func BuildPrompt(pr models.PRData, files []models.ChangedFile, role string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s. You are reviewing a pull request.\n\n", role)

	sb.WriteString("## Pull request\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", pr.Title)
	fmt.Fprintf(&sb, "Description:\n%s\n\n", pr.Description)

	sb.WriteString("## Changed files\n\n")
	for _, f := range files {
		fmt.Fprintf(&sb, "### File: %s (+%d/-%d)\n", f.Filename, f.Additions, f.Deletions)
		patch := f.Patch
		if patch == "" {
			sb.WriteString("(no diff body available)\n\n")
			continue
		}
		if len(patch) > maxPatchChars {
			patch = truncatePatch(patch) + "\n... (diff truncated)"
		}
		fmt.Fprintf(&sb, "```diff\n%s\n```\n\n", patch)
	}

	sb.WriteString(`## Instructions

Analyze the changes and respond with a JSON object of exactly this shape:

{
  "overall_score": <integer from 1 to 10>,
  "recommendation": "POSITIVE" | "NEGATIVE" | "NEEDS_CHANGES",
  "summary": "<short overall assessment>",
  "findings": [
    {
      "category": "QUALITY" | "SECURITY" | "FUNCTIONALITY" | "MAINTAINABILITY",
      "severity": "HIGH" | "MEDIUM" | "LOW",
      "file": "<filename>",
      "line": <line number, optional>,
      "issue": "<what is wrong>",
      "suggestion": "<how to fix it>"
    }
  ],
  "positive_aspects": ["<thing done well>"],
  "areas_for_improvement": ["<general improvement>"]
}

Rules:
1. Respond ONLY with the JSON object, no surrounding prose and no markdown fences.
2. Score honestly; do not inflate the score to be polite.
3. Only report findings you are confident about, each tied to a concrete file.
4. Keep the summary under three sentences.
`)

	return sb.String()
}

// truncatePatch cuts the patch at the size budget without splitting a
// multi-byte rune, so the prompt stays valid UTF-8.
func truncatePatch(patch string) string {
	cut := maxPatchChars
	for cut > 0 && !utf8.RuneStart(patch[cut]) {
		cut--
	}
	return patch[:cut]
}
