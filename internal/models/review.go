package models

// FileStatus is the change status GitHub reports for a file in a pull request.
type FileStatus string

const (
	FileAdded    FileStatus = "added"
	FileModified FileStatus = "modified"
	FileRemoved  FileStatus = "removed"
	FileRenamed  FileStatus = "renamed"
)

type FindingCategory string

const (
	CategoryQuality         FindingCategory = "QUALITY"
	CategorySecurity        FindingCategory = "SECURITY"
	CategoryFunctionality   FindingCategory = "FUNCTIONALITY"
	CategoryMaintainability FindingCategory = "MAINTAINABILITY"
)

type FindingSeverity string

const (
	SeverityHigh   FindingSeverity = "HIGH"
	SeverityMedium FindingSeverity = "MEDIUM"
	SeverityLow    FindingSeverity = "LOW"
)

type Recommendation string

const (
	RecommendationPositive     Recommendation = "POSITIVE"
	RecommendationNegative     Recommendation = "NEGATIVE"
	RecommendationNeedsChanges Recommendation = "NEEDS_CHANGES"
)

type (
	// PullRequestRef identifies the pull request under review.
	PullRequestRef struct {
		Owner  string
		Repo   string
		Number int
	}

	// PRData contains the metadata fetched for a pull request.
	PRData struct {
		Number      int
		Title       string
		Description string
		Author      string
	}

	// ChangedFile is one file entry from the pull request's change list.
	ChangedFile struct {
		Filename  string
		Additions int
		Deletions int
		Status    FileStatus
		Patch     string
	}

	// ReviewFinding is one discrete issue the model identified in a file.
	ReviewFinding struct {
		Category   FindingCategory `json:"category"`
		Severity   FindingSeverity `json:"severity"`
		File       string          `json:"file"`
		Line       int             `json:"line,omitempty"`
		Issue      string          `json:"issue"`
		Suggestion string          `json:"suggestion"`
	}

	// StructuredReview is the validated verdict extracted from the model
	// response. OverallScore is always within [1,10] and Recommendation is
	// always one of the enumerated values once the parser has run.
	StructuredReview struct {
		OverallScore        int             `json:"overall_score"`
		Recommendation      Recommendation  `json:"recommendation"`
		Summary             string          `json:"summary"`
		Findings            []ReviewFinding `json:"findings"`
		PositiveAspects     []string        `json:"positive_aspects"`
		AreasForImprovement []string        `json:"areas_for_improvement"`
	}

	// Result is the public outcome of one review run. Recommendation, Score,
	// IssuesCount and Summary are only populated when a review was actually
	// produced; a docs-only PR ends successfully with all of them empty.
	Result struct {
		Success        bool           `json:"success"`
		Recommendation Recommendation `json:"recommendation,omitempty"`
		Score          int            `json:"score,omitempty"`
		IssuesCount    int            `json:"issues_count,omitempty"`
		Summary        string         `json:"summary,omitempty"`
		Report         string         `json:"report,omitempty"`
		Error          string         `json:"error,omitempty"`
	}
)

// ValidCategory reports whether c is one of the enumerated finding categories.
func ValidCategory(c FindingCategory) bool {
	switch c {
	case CategoryQuality, CategorySecurity, CategoryFunctionality, CategoryMaintainability:
		return true
	}
	return false
}

// ValidSeverity reports whether s is one of the enumerated severities.
func ValidSeverity(s FindingSeverity) bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// ValidRecommendation reports whether r is one of the enumerated recommendations.
func ValidRecommendation(r Recommendation) bool {
	switch r {
	case RecommendationPositive, RecommendationNegative, RecommendationNeedsChanges:
		return true
	}
	return false
}
