package types

// Quality ratings, highest first.
const (
	RatingExcellent        = "Excellent"
	RatingGood             = "Good"
	RatingFair             = "Fair"
	RatingNeedsImprovement = "Needs Improvement"
)

// RuleFinding records the effect of one named quality rule.
type RuleFinding struct {
	Metric string  `json:"metric"`
	Rule   string  `json:"rule"`
	Points float64 `json:"points"`
	Detail string  `json:"detail,omitempty"`
}

// QualityReport scores a CV's text on four 0-100 metrics.
type QualityReport struct {
	Completeness       float64       `json:"completeness"`
	WritingQuality     float64       `json:"writing_quality"`
	InformationDensity float64       `json:"information_density"`
	FormatConsistency  float64       `json:"format_consistency"`
	Overall            float64       `json:"overall"`
	Rating             string        `json:"rating"`
	Findings           []RuleFinding `json:"findings"`
}
