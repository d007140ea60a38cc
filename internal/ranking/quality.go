package ranking

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

// Metric names used in RuleFinding.Metric.
const (
	MetricCompleteness       = "completeness"
	MetricWritingQuality     = "writing_quality"
	MetricInformationDensity = "information_density"
	MetricFormatConsistency  = "format_consistency"
)

// Rating thresholds on the overall score.
const (
	excellentThreshold = 80.0
	goodThreshold      = 60.0
	fairThreshold      = 40.0
)

var (
	sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)
	wordSplitPattern     = regexp.MustCompile(`\s+`)
	leadingUpperPattern  = regexp.MustCompile(`^[A-Z]`)
	sentenceStartPattern = regexp.MustCompile(`[.!?]\s+[A-Z]`)

	numberPattern       = regexp.MustCompile(`\d+`)
	datePattern         = regexp.MustCompile(`\d{4}|\d{1,2}/\d{1,2}/\d{2,4}`)
	achievementPattern  = regexp.MustCompile(`(?i)achieved|improved|increased|reduced|led|managed|developed`)
	yearOnlyPattern     = regexp.MustCompile(`\d{4}`)
	slashDatePattern    = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
	monthYearPattern    = regexp.MustCompile(`\w+ \d{4}`)
	symbolBulletPattern = regexp.MustCompile(`(?m)^[-•*]`)
	numberedItemPattern = regexp.MustCompile(`(?m)^\d+\.`)
)

// sectionRule awards points when a section pattern occurs anywhere in the text.
type sectionRule struct {
	name    string
	pattern *regexp.Regexp
	points  float64
}

var completenessRules = []sectionRule{
	{name: "contact_section", pattern: regexp.MustCompile(`(?i)contact|email|phone`), points: 25},
	{name: "experience_section", pattern: regexp.MustCompile(`(?i)experience|work history|employment`), points: 25},
	{name: "education_section", pattern: regexp.MustCompile(`(?i)education|degree|university`), points: 25},
	{name: "skills_section", pattern: regexp.MustCompile(`(?i)skills|technical skills|competencies`), points: 25},
}

// penaltyRule deducts points from a base of 100 when its check fails.
type penaltyRule struct {
	name    string
	penalty float64
	check   func(text string) (ok bool, detail string)
}

var writingRules = []penaltyRule{
	{name: "sentence_length", penalty: 20, check: checkSentenceLength},
	{name: "repetition", penalty: 20, check: checkRepetition},
	{name: "capitalization", penalty: 10, check: checkCapitalization},
}

var formatRules = []penaltyRule{
	{name: "date_formats", penalty: 20, check: checkDateFormats},
	{name: "bullets", penalty: 15, check: checkBullets},
}

// densityRule scales a per-word frequency and caps the result.
type densityRule struct {
	name    string
	pattern *regexp.Regexp
	scale   float64
	limit   float64
}

var densityRules = []densityRule{
	{name: "numbers", pattern: numberPattern, scale: 1000, limit: 30},
	{name: "dates", pattern: datePattern, scale: 2000, limit: 30},
	{name: "achievements", pattern: achievementPattern, scale: 1000, limit: 40},
}

// AnalyzeQuality rates CV text on completeness, writing quality, information density
// and format consistency. Overall is the mean of the four metrics.
func AnalyzeQuality(text string) types.QualityReport {
	var findings []types.RuleFinding

	completeness := 0.0
	for _, rule := range completenessRules {
		points := 0.0
		if rule.pattern.MatchString(text) {
			points = rule.points
		}
		completeness += points
		findings = append(findings, types.RuleFinding{Metric: MetricCompleteness, Rule: rule.name, Points: points})
	}

	writing, writingFindings := applyPenalties(MetricWritingQuality, writingRules, text)
	findings = append(findings, writingFindings...)

	density := 0.0
	words := float64(len(wordSplitPattern.Split(text, -1)))
	for _, rule := range densityRules {
		count := len(rule.pattern.FindAllStringIndex(text, -1))
		points := math.Min(float64(count)/words*rule.scale, rule.limit)
		density += points
		findings = append(findings, types.RuleFinding{
			Metric: MetricInformationDensity,
			Rule:   rule.name,
			Points: points,
			Detail: fmt.Sprintf("%d matches in %.0f words", count, words),
		})
	}

	format, formatFindings := applyPenalties(MetricFormatConsistency, formatRules, text)
	findings = append(findings, formatFindings...)

	overall := (completeness + writing + density + format) / 4

	return types.QualityReport{
		Completeness:       completeness,
		WritingQuality:     writing,
		InformationDensity: density,
		FormatConsistency:  format,
		Overall:            overall,
		Rating:             Rating(overall),
		Findings:           findings,
	}
}

// Rating maps an overall quality score to its label.
func Rating(overall float64) string {
	switch {
	case overall >= excellentThreshold:
		return types.RatingExcellent
	case overall >= goodThreshold:
		return types.RatingGood
	case overall >= fairThreshold:
		return types.RatingFair
	default:
		return types.RatingNeedsImprovement
	}
}

func applyPenalties(metric string, rules []penaltyRule, text string) (float64, []types.RuleFinding) {
	score := 100.0
	findings := make([]types.RuleFinding, 0, len(rules))
	for _, rule := range rules {
		ok, detail := rule.check(text)
		points := 0.0
		if !ok {
			points = -rule.penalty
		}
		score += points
		findings = append(findings, types.RuleFinding{Metric: metric, Rule: rule.name, Points: points, Detail: detail})
	}
	return math.Max(0, score), findings
}

// checkSentenceLength wants an average of 5 to 30 space-separated words per sentence.
func checkSentenceLength(text string) (bool, string) {
	sentences := sentenceSplitPattern.Split(text, -1)
	total := 0
	for _, s := range sentences {
		total += len(strings.Split(s, " "))
	}
	avg := float64(total) / float64(len(sentences))
	return avg >= 5 && avg <= 30, fmt.Sprintf("average sentence length %.1f words", avg)
}

// checkRepetition wants at least 40% distinct words.
func checkRepetition(text string) (bool, string) {
	words := wordSplitPattern.Split(strings.ToLower(text), -1)
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	ratio := float64(len(unique)) / float64(len(words))
	return ratio >= 0.4, fmt.Sprintf("unique word ratio %.2f", ratio)
}

// checkCapitalization wants the text and at least one later sentence to start upper-case.
func checkCapitalization(text string) (bool, string) {
	ok := leadingUpperPattern.MatchString(text) && sentenceStartPattern.MatchString(text)
	return ok, ""
}

// checkDateFormats fails when more than one date style is a minority style.
func checkDateFormats(text string) (bool, string) {
	counts := []int{
		len(yearOnlyPattern.FindAllStringIndex(text, -1)),
		len(slashDatePattern.FindAllStringIndex(text, -1)),
		len(monthYearPattern.FindAllStringIndex(text, -1)),
	}
	highest := 0
	for _, c := range counts {
		highest = max(highest, c)
	}
	inconsistent := 0
	for _, c := range counts {
		if c > 0 && c < highest {
			inconsistent++
		}
	}
	return inconsistent <= 1, fmt.Sprintf("date style counts %v", counts)
}

// checkBullets wants more than two bullet or numbered lines.
func checkBullets(text string) (bool, string) {
	bullets := len(symbolBulletPattern.FindAllStringIndex(text, -1))
	numbered := len(numberedItemPattern.FindAllStringIndex(text, -1))
	return bullets > 2 || numbered > 2, fmt.Sprintf("%d bullets, %d numbered items", bullets, numbered)
}
