// Package ranking scores candidates against job requirements and rates CV text quality.
package ranking

import (
	"math"
	"strings"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/skills"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

// Default weights for match components
const (
	mandatoryWeight = 70.0
	preferredWeight = 30.0

	// DefaultAcceptThreshold is the minimum score for an accepted decision.
	DefaultAcceptThreshold = 60.0
)

// Scorer computes keyword-overlap match scores.
type Scorer struct {
	AcceptThreshold float64
}

// NewScorer creates a Scorer. A non-positive threshold selects DefaultAcceptThreshold.
func NewScorer(acceptThreshold float64) *Scorer {
	if acceptThreshold <= 0 {
		acceptThreshold = DefaultAcceptThreshold
	}
	return &Scorer{AcceptThreshold: acceptThreshold}
}

// ScoreMatch scores candidate skills with the default threshold.
func ScoreMatch(candidateSkills []string, req types.JobRequirements) types.MatchResult {
	return NewScorer(DefaultAcceptThreshold).Score(candidateSkills, req)
}

// Score computes the match between a candidate's skills and a job's requirements.
//
// Mandatory skills carry 70 points and preferred skills 30, each scaled by the fraction
// matched; an empty list awards its full weight. A requirement matches when any
// normalized candidate skill contains the normalized requirement. The candidate is
// accepted when the score reaches the threshold and no mandatory skill is missing.
func (s *Scorer) Score(candidateSkills []string, req types.JobRequirements) types.MatchResult {
	candidates := skills.NormalizeAll(candidateSkills)

	matchedMandatory, missingMandatory := partition(candidates, req.MandatorySkills)
	matchedPreferred, _ := partition(candidates, req.PreferredSkills)

	score := componentScore(len(matchedMandatory), len(matchedMandatory)+len(missingMandatory), mandatoryWeight)
	score += componentScore(len(matchedPreferred), countRequirements(req.PreferredSkills), preferredWeight)
	score = math.Round(score*100) / 100

	decision := types.DecisionRejected
	if score >= s.AcceptThreshold && len(missingMandatory) == 0 {
		decision = types.DecisionAccepted
	}

	return types.MatchResult{
		Score:            score,
		Decision:         decision,
		MatchedMandatory: matchedMandatory,
		MissingMandatory: missingMandatory,
		MatchedPreferred: matchedPreferred,
	}
}

// partition splits requirements into matched and missing, skipping blank entries.
func partition(candidates []string, requirements []string) (matched, missing []string) {
	matched = make([]string, 0, len(requirements))
	missing = make([]string, 0)
	for _, req := range requirements {
		normalized := skills.Normalize(req)
		if normalized == "" {
			continue
		}
		if containsSkill(candidates, normalized) {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}
	return matched, missing
}

func containsSkill(candidates []string, requirement string) bool {
	for _, c := range candidates {
		if strings.Contains(c, requirement) {
			return true
		}
	}
	return false
}

func countRequirements(requirements []string) int {
	n := 0
	for _, r := range requirements {
		if strings.TrimSpace(r) != "" {
			n++
		}
	}
	return n
}

func componentScore(matched, total int, weight float64) float64 {
	if total == 0 {
		return weight
	}
	return float64(matched) / float64(total) * weight
}
