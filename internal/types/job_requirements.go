package types

import (
	"github.com/go-playground/validator/v10"
)

// Decision values recorded with each scored candidate.
const (
	DecisionAccepted = "accepted"
	DecisionRejected = "rejected"
)

// JobRequirements is the skill list a candidate is scored against.
type JobRequirements struct {
	Title           string   `json:"title,omitempty"`
	MandatorySkills []string `json:"mandatory_skills" validate:"omitempty,dive,required,max=60"`
	PreferredSkills []string `json:"preferred_skills" validate:"omitempty,dive,required,max=60"`
}

// Validate validates the JobRequirements using the validator.
func (r *JobRequirements) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// MatchResult is the keyword-overlap score of one candidate against JobRequirements.
type MatchResult struct {
	Score            float64  `json:"score"`
	Decision         string   `json:"decision"`
	MatchedMandatory []string `json:"matched_mandatory"`
	MissingMandatory []string `json:"missing_mandatory"`
	MatchedPreferred []string `json:"matched_preferred"`
}

// Accepted reports whether the candidate passed screening.
func (m *MatchResult) Accepted() bool {
	return m.Decision == DecisionAccepted
}

// ScoreRequest is the body of a standalone scoring call.
type ScoreRequest struct {
	Skills       []string        `json:"skills" validate:"required,dive,required"`
	Requirements JobRequirements `json:"requirements"`
}

// Validate validates the ScoreRequest and its nested requirements.
func (r *ScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
