package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ingestion"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

// Candidate is a stored extraction result, optionally scored against a job.
type Candidate struct {
	ID          uuid.UUID  `json:"id"`
	JobID       *uuid.UUID `json:"job_id,omitempty"`
	Filename    *string    `json:"filename,omitempty"`
	ContentHash *string    `json:"content_hash,omitempty"`
	Name        string     `json:"name"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	GitHub      *string    `json:"github,omitempty"`
	LinkedIn    *string    `json:"linkedin,omitempty"`
	Skills      []string   `json:"extracted_skills"`
	MatchScore  *float64   `json:"match_score,omitempty"`
	Decision    *string    `json:"decision,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Result converts the stored row back into an extraction result.
func (c *Candidate) Result() *types.ExtractionResult {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	return &types.ExtractionResult{
		Name:  c.Name,
		Email: deref(c.Email),
		Phone: deref(c.Phone),
		Links: types.Links{
			GitHub:   deref(c.GitHub),
			LinkedIn: deref(c.LinkedIn),
		},
		Skills: skills,
	}
}

// CandidateInput contains the data needed to store a candidate
type CandidateInput struct {
	JobID       *uuid.UUID
	Filename    string
	ContentHash string
	Result      *types.ExtractionResult
	Match       *types.MatchResult
}

// NewCandidateInput prepares a candidate row for doc, hashing the raw bytes so
// re-uploads of the same file can be recognised.
func NewCandidateInput(jobID *uuid.UUID, doc types.Document, result *types.ExtractionResult, match *types.MatchResult) *CandidateInput {
	input := &CandidateInput{
		JobID:    jobID,
		Filename: doc.Filename,
		Result:   result,
		Match:    match,
	}
	if !doc.IsEmpty() {
		input.ContentHash = ingestion.NewMetadata(doc.Data, doc.Filename).Hash
	}
	return input
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
