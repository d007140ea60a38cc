package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// UnknownName is stored when no name heuristic succeeds.
	UnknownName = "Unknown"
	// UnknownCandidateLabel is the display form of UnknownName.
	UnknownCandidateLabel = "Unknown Candidate"
	// MaxSkills caps the number of skills on a result.
	MaxSkills = 25
)

// Links holds the candidate's social profile URLs. Empty means absent.
type Links struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// ExtractionResult is the structured record produced from one CV.
type ExtractionResult struct {
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	Phone  string   `json:"phone,omitempty"`
	Links  Links    `json:"-"`
	Skills []string `json:"skills"`
}

// extractionResultJSON is the flat wire form consumed by storage and UI layers.
type extractionResultJSON struct {
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	GitHub   string   `json:"github,omitempty"`
	LinkedIn string   `json:"linkedin,omitempty"`
	Skills   []string `json:"skills"`
}

// MarshalJSON flattens Links into the top-level object and never emits a null skills array.
func (r ExtractionResult) MarshalJSON() ([]byte, error) {
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	return json.Marshal(extractionResultJSON{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		GitHub:   r.Links.GitHub,
		LinkedIn: r.Links.LinkedIn,
		Skills:   skills,
	})
}

// UnmarshalJSON reads the flat wire form.
func (r *ExtractionResult) UnmarshalJSON(data []byte) error {
	var flat extractionResultJSON
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("failed to unmarshal extraction result: %w", err)
	}
	*r = ExtractionResult{
		Name:   flat.Name,
		Email:  flat.Email,
		Phone:  flat.Phone,
		Links:  Links{GitHub: flat.GitHub, LinkedIn: flat.LinkedIn},
		Skills: flat.Skills,
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	return nil
}

// HasName reports whether a real name (not the sentinel) was resolved.
func (r *ExtractionResult) HasName() bool {
	return r.Name != "" && r.Name != UnknownName
}

// DisplayName returns the name as the UI renders it.
func (r *ExtractionResult) DisplayName() string {
	if !r.HasName() {
		return UnknownCandidateLabel
	}
	return r.Name
}

// MissingFields lists the fields a reviewer should verify by hand.
func (r *ExtractionResult) MissingFields() []string {
	var missing []string
	if !r.HasName() {
		missing = append(missing, "name")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.Phone == "" {
		missing = append(missing, "phone")
	}
	if r.Links.GitHub == "" {
		missing = append(missing, "github")
	}
	if r.Links.LinkedIn == "" {
		missing = append(missing, "linkedin")
	}
	if len(r.Skills) == 0 {
		missing = append(missing, "skills")
	}
	return missing
}

// String returns a one-line summary for logs.
func (r *ExtractionResult) String() string {
	return fmt.Sprintf("%s <%s> skills=[%s]", r.DisplayName(), r.Email, strings.Join(r.Skills, ", "))
}
