package extraction

import (
	"sort"
	"strings"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/skills"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

// ExtractSkills returns the candidate's skills: canonical, deduplicated, known skills
// first, then alphabetical, at most types.MaxSkills entries. The result is never nil.
func ExtractSkills(text string) []string {
	found := make(map[string]struct{})
	add := func(token string) {
		normalized := skills.Normalize(token)
		if normalized == "" || skills.IsExcluded(normalized) {
			return
		}
		found[normalized] = struct{}{}
	}

	lower := strings.ToLower(text)
	for _, term := range skills.Terms() {
		if term.Matches(lower) {
			add(term.Name)
		}
	}

	for _, section := range skillSections(text) {
		for _, item := range skillSeparatorPattern.Split(section, -1) {
			if cleaned := cleanSkill(item); isValidSkill(cleaned) {
				add(cleaned)
			}
		}
	}

	return rankSkills(found)
}

// skillSections returns the captured span of every skills-style section header.
func skillSections(text string) []string {
	var sections []string
	for _, pattern := range skillSectionPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil && m[1] != "" {
			sections = append(sections, m[1])
		}
	}
	return sections
}

func cleanSkill(item string) string {
	s := strings.ToLower(item)
	s = skillBracketPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = skillBulletPattern.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(s)
}

// isValidSkill accepts tokens of 2 to 30 characters that contain a letter and are not
// purely numeric. The one-letter languages c and r are the only shorter tokens allowed.
func isValidSkill(skill string) bool {
	if len(skill) == 1 {
		return skill == "c" || skill == "r"
	}
	if len(skill) < 2 || len(skill) > 30 {
		return false
	}
	if digitsOnlyPattern.MatchString(skill) {
		return false
	}
	return letterPattern.MatchString(skill)
}

func rankSkills(found map[string]struct{}) []string {
	ranked := make([]string, 0, len(found))
	for s := range found {
		ranked = append(ranked, s)
	}
	sort.Slice(ranked, func(i, j int) bool {
		ki, kj := skills.IsKnown(ranked[i]), skills.IsKnown(ranked[j])
		if ki != kj {
			return ki
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > types.MaxSkills {
		ranked = ranked[:types.MaxSkills]
	}
	return ranked
}
