package skills

import "strings"

// Category groups skills for reporting.
type Category string

// Skill categories.
const (
	CategoryLanguages  Category = "Programming Languages"
	CategoryTools      Category = "Tools & Technologies"
	CategorySoftSkills Category = "Soft Skills"
	CategoryDomain     Category = "Domain-specific"
	CategoryTechnical  Category = "Technical"
)

// category markers are checked in this order; the first group with a substring hit wins.
var categoryMarkers = []struct {
	category Category
	markers  []string
}{
	{CategoryLanguages, []string{"javascript", "typescript", "python", "java", "c++", "go", "rust", "ruby", "php"}},
	{CategoryTools, []string{"docker", "kubernetes", "git", "jenkins", "terraform", "ansible"}},
	{CategorySoftSkills, []string{"leadership", "communication", "teamwork", "problem solving", "creativity", "agile"}},
	{CategoryDomain, []string{"finance", "healthcare", "ecommerce", "blockchain", "iot", "security"}},
}

// Categorize assigns a skill to a reporting category. Unmatched skills are Technical.
func Categorize(skill string) Category {
	lower := Normalize(skill)
	for _, group := range categoryMarkers {
		for _, marker := range group.markers {
			if strings.Contains(lower, marker) {
				return group.category
			}
		}
	}
	return CategoryTechnical
}

// GroupByCategory buckets skills by category, preserving input order inside each bucket.
func GroupByCategory(skillList []string) map[Category][]string {
	groups := make(map[Category][]string)
	for _, s := range skillList {
		c := Categorize(s)
		groups[c] = append(groups[c], s)
	}
	return groups
}
