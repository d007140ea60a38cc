package skills

import (
	"strings"
)

// displayNames maps canonical skills to their conventional capitalization.
var displayNames = map[string]string{
	"javascript":              "JavaScript",
	"typescript":              "TypeScript",
	"node.js":                 "Node.js",
	"next.js":                 "Next.js",
	"postgresql":              "PostgreSQL",
	"mongodb":                 "MongoDB",
	"mysql":                   "MySQL",
	"graphql":                 "GraphQL",
	"github":                  "GitHub",
	"gitlab":                  "GitLab",
	"github actions":          "GitHub Actions",
	"amazon web services":     "Amazon Web Services",
	"google cloud":            "Google Cloud",
	"ci/cd":                   "CI/CD",
	".net":                    ".NET",
	"c#":                      "C#",
	"c++":                     "C++",
	"php":                     "PHP",
	"html":                    "HTML",
	"css":                     "CSS",
	"sql":                     "SQL",
	"nosql":                   "NoSQL",
	"ios":                     "iOS",
	"machine learning":        "Machine Learning",
	"artificial intelligence": "Artificial Intelligence",
}

// Normalize maps a raw skill token to its canonical lower-case form.
// Unmapped tokens are returned trimmed and lower-cased.
func Normalize(token string) string {
	lower := strings.ToLower(strings.TrimSpace(token))
	if canonical, ok := synonyms[lower]; ok {
		return canonical
	}
	return lower
}

// NormalizeAll normalizes every token, dropping empty ones.
func NormalizeAll(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// DisplayName returns a human-facing form of a skill for reports.
func DisplayName(skill string) string {
	normalized := Normalize(skill)
	if normalized == "" {
		return ""
	}
	if name, ok := displayNames[normalized]; ok {
		return name
	}

	// Multi-word skills get each word capitalized
	words := strings.Fields(normalized)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
