package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"js to javascript", "js", "javascript"},
		{"JS uppercase", "JS", "javascript"},
		{"ts to typescript", "ts", "typescript"},
		{"reactjs to react", "ReactJS", "react"},
		{"react.js to react", "react.js", "react"},
		{"node to node.js", "node", "node.js"},
		{"nodejs to node.js", "NodeJS", "node.js"},
		{"postgres to postgresql", "Postgres", "postgresql"},
		{"mongo to mongodb", "mongo", "mongodb"},
		{"k8s to kubernetes", "K8s", "kubernetes"},
		{"gcp to google cloud", "GCP", "google cloud"},
		{"aws expands", "AWS", "amazon web services"},
		{"ml expands", "ML", "machine learning"},
		{"ai expands", "AI", "artificial intelligence"},
		{"dotnet to .net", "dotnet", ".net"},
		{"csharp to c#", "csharp", "c#"},
		{"cpp to c++", "cpp", "c++"},
		{"golang to go", "Golang", "go"},
		{"unmapped lower-cased", "  Python ", "python"},
		{"multi-word passthrough", "Distributed Systems", "distributed systems"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, term := range Dictionary() {
		once := Normalize(term)
		assert.Equal(t, once, Normalize(once), "normalizing %q twice should be stable", term)
	}
}

func TestNormalizeAll(t *testing.T) {
	assert.Equal(t, []string{"javascript", "go"}, NormalizeAll([]string{"JS", " ", "golang"}))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "JavaScript", DisplayName("js"))
	assert.Equal(t, "PostgreSQL", DisplayName("postgres"))
	assert.Equal(t, "Spring Boot", DisplayName("spring boot"))
	assert.Equal(t, "Python", DisplayName("python"))
	assert.Equal(t, "", DisplayName(" "))
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("python"))
	assert.True(t, IsKnown("Machine Learning"))
	assert.True(t, IsKnown("amazon web services"), "canonical forms are known")
	assert.False(t, IsKnown("basket weaving"))
}

func TestIsExcluded(t *testing.T) {
	assert.True(t, IsExcluded("experience"))
	assert.True(t, IsExcluded(" Skills "))
	assert.False(t, IsExcluded("python"))
}

func TestTerms_Matching(t *testing.T) {
	byName := make(map[string]Term)
	for _, term := range Terms() {
		byName[term.Name] = term
	}

	text := "languages: c++, c#, go and python. i use machine learning daily. django developer"
	assert.True(t, byName["c++"].Matches(text))
	assert.True(t, byName["c#"].Matches(text))
	assert.True(t, byName["go"].Matches(text))
	assert.True(t, byName["machine learning"].Matches(text))
	assert.False(t, byName["golang"].Matches(text))
	assert.False(t, byName["java"].Matches("javascript only"), "word boundary should reject java inside javascript")
	assert.True(t, byName["django"].Matches(text))
}
