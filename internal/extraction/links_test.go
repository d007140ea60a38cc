package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.Links
	}{
		{
			name: "bare github url",
			text: "github.com/johnsmith",
			want: types.Links{GitHub: "https://github.com/johnsmith"},
		},
		{
			name: "http upgraded and trailing slash dropped",
			text: "http://www.github.com/jdoe/",
			want: types.Links{GitHub: "https://www.github.com/jdoe"},
		},
		{
			name: "repository path reduced to profile",
			text: "see github.com/johnsmith/project for details",
			want: types.Links{GitHub: "https://github.com/johnsmith"},
		},
		{
			name: "linkedin url",
			text: "https://linkedin.com/in/jane-doe/",
			want: types.Links{LinkedIn: "https://linkedin.com/in/jane-doe"},
		},
		{
			name: "linkedin with www",
			text: "www.linkedin.com/in/jane_doe",
			want: types.Links{LinkedIn: "https://www.linkedin.com/in/jane_doe"},
		},
		{
			name: "labeled usernames",
			text: "GitHub: jdoe\nLinkedIn: jane-doe",
			want: types.Links{
				GitHub:   "https://github.com/jdoe",
				LinkedIn: "https://linkedin.com/in/jane-doe",
			},
		},
		{
			name: "short labels",
			text: "Git: @octocat\nLinked-in: janedoe",
			want: types.Links{
				GitHub:   "https://github.com/octocat",
				LinkedIn: "https://linkedin.com/in/janedoe",
			},
		},
		{
			name: "direct url beats label",
			text: "GitHub: someone\ngithub.com/real",
			want: types.Links{GitHub: "https://github.com/real"},
		},
		{
			name: "skill mention is not a label",
			text: "Tools: Git, Docker",
			want: types.Links{},
		},
		{
			name: "label value must be on the same line",
			text: "GitHub:\n\nEducation\nLinkedIn:\nJane Doe",
			want: types.Links{},
		},
		{
			name: "labeled url to another host",
			text: "git: https://gitlab.com/foo\nLinkedIn: xing.com/profile/jane",
			want: types.Links{},
		},
		{
			name: "nothing",
			text: "Jane Doe",
			want: types.Links{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLinks(tt.text))
		})
	}
}

func TestExtractLinks_SchemeAndSlash(t *testing.T) {
	inputs := []string{
		"http://github.com/a/",
		"HTTPS://GITHUB.COM/b//",
		"github: c/",
		"linkedin.com/in/d///",
		"LinkedIn: https://www.linkedin.com/in/e/",
	}

	for _, input := range inputs {
		links := ExtractLinks(input)
		for _, url := range []string{links.GitHub, links.LinkedIn} {
			if url == "" {
				continue
			}
			assert.True(t, strings.HasPrefix(url, "https://"), "input %q gave %q", input, url)
			assert.False(t, strings.HasSuffix(url, "/"), "input %q gave %q", input, url)
		}
	}
}
