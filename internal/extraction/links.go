package extraction

import (
	"regexp"
	"strings"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

const (
	githubBaseURL   = "https://github.com/"
	linkedinBaseURL = "https://linkedin.com/in/"
)

// ExtractLinks finds the candidate's GitHub and LinkedIn profile URLs.
//
// A direct profile URL wins. Otherwise a labeled value ("GitHub: jdoe", "LinkedIn: ...")
// on the same line is reduced to a username and expanded to a canonical profile URL; a
// labeled URL to another host is ignored. Every returned URL uses https and has no
// trailing slash.
func ExtractLinks(text string) types.Links {
	return types.Links{
		GitHub:   extractProfile(text, githubPattern, githubLabelPattern, githubBaseURL),
		LinkedIn: extractProfile(text, linkedinPattern, linkedinLabelPattern, linkedinBaseURL),
	}
}

func extractProfile(text string, direct, label *regexp.Regexp, baseURL string) string {
	if url := direct.FindString(text); url != "" {
		return canonicalURL(url)
	}

	m := label.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	value := m[1]
	if url := direct.FindString(value); url != "" {
		return canonicalURL(url)
	}
	if urlPattern.MatchString(value) || hostPattern.MatchString(value) {
		return ""
	}
	username := usernamePattern.FindString(value)
	if username == "" {
		return ""
	}
	return baseURL + username
}

// canonicalURL forces an https scheme and drops trailing slashes.
func canonicalURL(url string) string {
	url = strings.TrimSpace(url)
	url = schemePattern.ReplaceAllString(url, "")
	return "https://" + strings.TrimRight(url, "/")
}
