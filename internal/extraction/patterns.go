// Package extraction recovers candidate contact details and skills from clean CV text.
//
// Every extractor is a pure function over an immutable string: the regular expressions
// below are compiled once and only used through stateless Find/Match calls.
package extraction

import "regexp"

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-']+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)

// emailLabelPattern captures an address that follows an "email:", "e-mail:" or "contact:" marker.
var emailLabelPattern = regexp.MustCompile(`(?i)(?:email|e-mail|contact)[:\s]+([a-z0-9._%+\-']+@[a-z0-9.\-]+\.[a-z]{2,})`)

// excludedEmailMarkers flag placeholder addresses such as template or sample text.
var excludedEmailMarkers = []string{"example", "test", "sample"}

// phonePatterns are tried in order; the first pattern with a usable candidate wins.
var phonePatterns = []*regexp.Regexp{
	// international, optional country code and separators
	regexp.MustCompile(`\+?\d{1,3}[-. \t]?\(?\d{1,4}\)?[-. \t]?\d{1,4}[-. \t]?\d{1,4}[-. \t]?\d{1,9}`),
	// (123) 456-7890
	regexp.MustCompile(`\(\d{3}\)[ \t]?\d{3}[-. \t]?\d{4}`),
	// 123-456-7890, 123.456.7890
	regexp.MustCompile(`\d{3}[-. \t]\d{3}[-. \t]\d{4}`),
	// 1234567890
	regexp.MustCompile(`\d{10,}`),
}

// phoneLabelPattern and the separators above stay on one line so numbers on adjacent
// lines are never merged.
var phoneLabelPattern = regexp.MustCompile(`(?i)(?:phone|tel|mobile|cell)[: \t]+([\d \t\-()+.]+)`)

var nonDigitPattern = regexp.MustCompile(`\D`)

var (
	githubPattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/([a-z0-9_-]+)/?`)
	linkedinPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/([a-z0-9_-]+)/?`)

	githubLabelPattern   = regexp.MustCompile(`(?i)\bgit(?:hub)?[ \t]*:[ \t]*(\S+)`)
	linkedinLabelPattern = regexp.MustCompile(`(?i)\blinked-?in[ \t]*:[ \t]*(\S+)`)

	// hostPattern flags a labeled value that points at some other site.
	hostPattern = regexp.MustCompile(`(?i)^@?[a-z0-9-]+(?:\.[a-z0-9-]+)*\.[a-z]{2,}(?:/|$)`)

	usernamePattern = regexp.MustCompile(`[A-Za-z0-9_-]+`)
	schemePattern   = regexp.MustCompile(`(?i)^https?://`)
	urlPattern      = regexp.MustCompile(`(?i)https?://`)
)

// skillSectionPatterns capture the span after a skills-style header up to the next
// blank line or major section header.
var skillSectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?:technical\s+)?skills[:\s]+(.*?)(?:\n\n|experience|education|projects|$)`),
	regexp.MustCompile(`(?is)(?:technologies|tech\s+stack)[:\s]+(.*?)(?:\n\n|experience|education|projects|$)`),
	regexp.MustCompile(`(?is)(?:expertise|competencies)[:\s]+(.*?)(?:\n\n|experience|education|projects|$)`),
}

var (
	skillSeparatorPattern = regexp.MustCompile(`[,;•\n\-|]`)
	skillBracketPattern   = regexp.MustCompile(`[()\[\]{}]`)
	skillBulletPattern    = regexp.MustCompile(`^[•\-*]+\s*`)
	whitespacePattern     = regexp.MustCompile(`\s+`)
	digitsOnlyPattern     = regexp.MustCompile(`^\d+$`)
	letterPattern         = regexp.MustCompile(`[A-Za-z]`)
	digitPattern          = regexp.MustCompile(`\d`)
)
