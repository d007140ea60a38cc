package extraction

import (
	"strings"
)

// ExtractEmail returns the candidate's email address, lower-cased, or "" when none is found.
//
// Strategies run in order and the first success wins: a document-wide scan that skips
// placeholder addresses, an address following an email/contact label, and finally an
// address within two lines of a phone number.
func ExtractEmail(text string) string {
	for _, match := range emailPattern.FindAllString(text, -1) {
		if !isPlaceholderEmail(match) {
			return strings.ToLower(match)
		}
	}

	if m := emailLabelPattern.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[1])
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !HasPhoneNumber(line) {
			continue
		}
		for j := max(0, i-2); j <= min(len(lines)-1, i+2); j++ {
			if match := emailPattern.FindString(lines[j]); match != "" {
				return strings.ToLower(match)
			}
		}
	}

	return ""
}

func isPlaceholderEmail(email string) bool {
	lower := strings.ToLower(email)
	for _, marker := range excludedEmailMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
