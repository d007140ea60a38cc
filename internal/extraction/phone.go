package extraction

import (
	"fmt"
	"sort"
	"strings"
)

const (
	minPhoneDigits        = 10
	maxPhoneDigits        = 15
	minLabeledPhoneDigits = 7
)

// ExtractPhone returns the normalized phone number, or "" when none is found.
//
// Each pattern is tried in turn. Within a pattern, candidates with 10 to 15 digits
// survive and the longest one is normalized. A labeled "phone:" / "tel:" value with
// at least 7 digits is the fallback.
func ExtractPhone(text string) string {
	for _, pattern := range phonePatterns {
		var candidates []string
		for _, match := range pattern.FindAllString(text, -1) {
			match = strings.TrimSpace(match)
			if n := len(digitsOf(match)); n >= minPhoneDigits && n <= maxPhoneDigits {
				candidates = append(candidates, match)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i]) > len(candidates[j])
		})
		return NormalizePhone(candidates[0])
	}

	if m := phoneLabelPattern.FindStringSubmatch(text); m != nil {
		phone := strings.TrimSpace(m[1])
		if len(digitsOf(phone)) >= minLabeledPhoneDigits {
			return NormalizePhone(phone)
		}
	}

	return ""
}

// NormalizePhone formats a phone number for display:
//
//	10 digits               -> (AAA) BBB-CCCC
//	11 digits, leading 1    -> +1 (AAA) BBB-CCCC
//	leading +               -> + followed by digits only
//	anything else           -> the trimmed input
func NormalizePhone(phone string) string {
	trimmed := strings.TrimSpace(phone)
	digits := digitsOf(trimmed)

	switch {
	case len(digits) == 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
	case len(digits) == 11 && digits[0] == '1':
		return fmt.Sprintf("+1 (%s) %s-%s", digits[1:4], digits[4:7], digits[7:])
	case strings.HasPrefix(trimmed, "+"):
		return "+" + digits
	default:
		return trimmed
	}
}

// HasPhoneNumber reports whether any phone pattern matches s.
func HasPhoneNumber(s string) bool {
	for _, pattern := range phonePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

func digitsOf(s string) string {
	return nonDigitPattern.ReplaceAllString(s, "")
}
