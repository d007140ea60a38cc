package extraction

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

var (
	fileExtensionPattern = regexp.MustCompile(`(?i)\.(?:pdf|doc|docx|txt)$`)
	filenameSeparators   = regexp.MustCompile(`[_\-.]+`)
	cvKeywordPattern     = regexp.MustCompile(`(?i)\b(?:curriculum\s+vitae|curriculum|vitae|my\s*cv|my\s*resume|resume|cv)\b`)
	yearPattern          = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	monthDatePattern     = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s*\d{1,2}(?:st|nd|rd|th)?\s*,?\s*(?:19|20)?\d{2}\b`)
	versionSuffixPattern = regexp.MustCompile(`(?i)\b(?:updated|final|latest|new|old|draft|version|v1|v2|v3)\b`)
	filenameNamePattern  = regexp.MustCompile(`^[A-Za-z ]{3,50}$`)

	lineCVKeywordPattern = regexp.MustCompile(`(?i)\b(?:cv|resume|curriculum vitae)\b`)
)

// boilerplateWords mark a line as a CV heading rather than a person's name.
var boilerplateWords = []string{
	"curriculum", "vitae", "resume", "profile", "summary", "objective",
	"experience", "education", "skills", "contact", "about", "professional",
	"personal", "information", "details", "address", "phone", "email",
}

// nameParticles are lower-case connectors that appear inside international names.
var nameParticles = map[string]struct{}{
	"al": {}, "el": {}, "van": {}, "de": {}, "del": {}, "bin": {},
	"ibn": {}, "von": {}, "da": {}, "di": {}, "le": {}, "la": {},
}

const (
	strictPassLines    = 10
	relaxedPassLines   = 15
	proximityPassLines = 20
)

// ResolveName runs the name fallback chain and returns the first hit:
// the filename, a strict scan of the first lines, a relaxed scan, the lines just above
// the contact block, and the email username. It returns types.UnknownName when every
// step fails.
func ResolveName(filename, text, email string) string {
	steps := []func() string{
		func() string { return NameFromFilename(filename) },
		func() string { return nameStrictPass(text) },
		func() string { return nameRelaxedPass(text) },
		func() string { return nameProximityPass(text) },
		func() string { return NameFromEmail(email) },
	}
	for _, step := range steps {
		if name := step(); name != "" {
			return name
		}
	}
	return types.UnknownName
}

// NameFromFilename derives a name from an upload filename such as
// "Jane_Doe_CV_2023_final.pdf". It returns "" when the remainder does not look like a name.
func NameFromFilename(filename string) string {
	if filename == "" {
		return ""
	}

	name := fileExtensionPattern.ReplaceAllString(filename, "")
	name = filenameSeparators.ReplaceAllString(name, " ")
	name = cvKeywordPattern.ReplaceAllString(name, " ")
	name = monthDatePattern.ReplaceAllString(name, " ")
	name = yearPattern.ReplaceAllString(name, " ")
	name = versionSuffixPattern.ReplaceAllString(name, " ")

	var words []string
	for _, w := range strings.Fields(name) {
		if len(w) >= 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 || len(words) > 5 {
		return ""
	}

	for i, w := range words {
		if w == strings.ToUpper(w) || w == strings.ToLower(w) {
			words[i] = capitalize(w)
		}
	}

	result := strings.Join(words, " ")
	if !filenameNamePattern.MatchString(result) {
		return ""
	}
	return result
}

// NameFromEmail turns an address like "jane.doe@acme.io" into "Jane Doe".
func NameFromEmail(email string) string {
	local, _, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return ""
	}
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	name := strings.Join(parts, " ")
	if len(name) < 3 {
		return ""
	}
	return name
}

// nameStrictPass accepts the first early line of 2 to 6 capitalized, digit-free words.
// The line is returned as written.
func nameStrictPass(text string) string {
	for _, line := range headLines(text, strictPassLines) {
		candidate := cleanNameCandidate(line)
		if candidate == "" || IsContactInfo(candidate) || containsBoilerplate(candidate) {
			continue
		}
		words := strings.Fields(candidate)
		if len(words) < 2 || len(words) > 6 {
			continue
		}
		if allWords(words, isCapitalizedWord) {
			return candidate
		}
	}
	return ""
}

// nameRelaxedPass accepts 1 to 6 words when at least one is capitalized or a name particle.
func nameRelaxedPass(text string) string {
	for _, line := range headLines(text, relaxedPassLines) {
		candidate := cleanNameCandidate(line)
		if candidate == "" || IsContactInfo(candidate) || containsBoilerplate(candidate) {
			continue
		}
		words := strings.Fields(candidate)
		if len(words) < 1 || len(words) > 6 {
			continue
		}
		for _, w := range words {
			if isCapitalizedWord(w) || isParticle(w) {
				return capitalizeWords(candidate)
			}
		}
	}
	return ""
}

// nameProximityPass looks at the two lines above the first lines carrying an email or phone.
func nameProximityPass(text string) string {
	lines := headLines(text, proximityPassLines)
	for i, line := range lines {
		if !emailPattern.MatchString(line) && !HasPhoneNumber(line) {
			continue
		}
		for j := max(0, i-2); j < i; j++ {
			candidate := cleanNameCandidate(lines[j])
			if candidate == "" || IsContactInfo(candidate) || containsBoilerplate(candidate) {
				continue
			}
			words := strings.Fields(candidate)
			if len(words) >= 2 && len(words) <= 6 && !digitPattern.MatchString(candidate) {
				return capitalizeWords(candidate)
			}
		}
	}
	return ""
}

// IsContactInfo reports whether a line carries an email, a phone number or a URL.
func IsContactInfo(line string) bool {
	return emailPattern.MatchString(line) || HasPhoneNumber(line) || urlPattern.MatchString(line)
}

// headLines returns at most n non-blank lines from the top of text.
func headLines(text string, n int) []string {
	lines := make([]string, 0, n)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == n {
			break
		}
	}
	return lines
}

func cleanNameCandidate(line string) string {
	s := strings.TrimSpace(line)
	s = fileExtensionPattern.ReplaceAllString(s, "")
	s = yearPattern.ReplaceAllString(s, "")
	s = lineCVKeywordPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

func containsBoilerplate(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range boilerplateWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// isCapitalizedWord: longer than one character, starts upper-case, no digits.
func isCapitalizedWord(w string) bool {
	if len(w) < 2 || digitPattern.MatchString(w) {
		return false
	}
	first := []rune(w)[0]
	return first >= 'A' && first <= 'Z'
}

func isParticle(w string) bool {
	_, ok := nameParticles[strings.ToLower(w)]
	return ok
}

func allWords(words []string, pred func(string) bool) bool {
	for _, w := range words {
		if !pred(w) {
			return false
		}
	}
	return true
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
