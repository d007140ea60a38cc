package ingestion

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	structuralKeywordPattern = regexp.MustCompile(`\b(?:obj|endobj|stream|endstream|xref|trailer|startxref)\b`)
	typeEntryPattern         = regexp.MustCompile(`/Type\s*/\w+`)
	lengthEntryPattern       = regexp.MustCompile(`/Length\s*\d+`)
	metadataLabelPattern     = regexp.MustCompile(`(?i)\b(?:Creator|Producer|CreationDate|ModDate|Encoding|BaseFont|Subtype):`)
	fontNamePattern          = regexp.MustCompile(`/(?:Font|FontDescriptor|FontName|FontFile2?|Encoding|BaseFont|Subtype|ProcSet|Resources|MediaBox|Contents|Parent|Kids|Count|Filter|FlateDecode)\b`)
	producerPattern          = regexp.MustCompile(`Skia/PDF(?:\s+m\d+)?|Google Docs Renderer|Adobe Identity Adobe|%?PDF-\d\.\d`)

	horizontalSpacePattern = regexp.MustCompile(`[ \t]+`)
	excessNewlinePattern   = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText converts raw decoder output into clean text: PDF string escapes are
// decoded and the result goes through CleanText.
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}
	return CleanText(DecodeEscapes(raw))
}

// CleanText removes non-printable characters and leaked PDF structure tokens from text
// and collapses whitespace. Lines are preserved.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF -> LF)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// 2. Printable ASCII only
	text = foldToASCII(text)

	// 3. PDF structure leaking through content streams
	text = stripArtifacts(text)

	// 4. Whitespace
	return collapseWhitespace(text)
}

// DecodeEscapes resolves PDF literal-string escapes. Unknown escapes keep the
// escaped character and drop the backslash; a backslash before a line break is
// a line continuation and is removed with the break.
func DecodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' || i == len(runes)-1 {
			b.WriteRune(r)
			continue
		}

		i++
		switch next := runes[i]; next {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '(', ')', '\\':
			b.WriteRune(next)
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			if isOctal(next) {
				code := int(next - '0')
				for n := 1; n < 3 && i+1 < len(runes) && isOctal(runes[i+1]); n++ {
					i++
					code = code*8 + int(runes[i]-'0')
				}
				b.WriteRune(rune(code & 0xFF))
				continue
			}
			b.WriteRune(next)
		}
	}
	return b.String()
}

func isOctal(r rune) bool {
	return r >= '0' && r <= '7'
}

// foldToASCII decomposes accented letters, drops combining marks and then keeps
// only printable ASCII plus newline and tab.
func foldToASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFKD.String(s) {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case unicode.Is(unicode.Mn, r):
		case r >= 0x20 && r < 0x7F:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripArtifacts(s string) string {
	for _, re := range []*regexp.Regexp{
		producerPattern,
		typeEntryPattern,
		lengthEntryPattern,
		metadataLabelPattern,
		fontNamePattern,
		structuralKeywordPattern,
	} {
		s = re.ReplaceAllString(s, " ")
	}
	return s
}

// collapseWhitespace collapses horizontal runs to one space, trims every line and
// keeps at most one blank line between paragraphs.
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpacePattern.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")
	s = excessNewlinePattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
