package schema

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKey converts a free-text identity label into its canonical lookup
// form: lowercased, accent-stripped, reduced to letters, digits, '@', '.',
// '_', '-' and whitespace, with whitespace runs collapsed to single spaces.
// The aggregator index and the matcher share this exact form.
func NormalizeKey(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range norm.NFKD.String(lower) {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark from decomposition
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '@' || r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.TrimSpace(strings.Join(strings.Fields(b.String()), " "))
}

// EmailLocalKey returns the normalized local part of an email-like label.
// ok is false when the label has no '@'.
func EmailLocalKey(label string) (key string, ok bool) {
	at := strings.Index(label, "@")
	if at < 0 {
		return "", false
	}
	return NormalizeKey(label[:at]), true
}

// ParentheticalKey returns the normalized contents of the first parenthetical
// group in a label, e.g. "Maria Silva (maria.silva)" -> "maria.silva".
// ok is false when the label has no complete parenthetical group.
func ParentheticalKey(label string) (key string, ok bool) {
	open := strings.Index(label, "(")
	if open < 0 {
		return "", false
	}
	rest := label[open+1:]
	closing := strings.Index(rest, ")")
	if closing < 0 {
		return "", false
	}
	return NormalizeKey(rest[:closing]), true
}

// FormatMinutes renders a fractional minutes value as a zero-padded "mm:ss"
// display string. Nil and NaN inputs render as the "00:00" placeholder.
// Evaluation records store these formatted strings, so the format is fixed.
func FormatMinutes(minutes *float64) string {
	if minutes == nil || math.IsNaN(*minutes) {
		return "00:00"
	}
	whole := int(*minutes)
	secs := int(math.Round((*minutes - float64(whole)) * 60))
	if secs == 60 {
		whole++
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", whole, secs)
}

// GradeForScore maps a final 0-10 grade to its qualitative band.
// A nil grade maps to UnknownGrade.
func GradeForScore(grade *float64) GradeLabel {
	switch {
	case grade == nil || math.IsNaN(*grade):
		return UnknownGrade
	case *grade >= 9.0:
		return ExcellentGrade
	case *grade >= 8.0:
		return VeryGoodGrade
	case *grade >= 7.0:
		return GoodGrade
	case *grade >= 6.0:
		return RegularGrade
	default:
		return MustImproveGrade
	}
}

// StarsForScore mirrors the grade bands as a 1-5 star rating.
// Nil or sub-6.0 grades earn a single star.
func StarsForScore(grade *float64) int {
	switch {
	case grade == nil || math.IsNaN(*grade):
		return 1
	case *grade >= 9.0:
		return 5
	case *grade >= 8.0:
		return 4
	case *grade >= 7.0:
		return 3
	case *grade >= 6.0:
		return 2
	default:
		return 1
	}
}

// StarString renders a star count for display, e.g. 3 -> "★★★☆☆".
func StarString(stars int) string {
	if stars < 1 {
		stars = 1
	}
	if stars > 5 {
		stars = 5
	}
	return strings.Repeat("★", stars) + strings.Repeat("☆", 5-stars)
}
