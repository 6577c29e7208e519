package parser

import (
	"strings"
)

// NormalizeStudentID turns a raw student id cell into its integer text form.
// The value must be all digits once at most one decimal point is removed
// ("7", "7.0", "12.5"); the fractional part is dropped and leading zeros are
// trimmed. Arabic-Indic digits are accepted and rewritten as ASCII.
// Anything else yields ok == false. Raw cell values do not say whether a
// fractional id was typed as text or as a number, so both are truncated.
func NormalizeStudentID(raw string) (string, bool) {
	intPart, frac, _ := strings.Cut(raw, ".")

	ascii, ok := asciiDigits(intPart)
	if !ok {
		return "", false
	}
	if _, ok := asciiDigits(frac); !ok {
		return "", false
	}
	if ascii == "" && frac == "" {
		return "", false
	}

	ascii = strings.TrimLeft(ascii, "0")
	if ascii == "" {
		ascii = "0"
	}
	return ascii, true
}

// NormalizeNationalID trims raw and drops one trailing ".0", which is how a
// whole-number id stored as a float comes back.
func NormalizeNationalID(raw string) string {
	id := strings.TrimSpace(raw)
	return strings.TrimSuffix(id, ".0")
}

// ValidNationalID reports whether a normalized national id can be used in a key.
// Blank ids and the text "nan" are rejected.
func ValidNationalID(id string) bool {
	return id != "" && id != "nan"
}

// asciiDigits maps every rune of s to an ASCII digit. It fails on any
// non-digit rune. The empty string is accepted.
func asciiDigits(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		default:
			return "", false
		}
	}
	return b.String(), true
}
