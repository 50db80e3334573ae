package plate

import (
	"regexp"
	"strings"
	"unicode"

	apperrors "siscav/internal/errors"
)

var (
	// Legacy format keeps the visual hyphen: 3 letters, hyphen, 4 digits.
	legacyFormat = regexp.MustCompile(`^[A-Z]{3}-[0-9]{4}$`)
	// Mercosul format: 3 letters, 1 digit, 1 letter, 2 digits.
	mercosulFormat = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// Normalize converts a raw plate string to its canonical form: every
// non-alphanumeric character stripped, the remainder uppercased. The canonical
// form is the sole key used for whitelist matching, so OCR reads like
// "abc 1234" and operator input like "ABC-1234" compare equal.
//
// Returns ErrEmptyPlate when raw is empty, whitespace-only, or has no
// alphanumeric characters left after stripping.
func Normalize(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apperrors.ErrEmptyPlate
	}

	var b strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}

	normalized := b.String()
	if normalized == "" {
		return "", apperrors.ErrEmptyPlate
	}
	return normalized, nil
}

// ValidateFormat reports whether a raw plate string follows one of the two
// accepted Brazilian grammars. The check runs against the raw representation
// (trimmed and uppercased): the legacy format requires the hyphen
// ("ABC-1234"), the Mercosul format has none ("ABC1D23"). "ABC1234" is
// therefore rejected even though it is a valid normalized form.
//
// Validation is intentionally separate from Normalize: access-attempt
// recording normalizes without validating, so imperfect OCR reads still get a
// whitelist lookup; only whitelist writes enforce the strict format.
func ValidateFormat(raw string) bool {
	s := strings.ToUpper(strings.TrimSpace(raw))
	return legacyFormat.MatchString(s) || mercosulFormat.MatchString(s)
}
