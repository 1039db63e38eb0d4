package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier or tag key for fuzzy comparison:
// "OwnerID", "owner_id", "owner-id" and "aws:owner:id" all normalize to
// "ownerid".
func NormalizeIdent(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '.', ':', '/':
		return true
	default:
		return false
	}
}
