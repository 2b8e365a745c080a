package css

import (
	"fmt"
	"strings"
)

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= 0x80
}

func isNameChar(r rune) bool {
	return isNameStart(r) || r == '-' || (r >= '0' && r <= '9')
}

// IsIdent reports whether name could be used in a selector as is.
func IsIdent(name string) bool {
	if name == "" || name == "-" {
		return false
	}
	rest := strings.TrimPrefix(name, "-")
	if strings.HasPrefix(rest, "-") {
		// custom property style names are valid identifiers too
		rest = rest[1:]
		if rest == "" {
			return true
		}
	}
	for i, r := range rest {
		if i == 0 && !isNameStart(r) {
			return false
		}
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

// EscapeIdent serializes name as a CSS identifier, escaping characters which
// cannot appear in it literally.
func EscapeIdent(name string) string {
	if IsIdent(name) {
		return name
	}
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r == 0:
			sb.WriteRune('�')
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, "\\%x ", r)
		case r >= '0' && r <= '9' && (i == 0 || (i == 1 && name[0] == '-')):
			fmt.Fprintf(&sb, "\\%x ", r)
		case i == 0 && r == '-' && len(name) == 1:
			sb.WriteString("\\-")
		case isNameChar(r):
			sb.WriteRune(r)
		default:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
