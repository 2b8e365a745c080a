// Package css understands just enough of CSS to work with style declarations:
// "property:value;" lists as they are kept in style catalog and tweak ledgers.
package css

import (
	"strconv"
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "%fontsize%")
	Number  float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "bold", "italic", "center", etc.
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property  string
	Value     Value
	Important bool
}

func (d Declaration) String() string {
	var sb strings.Builder
	sb.WriteString(d.Property)
	sb.WriteByte(':')
	sb.WriteString(d.Value.Raw)
	if d.Important {
		sb.WriteString(" !important")
	}
	sb.WriteByte(';')
	return sb.String()
}

// Declarations is an ordered declaration list, later entries win.
type Declarations []Declaration

// Properties returns names of declared properties in order of their first
// appearance.
func (ds Declarations) Properties() []string {
	seen := make(map[string]struct{}, len(ds))
	names := make([]string, 0, len(ds))
	for _, d := range ds {
		if _, ok := seen[d.Property]; ok {
			continue
		}
		seen[d.Property] = struct{}{}
		names = append(names, d.Property)
	}
	return names
}

// Get returns effective value of the property.
func (ds Declarations) Get(property string) (Value, bool) {
	for i := len(ds) - 1; i >= 0; i-- {
		if ds[i].Property == property {
			return ds[i].Value, true
		}
	}
	return Value{}, false
}

// Shadowed returns properties of ds which are declared again by any of the
// later lists. With equal specificity later rules win, so these declarations
// have no effect. Importance is not considered.
func (ds Declarations) Shadowed(later ...Declarations) []string {
	var res []string
	for _, name := range ds.Properties() {
		for _, l := range later {
			if _, ok := l.Get(name); ok {
				res = append(res, name)
				break
			}
		}
	}
	return res
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 {
		return 0, ""
	}
	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}
