// Package subst resolves reader setting placeholders embedded in style
// declarations.
//
// Placeholder is a word enclosed in percent signs. Upper case words
// (%FONTSIZE%) refer to configured defaults, lower case ones (%fontsize%) to
// values currently in effect. Anything else, including mixed case spelling,
// is left alone.
package subst

import (
	"strconv"
	"strings"

	"csstweak/config"
)

// Token names a reader setting which could be referenced from declarations.
type Token string

const (
	FontSize   Token = "FONTSIZE"
	LineHeight Token = "LINEHEIGHT"
	TextAlign  Token = "TEXTALIGN"
)

// Bindings is a snapshot of setting values. Zero numbers and empty keyword
// mean the value is not bound, corresponding tokens are kept in the text.
type Bindings struct {
	FontSize   float64
	LineHeight float64
	TextAlign  string
}

// FromReader takes bindings from reader settings.
func FromReader(r config.ReaderConfig) Bindings {
	return Bindings{
		FontSize:   r.FontSize,
		LineHeight: r.LineHeight,
		TextAlign:  r.TextAlign.String(),
	}
}

// Units maps numeric tokens to the unit and precision they are rendered with.
type Units struct {
	FontSize   Unit
	LineHeight Unit
}

// Unit of a numeric value and number of decimals kept when rendering it.
type Unit struct {
	Name      string
	Precision int
}

// DefaultUnits is the unit table used when nothing else is configured.
var DefaultUnits = Units{
	FontSize:   Unit{Name: "pt", Precision: 1},
	LineHeight: Unit{Name: "em", Precision: 3},
}

// UnitsFrom builds unit table from configuration, precisions are kept from
// DefaultUnits.
func UnitsFrom(cfg config.UnitsConfig) Units {
	u := DefaultUnits
	if cfg.FontSize != "" {
		u.FontSize.Name = cfg.FontSize
	}
	if cfg.LineHeight != "" {
		u.LineHeight.Name = cfg.LineHeight
	}
	return u
}

// Engine performs substitution. It has no state besides the unit table and is
// safe for concurrent use.
type Engine struct {
	units Units
}

// New creates substitution engine with given unit table.
func New(units Units) *Engine {
	return &Engine{units: units}
}

// Resolve replaces placeholders in text. It never fails: unknown or unbound
// tokens pass through unchanged.
func (e *Engine) Resolve(text string, defaults, live Bindings) string {
	if strings.IndexByte(text, '%') < 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] != '%' {
			sb.WriteByte(text[i])
			i++
			continue
		}
		end := strings.IndexByte(text[i+1:], '%')
		if end < 0 {
			sb.WriteString(text[i:])
			break
		}
		word := text[i+1 : i+1+end]
		if value, ok := e.lookup(word, defaults, live); ok {
			sb.WriteString(value)
			i += end + 2
			continue
		}
		// closing percent may open the next token
		sb.WriteByte('%')
		i++
	}
	return sb.String()
}

func (e *Engine) lookup(word string, defaults, live Bindings) (string, bool) {
	var b Bindings
	switch word {
	case strings.ToUpper(word):
		b = defaults
	case strings.ToLower(word):
		b = live
	default:
		return "", false
	}
	switch Token(strings.ToUpper(word)) {
	case FontSize:
		return render(b.FontSize, e.units.FontSize)
	case LineHeight:
		return render(b.LineHeight, e.units.LineHeight)
	case TextAlign:
		if b.TextAlign == "" {
			return "", false
		}
		return strings.ToLower(b.TextAlign), true
	}
	return "", false
}

func render(v float64, u Unit) (string, bool) {
	if v == 0 {
		return "", false
	}
	return FormatNumber(v, u.Precision) + u.Name, true
}

// FormatNumber renders v with at most precision decimals, dropping trailing
// zeros.
func FormatNumber(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
