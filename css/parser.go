package css

import (
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses declaration lists.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Declarations parses text as the body of a single rule. Surrounding braces
// are tolerated. Anything which is not a declaration is reported in warnings
// and skipped, so partially broken text still yields what could be
// understood.
func (p *Parser) Declarations(text string) (Declarations, []string) {
	var (
		decls    Declarations
		warnings []string
	)

	parser := css.NewParser(parse.NewInputString(StripBraces(text)), true)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err != io.EOF {
				warnings = append(warnings, "parse error: "+err.Error())
				p.log.Debug("CSS parse error", zap.String("text", text), zap.Error(err))
			}
			return decls, warnings

		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			values := parser.Values()
			if len(values) == 0 {
				warnings = append(warnings, "empty value for "+name)
				continue
			}
			val, important := p.parseValue(values)
			decls = append(decls, Declaration{Property: name, Value: val, Important: important})

		case css.CustomPropertyGrammar:
			// custom properties (--var) are passed through by renderer, nothing to analyze
			continue

		default:
			warnings = append(warnings, "unexpected "+gt.String()+": "+string(data))
			p.log.Debug("Skipping non-declaration", zap.Stringer("grammar", gt), zap.ByteString("data", data))
		}
	}
}

// parseValue converts CSS tokens to a Value, splitting off !important.
func (p *Parser) parseValue(tokens []css.Token) (Value, bool) {
	important := false
	if n := len(tokens); n >= 2 &&
		tokens[n-1].TokenType == css.IdentToken && strings.EqualFold(string(tokens[n-1].Data), "important") &&
		tokens[n-2].TokenType == css.DelimToken && string(tokens[n-2].Data) == "!" {
		important = true
		tokens = tokens[:n-2]
	}

	var sb strings.Builder
	significant := make([]css.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.Write(t.Data)
		significant = append(significant, t)
	}
	val := Value{Raw: strings.TrimSpace(sb.String())}

	if len(significant) != 1 {
		// multi-value and tokenized placeholders (%fontsize%) are kept as is
		val.Keyword = val.Raw
		return val, important
	}

	t := significant[0]
	switch t.TokenType {
	case css.DimensionToken:
		val.Number, val.Unit = parseDimension(string(t.Data))
	case css.PercentageToken:
		val.Number, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
		val.Unit = "%"
	case css.NumberToken:
		val.Number, _ = strconv.ParseFloat(string(t.Data), 64)
	case css.IdentToken:
		val.Keyword = strings.ToLower(string(t.Data))
	case css.StringToken:
		val.Keyword = unquote(string(t.Data))
	default:
		val.Keyword = val.Raw
	}
	return val, important
}

// StripBraces removes surrounding whitespace and a single pair of enclosing
// braces, if present.
func StripBraces(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "{")
	text = strings.TrimSuffix(text, "}")
	return strings.TrimSpace(text)
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
