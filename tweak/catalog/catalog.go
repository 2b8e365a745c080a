// Package catalog holds named styles user may apply to document elements.
// Catalog is built once from configuration and never changes afterwards.
package catalog

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"csstweak/config"
	"csstweak/css"
)

// ErrUnknownStyle is returned when requested style is not in the catalog.
var ErrUnknownStyle = errors.New("unknown style")

// Style is a named set of declarations. Declarations are normalized: no
// surrounding whitespace or braces.
type Style struct {
	Name string
	CSS  string
}

// Catalog is immutable ordered set of styles.
type Catalog struct {
	styles []Style
	byName map[string]int
	bySlug map[string]int
}

// New builds catalog from configured styles. Styles without declarations are
// not offered. Declarations are checked with CSS parser and problems are
// logged, such styles are still kept since renderer may understand more than
// we do.
func New(styles []config.StyleConfig, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("catalog")
	parser := css.NewParser(log)

	c := &Catalog{
		byName: make(map[string]int, len(styles)),
		bySlug: make(map[string]int, len(styles)),
	}
	for _, s := range styles {
		text := css.StripBraces(s.CSS)
		if len(text) == 0 {
			log.Debug("Skipping style without declarations", zap.String("style", s.Name))
			continue
		}
		if _, exists := c.byName[s.Name]; exists {
			log.Warn("Duplicate style name, ignoring", zap.String("style", s.Name))
			continue
		}
		if _, warnings := parser.Declarations(text); len(warnings) > 0 {
			log.Warn("Style declarations have problems", zap.String("style", s.Name), zap.Strings("warnings", warnings))
		}

		idx := len(c.styles)
		c.styles = append(c.styles, Style{Name: s.Name, CSS: text})
		c.byName[s.Name] = idx
		if key := slug.Make(s.Name); len(key) > 0 {
			if _, exists := c.bySlug[key]; !exists {
				c.bySlug[key] = idx
			}
		}
	}
	log.Debug("Style catalog ready", zap.Int("styles", len(c.styles)))
	return c
}

// Len returns number of styles.
func (c *Catalog) Len() int {
	return len(c.styles)
}

// Styles returns all styles in configuration order.
func (c *Catalog) Styles() []Style {
	return append([]Style(nil), c.styles...)
}

// Names returns style names in configuration order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.styles))
	for _, s := range c.styles {
		names = append(names, s.Name)
	}
	return names
}

// Lookup finds style by its exact name or by the name's slug, so
// "opening-paragraph" finds "Opening paragraph".
func (c *Catalog) Lookup(name string) (Style, error) {
	if idx, ok := c.byName[name]; ok {
		return c.styles[idx], nil
	}
	if idx, ok := c.bySlug[slug.Make(name)]; ok {
		return c.styles[idx], nil
	}
	return Style{}, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

// Slug returns identifier of the style suitable for command line use.
func (s Style) Slug() string {
	return slug.Make(s.Name)
}
