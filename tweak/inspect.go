package tweak

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gobwas/glob"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"csstweak/config"
	"csstweak/css"
	"csstweak/tweak/selector"
	"csstweak/tweak/subst"
)

//go:embed inspect.tmpl
var inspectTmpl string

var inspectTemplate = template.Must(template.New("inspect").Funcs(sprig.FuncMap()).Parse(inspectTmpl))

// InspectOptions controls what goes into the report.
type InspectOptions struct {
	// Filter is a glob selectors should match (".para*", "*title*"),
	// empty means everything.
	Filter string
	// Selection optionally describes current selection.
	Selection *SelectionReport
	Live      *config.LiveSettings
}

// SelectionReport describes targets proposed for selection.
type SelectionReport struct {
	Path       string
	Text       string // text of the selected element
	Candidates []selector.Candidate
	Ambiguous  bool
}

// SelectorReport counts tweaks of a selector.
type SelectorReport struct {
	Selector string
	Count    int
}

// RecordReport describes single ledger record.
type RecordReport struct {
	Index    int
	Selector string
	Raw      string
	Resolved string
	// Shadowed lists properties redeclared by later records for the same
	// selector, so this record has no effect on them.
	Shadowed []string
}

// StyleReport describes catalog style.
type StyleReport struct {
	Name string
	Slug string
	CSS  string
}

// Report is what inspect command shows.
type Report struct {
	Document  string
	ID        string
	Location  string
	Corrupt   bool
	Filter    string
	Selection *SelectionReport
	Defaults  subst.Bindings
	Live      subst.Bindings
	Selectors []SelectorReport
	Records   []RecordReport
	Styles    []StyleReport
}

// Inspect describes session state.
func (s *Session) Inspect(document string, opts InspectOptions) (*Report, error) {
	match := func(string) bool { return true }
	if len(opts.Filter) > 0 {
		g, err := glob.Compile(opts.Filter)
		if err != nil {
			return nil, fmt.Errorf("bad selector filter %q: %w", opts.Filter, err)
		}
		match = g.Match
	}

	rpt := &Report{
		Document:  document,
		ID:        s.id.String(),
		Location:  s.Location(),
		Corrupt:   s.corrupt,
		Filter:    opts.Filter,
		Selection: opts.Selection,
		Defaults:  s.engine.Defaults(),
		Live:      s.engine.Live(opts.Live),
	}

	parser := css.NewParser(s.log)
	records := s.ledger.Records()
	parsed := make([]css.Declarations, len(records))
	for i, r := range records {
		var warnings []string
		if parsed[i], warnings = parser.Declarations(r.Declarations); len(warnings) > 0 {
			s.log.Debug("Tweak declarations have problems", zap.Int("index", i), zap.Strings("warnings", warnings))
		}
	}

	counts := make(map[string]int)
	for i, r := range records {
		if !match(r.Selector) {
			continue
		}
		counts[r.Selector]++

		var later []css.Declarations
		for j := i + 1; j < len(records); j++ {
			if records[j].Selector == r.Selector {
				later = append(later, parsed[j])
			}
		}
		rpt.Records = append(rpt.Records, RecordReport{
			Index:    i,
			Selector: r.Selector,
			Raw:      r.Declarations,
			Resolved: s.engine.Subst.Resolve(r.Declarations, rpt.Defaults, rpt.Live),
			Shadowed: parsed[i].Shadowed(later...),
		})
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	for _, name := range names {
		rpt.Selectors = append(rpt.Selectors, SelectorReport{Selector: name, Count: counts[name]})
	}

	for _, st := range s.engine.Catalog.Styles() {
		rpt.Styles = append(rpt.Styles, StyleReport{Name: st.Name, Slug: st.Slug(), CSS: st.CSS})
	}
	return rpt, nil
}

// Render writes report in human readable form.
func (r *Report) Render(w io.Writer) error {
	if err := inspectTemplate.Execute(w, r); err != nil {
		return fmt.Errorf("unable to render report: %w", err)
	}
	return nil
}
