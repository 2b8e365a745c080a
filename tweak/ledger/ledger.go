// Package ledger keeps ordered list of style overrides applied to a single
// document. Order is significant: later records win over earlier ones
// targeting the same selector, exactly as later CSS rules of equal
// specificity do.
package ledger

import (
	"errors"
	"slices"
)

// ErrEmptyLedger is returned when there is nothing to undo.
var ErrEmptyLedger = errors.New("no tweaks to undo")

// Record is a single override: declarations to be applied to the selector.
// Declarations are kept as they were at the time of application and may
// contain unresolved setting placeholders.
type Record struct {
	Selector     string `yaml:"selector"`
	Declarations string `yaml:"declarations"`
}

// Ledger is an immutable ordered list of records. Every operation returns a
// new value leaving the receiver intact, so previous state is always
// available for rollback. Zero value is an empty ledger.
type Ledger struct {
	records []Record
}

// New creates ledger from records in given order.
func New(records ...Record) Ledger {
	return Ledger{records: slices.Clone(records)}
}

// Len returns number of records.
func (l Ledger) Len() int {
	return len(l.records)
}

// IsEmpty reports whether ledger has no records.
func (l Ledger) IsEmpty() bool {
	return len(l.records) == 0
}

// Records returns copy of records in ledger order.
func (l Ledger) Records() []Record {
	return slices.Clone(l.records)
}

// Last returns the most recent record.
func (l Ledger) Last() (Record, bool) {
	if len(l.records) == 0 {
		return Record{}, false
	}
	return l.records[len(l.records)-1], true
}

// Apply appends record to the tail. Identical record already present is
// removed first, so re-applying a style promotes it over everything applied
// since.
func (l Ledger) Apply(r Record) Ledger {
	records := make([]Record, 0, len(l.records)+1)
	for _, old := range l.records {
		if old != r {
			records = append(records, old)
		}
	}
	return Ledger{records: append(records, r)}
}

// UndoLast drops the tail record.
func (l Ledger) UndoLast() (Ledger, error) {
	if len(l.records) == 0 {
		return l, ErrEmptyLedger
	}
	return Ledger{records: slices.Clone(l.records[:len(l.records)-1])}, nil
}

// UndoAll returns empty ledger.
func (l Ledger) UndoAll() Ledger {
	return Ledger{}
}

// BySelector returns records targeting given selector in ledger order.
func (l Ledger) BySelector(selector string) []Record {
	var res []Record
	for _, r := range l.records {
		if r.Selector == selector {
			res = append(res, r)
		}
	}
	return res
}

// Selectors returns distinct selectors in order of their first appearance.
func (l Ledger) Selectors() []string {
	var res []string
	for _, r := range l.records {
		if !slices.Contains(res, r.Selector) {
			res = append(res, r.Selector)
		}
	}
	return res
}

// Equal reports whether both ledgers hold the same records in the same order.
func (l Ledger) Equal(o Ledger) bool {
	return slices.Equal(l.records, o.records)
}
