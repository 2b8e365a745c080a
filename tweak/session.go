package tweak

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"csstweak/config"
	"csstweak/tweak/catalog"
	"csstweak/tweak/ledger"
	"csstweak/tweak/selector"
	"csstweak/utils/debug"
)

// Session owns ledger of a single document. In-memory ledger always matches
// stored one: every mutation is saved before it becomes visible and is
// discarded if saving fails. Session is not safe for concurrent use.
type Session struct {
	engine  *Engine
	id      uuid.UUID
	ledger  ledger.Ledger
	corrupt bool
	log     *zap.Logger
}

// ID returns document identity.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Ledger returns current ledger.
func (s *Session) Ledger() ledger.Ledger {
	return s.ledger
}

// Location describes where ledger is stored.
func (s *Session) Location() string {
	return s.engine.Store.Location(s.id)
}

// Corrupt reports whether stored ledger was unreadable when session was
// opened. It is replaced on the first successful mutation.
func (s *Session) Corrupt() bool {
	return s.corrupt
}

// Propose lists targets for the selection.
func (s *Session) Propose(sc selector.Context) (selector.Proposal, error) {
	return s.engine.Resolver.Propose(sc)
}

// Apply applies named style to the chosen candidate of the proposal and
// returns notification for the user.
func (s *Session) Apply(ctx context.Context, p selector.Proposal, choice int, style string) (string, error) {
	st, err := s.engine.Catalog.Lookup(style)
	if err != nil {
		return "", err
	}
	sel, err := s.engine.Resolver.Choose(p, choice)
	if err != nil {
		return "", err
	}
	return s.apply(ctx, sel, st)
}

// ApplyTo applies named style to the selector directly.
func (s *Session) ApplyTo(ctx context.Context, sel selector.Selector, style string) (string, error) {
	st, err := s.engine.Catalog.Lookup(style)
	if err != nil {
		return "", err
	}
	if sel.ClassName == "" {
		return "", selector.ErrNoClassAttribute
	}
	return s.apply(ctx, sel, st)
}

func (s *Session) apply(ctx context.Context, sel selector.Selector, st catalog.Style) (string, error) {
	// declarations are copied, later catalog changes do not affect the record
	rec := ledger.Record{Selector: sel.String(), Declarations: st.CSS}
	if err := s.commit(ctx, s.ledger.Apply(rec)); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("%s applied to %s", st.Name, rec.Selector)
	s.log.Info(msg, zap.Int("records", s.ledger.Len()))
	return msg, nil
}

// UndoLast removes the most recent tweak. On empty ledger
// ledger.ErrEmptyLedger is returned and nothing is saved.
func (s *Session) UndoLast(ctx context.Context) (ledger.Record, error) {
	last, ok := s.ledger.Last()
	next, err := s.ledger.UndoLast()
	if err != nil || !ok {
		return ledger.Record{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return ledger.Record{}, err
	}
	s.log.Info("Tweak undone", zap.String("selector", last.Selector), zap.Int("records", s.ledger.Len()))
	return last, nil
}

// UndoAll removes all tweaks and returns how many were removed.
func (s *Session) UndoAll(ctx context.Context) (int, error) {
	n := s.ledger.Len()
	if err := s.commit(ctx, s.ledger.UndoAll()); err != nil {
		return 0, err
	}
	s.log.Info("All tweaks undone", zap.Int("removed", n))
	return n, nil
}

// commit saves the new ledger and makes it current. Previous ledger stays
// current when saving fails. Unreadable stored ledger is put aside before it
// is replaced for the first time.
func (s *Session) commit(ctx context.Context, next ledger.Ledger) error {
	if s.corrupt {
		aside, err := s.engine.Store.Preserve(ctx, s.id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		if len(aside) > 0 {
			s.log.Warn("Unreadable tweaks kept aside", zap.String("location", aside))
		}
		s.corrupt = false
	}
	if err := s.engine.Store.Save(ctx, s.id, next); err != nil {
		s.log.Debug("Rolling back", zap.Int("records", s.ledger.Len()), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.ledger = next
	s.corrupt = false
	return nil
}

// Build synthesizes stylesheet for current ledger and live settings.
func (s *Session) Build(live *config.LiveSettings) string {
	return s.engine.Synth.Build(s.ledger, s.engine.Defaults(), s.engine.Live(live))
}

// String dumps session state for debugging.
func (s *Session) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Document %s (%d tweaks)", s.id, s.ledger.Len())
	tw.Line(1, "Location: %s", s.Location())
	if s.corrupt {
		tw.Line(1, "Stored tweaks are corrupted")
	}
	for i, r := range s.ledger.Records() {
		tw.Line(1, "Tweak[%d] selector=%q", i, r.Selector)
		tw.TextBlock(2, "Declarations", r.Declarations)
	}
	tw.List(1, "Selectors", s.ledger.Selectors())
	return tw.String()
}
