// Package tweak ties style catalog, selector resolution, ledger, persistence
// and stylesheet synthesis together for a single open document.
package tweak

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"csstweak/config"
	"csstweak/tweak/catalog"
	"csstweak/tweak/selector"
	"csstweak/tweak/store"
	"csstweak/tweak/subst"
	"csstweak/tweak/synth"
)

// ErrPersistence is returned when mutation could not be saved. Ledger is left
// as it was before the mutation.
var ErrPersistence = errors.New("unable to save tweaks")

// Engine holds parts shared by all sessions. It is created once from
// configuration and never changes.
type Engine struct {
	Catalog  *catalog.Catalog
	Resolver *selector.Resolver
	Subst    *subst.Engine
	Synth    *synth.Synthesizer
	Store    store.Store

	reader config.ReaderConfig
	log    *zap.Logger
}

// NewEngine builds engine from configuration using provided store.
func NewEngine(cfg *config.Config, st store.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	engine := subst.New(subst.UnitsFrom(cfg.Units))
	return &Engine{
		Catalog:  catalog.New(cfg.Styles, log),
		Resolver: selector.New(cfg.Selection.ClassPolicy, log),
		Subst:    engine,
		Synth:    synth.New(engine),
		Store:    st,
		reader:   cfg.Reader,
		log:      log,
	}
}

// Defaults returns bindings for upper case placeholders.
func (e *Engine) Defaults() subst.Bindings {
	return subst.FromReader(e.reader)
}

// Live returns bindings for lower case placeholders. Settings absent from
// live are the same as defaults.
func (e *Engine) Live(live *config.LiveSettings) subst.Bindings {
	return subst.FromReader(live.Over(e.reader))
}

// Open starts session for the document loading its ledger. When stored ledger
// is corrupted session with empty ledger is returned together with the error
// (matching store.ErrCorruptStore), so caller could decide whether to go on.
func (e *Engine) Open(ctx context.Context, id uuid.UUID) (*Session, error) {
	s := &Session{
		engine: e,
		id:     id,
		log:    e.log.Named("session").With(zap.Stringer("document", id)),
	}
	l, err := e.Store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrCorruptStore) {
			return nil, fmt.Errorf("unable to open tweaks: %w", err)
		}
		s.corrupt = true
		return s, err
	}
	s.ledger = l
	s.log.Debug("Session opened", zap.Int("records", l.Len()))
	return s, nil
}
