package state

import (
	"errors"
	"fmt"
	"time"

	"csstweak/tweak"
	"csstweak/tweak/store"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

// Engine returns tweak engine opening configured store on first call.
func (e *LocalEnv) Engine() (*tweak.Engine, error) {
	if e.engine != nil {
		return e.engine, nil
	}
	if e.Cfg == nil {
		return nil, errors.New("configuration is not loaded")
	}
	st, err := store.Open(&e.Cfg.Store, e.Log)
	if err != nil {
		return nil, fmt.Errorf("unable to open tweaks store: %w", err)
	}
	e.store = st
	e.engine = tweak.NewEngine(e.Cfg, st, e.Log)
	return e.engine, nil
}

// Close releases resources opened on demand.
func (e *LocalEnv) Close() error {
	if e.store == nil {
		return nil
	}
	err := e.store.Close()
	e.store, e.engine = nil, nil
	return err
}
