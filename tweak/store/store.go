// Package store keeps per-document ledgers outside of documents themselves.
//
// Ledgers are kept as YAML lists of {selector, declarations} either in
// separate sidecar files, one per document, or in a single SQLite database.
// Documents are identified by their content, so moving a book around the
// library does not lose its tweaks.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"csstweak/common"
	"csstweak/config"
	"csstweak/tweak/ledger"
)

// ErrCorruptStore is returned together with an empty ledger when stored data
// cannot be understood. Stored data is left as is.
var ErrCorruptStore = errors.New("stored tweaks are corrupted")

// Store loads and saves ledgers.
type Store interface {
	// Load returns ledger for the document, empty ledger when nothing was
	// saved yet.
	Load(ctx context.Context, id uuid.UUID) (ledger.Ledger, error)
	// Save replaces stored ledger atomically.
	Save(ctx context.Context, id uuid.UUID, l ledger.Ledger) error
	// Location describes where document's ledger is kept.
	Location(id uuid.UUID) string
	// Preserve keeps a copy of currently stored data aside, so unreadable
	// ledger survives being replaced. It returns where the copy went, empty
	// when there was nothing to keep.
	Preserve(ctx context.Context, id uuid.UUID) (string, error)
	Close() error
}

// Open creates store according to configuration.
func Open(cfg *config.StoreConfig, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Backend {
	case common.StoreBackendFile:
		return NewFileStore(cfg.Directory, log)
	case common.StoreBackendDatabase:
		return OpenDatabase(cfg.Database, log)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}
}

// Encode serializes ledger records in order.
func Encode(l ledger.Ledger) ([]byte, error) {
	records := l.Records()
	if records == nil {
		records = []ledger.Record{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("unable to encode ledger: %w", err)
	}
	return data, nil
}

// Decode restores ledger from its serialized form. Empty input is an empty
// ledger. Anything not looking like a complete list of records is reported
// as ErrCorruptStore.
func Decode(data []byte) (ledger.Ledger, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ledger.Ledger{}, nil
	}

	var records []ledger.Record
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&records); err != nil {
		return ledger.Ledger{}, fmt.Errorf("%w: %w", ErrCorruptStore, err)
	}
	for i, r := range records {
		if !strings.HasPrefix(r.Selector, ".") || len(r.Selector) < 2 {
			return ledger.Ledger{}, fmt.Errorf("%w: record %d has bad selector %q", ErrCorruptStore, i, r.Selector)
		}
		if len(strings.TrimSpace(r.Declarations)) == 0 {
			return ledger.Ledger{}, fmt.Errorf("%w: record %d has no declarations", ErrCorruptStore, i)
		}
	}
	return ledger.New(records...), nil
}
