package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"csstweak/tweak/ledger"
)

const schema = `
CREATE TABLE IF NOT EXISTS tweaks (
	id      TEXT PRIMARY KEY,
	ledger  TEXT NOT NULL,
	updated INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS tweaks_corrupt (
	id      TEXT NOT NULL,
	ledger  TEXT NOT NULL,
	stamp   INTEGER NOT NULL
);
`

// DatabaseStore keeps all ledgers in a single SQLite database, one row per
// document.
type DatabaseStore struct {
	mu   sync.Mutex
	conn *sqlite.Conn
	path string
	log  *zap.Logger
}

// OpenDatabase opens (creating if necessary) database file.
func OpenDatabase(path string, log *zap.Logger) (*DatabaseStore, error) {
	if len(path) == 0 {
		return nil, errors.New("store database is not specified")
	}
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("unable to open store database %s: %w", path, err)
	}
	for _, pragma := range []string{"PRAGMA synchronous=NORMAL", "PRAGMA busy_timeout=5000"} {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			conn.Close()
			return nil, fmt.Errorf("store database %s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare store database schema: %w", err)
	}

	log = log.Named("store")
	log.Debug("Store database opened", zap.String("path", path))
	return &DatabaseStore{conn: conn, path: path, log: log}, nil
}

// Location returns database path and row key.
func (s *DatabaseStore) Location(id uuid.UUID) string {
	return s.path + "#" + id.String()
}

func (s *DatabaseStore) Load(ctx context.Context, id uuid.UUID) (ledger.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ledger.Ledger{}, err
	}
	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)

	var (
		data  []byte
		found bool
	)
	err := sqlitex.Execute(s.conn, `SELECT ledger FROM tweaks WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				data = []byte(stmt.ColumnText(0))
				found = true
				return nil
			},
		})
	if err != nil {
		return ledger.Ledger{}, fmt.Errorf("unable to load ledger %s: %w", id, err)
	}
	if !found {
		s.log.Debug("No stored ledger, starting with empty one", zap.Stringer("id", id))
		return ledger.Ledger{}, nil
	}

	l, err := Decode(data)
	if err != nil {
		s.log.Warn("Stored ledger is corrupted, ignoring", zap.Stringer("id", id), zap.Error(err))
		return ledger.Ledger{}, fmt.Errorf("ledger %s: %w", id, err)
	}
	s.log.Debug("Ledger loaded", zap.Stringer("id", id), zap.Int("records", l.Len()))
	return l, nil
}

func (s *DatabaseStore) Save(ctx context.Context, id uuid.UUID, l ledger.Ledger) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(l)
	if err != nil {
		return err
	}

	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)
	defer sqlitex.Save(s.conn)(&err)

	err = sqlitex.Execute(s.conn,
		`INSERT INTO tweaks (id, ledger, updated) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET ledger = excluded.ledger, updated = excluded.updated`,
		&sqlitex.ExecOptions{
			Args: []any{id.String(), string(data), time.Now().Unix()},
		})
	if err != nil {
		return fmt.Errorf("unable to save ledger %s: %w", id, err)
	}
	s.log.Debug("Ledger saved", zap.Stringer("id", id), zap.Int("records", l.Len()))
	return nil
}

// Preserve copies stored row into tweaks_corrupt table.
func (s *DatabaseStore) Preserve(ctx context.Context, id uuid.UUID) (_ string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)
	defer sqlitex.Save(s.conn)(&err)

	err = sqlitex.Execute(s.conn,
		`INSERT INTO tweaks_corrupt (id, ledger, stamp) SELECT id, ledger, ? FROM tweaks WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{time.Now().UnixNano(), id.String()},
		})
	if err != nil {
		return "", fmt.Errorf("unable to preserve ledger %s: %w", id, err)
	}
	if s.conn.Changes() == 0 {
		return "", nil
	}
	where := s.path + "#tweaks_corrupt/" + id.String()
	s.log.Info("Unreadable ledger preserved", zap.String("location", where))
	return where, nil
}

// Close closes database connection.
func (s *DatabaseStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
