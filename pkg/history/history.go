// Package history keeps a local log of video generations in BadgerDB.
//
// Key layout:
//
//	gen:{ts_ns}  → msgpack-encoded Record
//	id:{uuid}    → gen key (reverse index)
//
// The nanosecond timestamp is zero-padded so that lexicographic key order
// matches chronological order.
package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("history: record not found")

// Status values stored in Record.Status.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

const (
	genPrefix = "gen:"
	idPrefix  = "id:"
	tsWidth   = 19
)

// Record describes a single generate invocation.
type Record struct {
	ID          string    `json:"id" msgpack:"id"`
	CreatedAt   time.Time `json:"created_at" msgpack:"created_at"`
	Prompt      string    `json:"prompt" msgpack:"prompt"`
	Model       string    `json:"model" msgpack:"model"`
	AspectRatio string    `json:"aspect_ratio,omitempty" msgpack:"aspect_ratio,omitempty"`
	Duration    string    `json:"duration,omitempty" msgpack:"duration,omitempty"`
	Status      string    `json:"status" msgpack:"status"`
	ErrorKind   string    `json:"error_kind,omitempty" msgpack:"error_kind,omitempty"`
	StatusCode  int       `json:"status_code,omitempty" msgpack:"status_code,omitempty"`
	Bytes       int64     `json:"bytes,omitempty" msgpack:"bytes,omitempty"`
	Output      string    `json:"output,omitempty" msgpack:"output,omitempty"`
	ElapsedMS   int64     `json:"elapsed_ms,omitempty" msgpack:"elapsed_ms,omitempty"`
}

// Options configures Open.
type Options struct {
	// Dir is the BadgerDB data directory. Required unless InMemory is set.
	Dir string

	// InMemory runs BadgerDB without disk persistence.
	InMemory bool

	// Logger receives badger warnings and errors. Defaults to slog.Default().
	Logger *slog.Logger
}

// Store is a generation history backed by BadgerDB.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the history database.
func Open(opts Options) (*Store, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("history: Options.Dir is required for on-disk mode")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dbOpts := badger.DefaultOptions(opts.Dir).WithLogger(badgerLogger{logger})
	if opts.InMemory {
		dbOpts = dbOpts.WithDir("").WithValueDir("").WithInMemory(true)
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores rec. A missing ID or CreatedAt is filled in, and the stored
// record is returned.
func (s *Store) Add(_ context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	val, err := msgpack.Marshal(&rec)
	if err != nil {
		return Record{}, fmt.Errorf("history: encode: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		key := genKey(rec.CreatedAt)
		// Nanosecond collisions are possible on coarse clocks.
		for {
			if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
				break
			} else if err != nil {
				return err
			}
			rec.CreatedAt = rec.CreatedAt.Add(time.Nanosecond)
			key = genKey(rec.CreatedAt)
		}
		if err := txn.Set(key, val); err != nil {
			return err
		}
		return txn.Set(idKey(rec.ID), key)
	})
	if err != nil {
		return Record{}, fmt.Errorf("history: add: %w", err)
	}
	return rec, nil
}

// Get returns the record with the given ID.
func (s *Store) Get(_ context.Context, id string) (Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		key, err := lookup(txn, id)
		if err != nil {
			return err
		}
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("history: get %s: %w", id, err)
	}
	return rec, nil
}

// List returns up to limit records, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	var out []Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(genPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := append([]byte(genPrefix), 0xff)
		for it.Seek(seek); it.ValidForPrefix(opts.Prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, rec)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	return out, nil
}

// Delete removes the record with the given ID.
func (s *Store) Delete(_ context.Context, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key, err := lookup(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete(idKey(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("history: delete %s: %w", id, err)
	}
	return nil
}

func lookup(txn *badger.Txn, id string) ([]byte, error) {
	item, err := txn.Get(idKey(id))
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func genKey(t time.Time) []byte {
	ts := strconv.FormatInt(t.UnixNano(), 10)
	key := make([]byte, 0, len(genPrefix)+tsWidth)
	key = append(key, genPrefix...)
	for i := len(ts); i < tsWidth; i++ {
		key = append(key, '0')
	}
	return append(key, ts...)
}

func idKey(id string) []byte {
	return []byte(idPrefix + id)
}

// badgerLogger routes badger output to slog, dropping info and debug noise.
type badgerLogger struct {
	l *slog.Logger
}

func (b badgerLogger) Errorf(f string, v ...any) {
	b.l.Error(fmt.Sprintf("badger: "+f, v...))
}

func (b badgerLogger) Warningf(f string, v ...any) {
	b.l.Warn(fmt.Sprintf("badger: "+f, v...))
}

func (badgerLogger) Infof(string, ...any)  {}
func (badgerLogger) Debugf(string, ...any) {}
