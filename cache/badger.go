package cache

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/miguelAagelcruzvargas/sara-intent/semantic"
)

// DefaultKey is the storage key used by the key-value backends.
const DefaultKey = "sara:embeddings"

// Badger stores the index in an embedded BadgerDB, for hosts that already
// keep other state there.
type Badger struct {
	db  *badger.DB
	key []byte
}

// BadgerOptions configures the Badger cache.
type BadgerOptions struct {
	// Dir is the BadgerDB data directory. Required unless InMemory is set.
	Dir string

	// InMemory runs BadgerDB without disk persistence. Useful for tests.
	InMemory bool

	// Key overrides DefaultKey.
	Key string

	// Logger receives badger's warnings and errors. Nil silences them.
	Logger *zap.Logger
}

// NewBadger opens a BadgerDB-backed cache.
func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("cache: BadgerOptions.Dir is required for on-disk mode")
	}
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	dbOpts := badger.DefaultOptions(opts.Dir).WithLogger(badgerLogger{opts.Logger.Sugar()})
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger cache: %w", err)
	}
	return &Badger{db: db, key: []byte(opts.Key)}, nil
}

// Load reads the entry. A missing key is ErrMiss.
func (b *Badger) Load(_ context.Context, corpusHash string) (*semantic.Index, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding cache: %w", err)
	}
	return Decode(data, corpusHash)
}

// Save replaces the entry.
func (b *Badger) Save(_ context.Context, ix *semantic.Index, corpusHash string) error {
	data, err := Encode(ix, corpusHash)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key, data)
	})
}

// Close releases the database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// badgerLogger forwards badger's warnings and errors to zap and drops the
// chatty levels.
type badgerLogger struct {
	log *zap.SugaredLogger
}

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.log.Errorf("badger: "+f, v...) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.log.Warnf("badger: "+f, v...) }
func (l badgerLogger) Infof(string, ...interface{})        {}
func (l badgerLogger) Debugf(string, ...interface{})       {}
