package geostore

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.etcd.io/bbolt"
)

type DB struct {
	stor    storage
	bdb     *bbolt.DB
	schema  *Schema
	logf    func(format string, args ...any)
	verbose bool

	ReadCount  atomic.Uint64
	WriteCount atomic.Uint64
}

type Options struct {
	// Logf receives verbose operation logs. Defaults to slog at debug level.
	Logf      func(format string, args ...any)
	Verbose   bool
	IsTesting bool
	MmapSize  int
}

// Open opens or creates a Bolt database at path.
func Open(path string, schema *Schema, opt Options) (*DB, error) {
	bopt := *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
		bopt.InitialMmapSize = 1024 * 1024 * 5
	} else {
		bopt.InitialMmapSize = 1024 * 1024 * 1024
		bopt.FreelistType = bbolt.FreelistMapType
	}
	if opt.MmapSize != 0 {
		bopt.InitialMmapSize = opt.MmapSize
	}

	bdb, err := bbolt.Open(path, 0666, &bopt)
	if err != nil {
		return nil, fmt.Errorf("geostore: %w", err)
	}
	db, err := open(newBoltStorage(bdb), schema, opt)
	if err != nil {
		bdb.Close()
		return nil, err
	}
	db.bdb = bdb
	return db, nil
}

// OpenMemory returns a DB that lives only in memory, for tests and
// short-lived indexes.
func OpenMemory(schema *Schema, opt Options) (*DB, error) {
	return open(newMemStorage(), schema, opt)
}

func open(stor storage, schema *Schema, opt Options) (*DB, error) {
	logf := opt.Logf
	if logf == nil {
		logf = func(format string, args ...any) {
			slog.Debug(fmt.Sprintf(format, args...))
		}
	}
	db := &DB{
		stor:    stor,
		schema:  schema,
		logf:    logf,
		verbose: opt.Verbose,
	}
	err := db.Tx(true, func(tx *Tx) error {
		for _, tbl := range schema.tables {
			for _, sub := range []string{dataBucket, cellsBucket} {
				if _, err := tx.stx.CreateBucket(tbl.Name(), sub); err != nil {
					return fmt.Errorf("creating %s/%s: %w", tbl.Name(), sub, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("geostore: %w", err)
	}
	return db, nil
}

// Bolt returns the underlying Bolt database, or nil for an in-memory DB.
func (db *DB) Bolt() *bbolt.DB {
	return db.bdb
}

func (db *DB) Schema() *Schema {
	return db.schema
}

func (db *DB) Close() {
	err := db.stor.Close()
	if err != nil {
		panic(fmt.Errorf("geostore: closing: %w", err))
	}
}
