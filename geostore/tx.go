package geostore

import (
	"fmt"
	"runtime/debug"
)

type Tx struct {
	db  *DB
	stx storageTx
}

func (tx *Tx) DB() *DB {
	return tx.db
}

func (tx *Tx) IsWritable() bool {
	return tx.stx.Writable()
}

// Size returns the database size as of this transaction.
func (tx *Tx) Size() int64 {
	return tx.stx.Size()
}

// Tx runs f in a transaction. A writable transaction is committed if f
// returns nil and rolled back otherwise. Panics inside f are returned as
// errors.
func (db *DB) Tx(writable bool, f func(tx *Tx) error) error {
	stx, err := db.stor.BeginTx(writable)
	if err != nil {
		return err
	}
	tx := &Tx{db: db, stx: stx}
	defer tx.rollback()

	if writable {
		db.WriteCount.Add(1)
	} else {
		db.ReadCount.Add(1)
	}

	if err := safelyCall(f, tx); err != nil {
		return err
	}
	if writable {
		return stx.Commit()
	}
	return nil
}

// Read runs f in a read-only transaction and panics on failure.
func (db *DB) Read(f func(tx *Tx)) {
	err := db.Tx(false, func(tx *Tx) error {
		f(tx)
		return nil
	})
	if err != nil {
		panic(fmt.Errorf("read: %w", err))
	}
}

// Write runs f in a writable transaction and panics on failure.
func (db *DB) Write(f func(tx *Tx)) {
	err := db.Tx(true, func(tx *Tx) error {
		f(tx)
		return nil
	})
	if err != nil {
		panic(fmt.Errorf("write: %w", err))
	}
}

func (tx *Tx) rollback() {
	ensure(tx.stx.Rollback())
}

func (tx *Tx) requireWritable() {
	if !tx.stx.Writable() {
		panic("write attempted in a read-only transaction")
	}
}

type panicked struct {
	reason any
	stack  string
}

func (p panicked) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", p.reason, p.stack)
}

func (p panicked) Unwrap() error {
	err, _ := p.reason.(error)
	return err
}

func safelyCall(fn func(*Tx) error, tx *Tx) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicked{p, string(debug.Stack())}
		}
	}()
	return fn(tx)
}
