package geostore

import (
	"bytes"

	"github.com/andreyvit/geocell"
)

type tableBuckets struct {
	data  storageBucket
	cells storageBucket
}

func buckets[T any](tx *Tx, tbl *Table[T]) tableBuckets {
	return tableBuckets{
		data:  nonNil(tx.stx.Bucket(tbl.name, dataBucket)),
		cells: nonNil(tx.stx.Bucket(tbl.name, cellsBucket)),
	}
}

// Put inserts or replaces row, and re-indexes it under the cells of its
// current point. Rewriting an unchanged row is a no-op.
func Put[T any](tx *Tx, tbl *Table[T], row *T) {
	tx.requireWritable()
	b := buckets(tx, tbl)
	key := tbl.rowKey(row)
	cells := geocell.EncodeAll(tbl.pointOf(row))

	var old value
	oldRaw := b.data.Get(key)
	if oldRaw != nil {
		if err := old.decode(oldRaw); err != nil {
			panic(tableErrf(tbl.name, key, err, "decoding old value"))
		}
		// Bolt may remap its pages on write, so keep our own copies.
		old.Data = bytes.Clone(old.Data)
		old.Cells = bytes.Clone(old.Cells)
	}

	vle := value{
		Flags:    vfDefault,
		ModCount: old.ModCount,
		Data:     encodeRow(nil, row),
		Cells:    appendCellKeys(nil, cells),
	}
	isDataUnchanged := bytes.Equal(vle.Data, old.Data)
	isCellSetUnchanged := bytes.Equal(vle.Cells, old.Cells)
	if oldRaw != nil && isDataUnchanged && isCellSetUnchanged {
		if tx.db.verbose {
			tx.db.logf("geostore: PUT.NOOP %s/%s => m=%d %v", tbl.name, key, vle.ModCount, tbl.loggableRow(row))
		}
		return
	}
	if !isDataUnchanged {
		vle.ModCount++
	}
	ensure(b.data.Put(key, vle.appendTo(nil)))

	if tx.db.verbose {
		tx.db.logf("geostore: PUT %s/%s => m=%d cell=%s %v", tbl.name, key, vle.ModCount, cells[len(cells)-1], tbl.loggableRow(row))
	}

	var buf []byte
	if oldRaw != nil && !isCellSetUnchanged {
		err := findRemovedCells(old.Cells, cells, func(cell string) {
			buf = cellIndexKey(buf[:0], cell, key)
			ensure(b.cells.Delete(buf))
		})
		if err != nil {
			panic(tableErrf(tbl.name, key, err, "decoding old cells"))
		}
	}
	for _, cell := range cells {
		buf = cellIndexKey(buf[:0], cell, key)
		ensure(b.cells.Put(buf, []byte{}))
	}
}

// Get returns the row with the given key, or nil.
func Get[T any](tx *Tx, tbl *Table[T], key string) *T {
	raw := buckets(tx, tbl).data.Get([]byte(key))
	if raw == nil {
		return nil
	}
	return decodeValue(tbl, []byte(key), raw)
}

func decodeValue[T any](tbl *Table[T], key, raw []byte) *T {
	var vle value
	if err := vle.decode(raw); err != nil {
		panic(tableErrf(tbl.name, key, err, "decoding value"))
	}
	row := new(T)
	if err := decodeRow(vle.Data, row); err != nil {
		panic(tableErrf(tbl.name, key, err, "decoding row"))
	}
	return row
}

// Delete removes the row and its cell index entries. Returns false if there
// was no such row.
func Delete[T any](tx *Tx, tbl *Table[T], key string) bool {
	tx.requireWritable()
	b := buckets(tx, tbl)
	keyRaw := []byte(key)
	raw := b.data.Get(keyRaw)
	if raw == nil {
		return false
	}
	var old value
	if err := old.decode(raw); err != nil {
		panic(tableErrf(tbl.name, keyRaw, err, "decoding old value"))
	}
	old.Cells = bytes.Clone(old.Cells)

	var buf []byte
	err := decodeCellKeys(old.Cells, func(cell []byte) {
		buf = cellIndexKey(buf[:0], string(cell), keyRaw)
		ensure(b.cells.Delete(buf))
	})
	if err != nil {
		panic(tableErrf(tbl.name, keyRaw, err, "decoding old cells"))
	}
	ensure(b.data.Delete(keyRaw))

	if tx.db.verbose {
		tx.db.logf("geostore: DELETE %s/%s", tbl.name, key)
	}
	return true
}

// Scan calls f for every row in key order until f returns false.
func Scan[T any](tx *Tx, tbl *Table[T], f func(key string, row *T) bool) {
	c := buckets(tx, tbl).data.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		if !f(string(k), decodeValue(tbl, k, v)) {
			return
		}
	}
}

// Count returns the number of rows in tbl.
func Count[T any](tx *Tx, tbl *Table[T]) int {
	return buckets(tx, tbl).data.Stats().KeyN
}
