package geostore

import (
	"bytes"
	"fmt"

	"github.com/andreyvit/geocell"
)

// Candidates returns the keys of rows indexed under any cell covering box,
// at the resolution geocell.SelectResolution picks for it. The result is a
// superset of the rows inside box.
func Candidates[T any](tx *Tx, tbl *Table[T], box geocell.Box) ([]string, error) {
	res := geocell.SelectResolution(box)
	cells, err := geocell.CandidateCells(box, res)
	if err != nil {
		return nil, err
	}
	if cells == nil {
		return nil, fmt.Errorf("%s: %v..%v: %w", tbl.name, box.SW, box.NE, ErrBoxNotSupported)
	}

	c := buckets(tx, tbl).cells.Cursor()
	var keys []string
	var prefix []byte
	for _, cell := range cells {
		prefix = cellPrefix(prefix[:0], cell)
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			keys = append(keys, string(k[len(prefix):]))
		}
	}

	if tx.db.verbose {
		tx.db.logf("geostore: CANDIDATES %s %v..%v res=%d cells=%d => %d", tbl.name, box.SW, box.NE, res, len(cells), len(keys))
	}
	return keys, nil
}

// Within returns the rows whose point lies inside box, edges included.
func Within[T any](tx *Tx, tbl *Table[T], box geocell.Box) ([]*T, error) {
	keys, err := Candidates(tx, tbl, box)
	if err != nil {
		return nil, err
	}
	bound := box.Bound()
	var rows []*T
	for _, key := range keys {
		row := Get(tx, tbl, key)
		if row == nil {
			panic(tableErrf(tbl.name, []byte(key), nil, "cell index entry without a row"))
		}
		if bound.Contains(tbl.pointOf(row).Orb()) {
			rows = append(rows, row)
		}
	}

	if tx.db.verbose {
		tx.db.logf("geostore: WITHIN %s %v..%v => %d of %d candidates", tbl.name, box.SW, box.NE, len(rows), len(keys))
	}
	return rows, nil
}
