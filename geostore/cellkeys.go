package geostore

import (
	"bytes"
	"cmp"
)

// Index entries live in the cells bucket under
//
//	len(cell) cell recordKey
//
// with an empty value. The leading length byte keeps cells of different
// resolutions apart, so "3" and "03" never share a prefix.

func cellPrefix(buf []byte, cell string) []byte {
	buf = append(buf, byte(len(cell)))
	return append(buf, cell...)
}

func cellIndexKey(buf []byte, cell string, recKey []byte) []byte {
	return append(cellPrefix(buf, cell), recKey...)
}

// appendCellKeys records the cells a row is indexed under, in the order
// compareCells sorts them.
func appendCellKeys(buf []byte, cells []string) []byte {
	buf = appendUvarint(buf, uint64(len(cells)))
	for _, c := range cells {
		buf = appendVarbytes(buf, []byte(c))
	}
	return buf
}

func decodeCellKeys(data []byte, f func(cell []byte)) error {
	if len(data) == 0 {
		return nil
	}
	d := makeByteDecoder(data)
	n, err := d.Uvarinti()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cell, err := d.VarBytes()
		if err != nil {
			return err
		}
		f(cell)
	}
	return nil
}

// compareCells orders by resolution first, then by symbols.
func compareCells(a, b []byte) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return bytes.Compare(a, b)
}

type cellDiffer struct {
	newCells []string
}

func (d *cellDiffer) checkOldCell(old []byte) bool {
	// Look for a new cell that's >= old cell.
	for len(d.newCells) > 0 {
		c := compareCells(old, []byte(d.newCells[0]))
		if c < 0 {
			return false
		} else if c == 0 {
			return true
		}
		d.newCells = d.newCells[1:]
	}
	return false // remaining old cells have been removed
}

// findRemovedCells calls removed for every cell in oldData that is not in
// newCells. Both must be sorted by compareCells.
func findRemovedCells(oldData []byte, newCells []string, removed func(cell string)) error {
	d := cellDiffer{newCells}
	return decodeCellKeys(oldData, func(cell []byte) {
		if !d.checkOldCell(cell) {
			removed(string(cell))
		}
	})
}
