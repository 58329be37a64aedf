package geocell

import "strconv"

// PackedCell is a fixed-width integer form of a cell key: the resolution
// in the top 4 bits, the symbols left-aligned in the low 28 bits. Keys of
// different resolution never share a PackedCell.
type PackedCell uint32

const packedResShift = 4 * MaxResolution

// Pack converts key into its fixed-width integer form.
func Pack(key string) (PackedCell, error) {
	if _, err := Decode(key); err != nil {
		return 0, err
	}
	var v uint32
	for i := 0; i < MaxResolution; i++ {
		v <<= 4
		if i < len(key) {
			v |= uint32(symbolValue(key[i]))
		}
	}
	return PackedCell(uint32(len(key))<<packedResShift | v), nil
}

func (c PackedCell) Resolution() int {
	return int(c >> packedResShift)
}

// Key returns the cell key c was packed from.
func (c PackedCell) Key() string {
	res := c.Resolution()
	if res > MaxResolution {
		panic(invalidResolution(res))
	}
	buf := make([]byte, res)
	for i := range buf {
		buf[i] = Alphabet[(c>>(4*(MaxResolution-1-i)))&0xF]
	}
	return string(buf)
}

func (c PackedCell) String() string {
	return c.Key()
}

// LegacyValue parses key as a plain hexadecimal integer. This is the storage
// form used by older datasets. It drops leading "0" symbols, so "3" and "03"
// both map to 3; use it only to read such data, and Pack for anything new.
func LegacyValue(key string) (uint64, error) {
	if _, err := Decode(key); err != nil {
		return 0, err
	}
	if key == "" {
		return 0, nil
	}
	return strconv.ParseUint(key, 16, 64)
}

func symbolValue(c byte) int {
	if c >= 'a' {
		return int(c-'a') + 10
	}
	return int(c - '0')
}
