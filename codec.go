package geocell

import "math"

// GridIndex is a cell position in the finest (MaxResolution) grid.
type GridIndex struct {
	Row int
	Col int
}

// PackSymbol returns the key symbol for local column x and row y, both 0..3.
func PackSymbol(x, y int) byte {
	if x < 0 || x >= GridSize || y < 0 || y >= GridSize {
		panic(invalidArgf("quadrant (%d, %d) outside the grid", x, y))
	}
	v := (y&2)<<2 | (x&2)<<1 | (y&1)<<1 | x&1
	return Alphabet[v]
}

// UnpackSymbol is the inverse of PackSymbol.
func UnpackSymbol(c byte) (x, y int, ok bool) {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'f':
		v = int(c-'a') + 10
	default:
		return 0, 0, false
	}
	x = (v>>1)&2 | v&1
	y = (v>>2)&2 | (v>>1)&1
	return x, y, true
}

// Encode returns the key of the cell containing p at resolution res.
// A point on an edge shared by two cells goes to the north or east one;
// points on the north or east edge of the world are clamped into the grid.
// Res 0 yields the empty key. Panics if res is out of range.
func Encode(p Point, res int) string {
	checkResolution(res)
	north, south, east, west := maxLat, minLat, maxLng, minLng
	buf := make([]byte, res)
	for i := range buf {
		latSpan := (north - south) / GridSize
		lngSpan := (east - west) / GridSize
		x := clampDigit(math.Floor(GridSize * (p.Lng - west) / (east - west)))
		y := clampDigit(math.Floor(GridSize * (p.Lat - south) / (north - south)))
		buf[i] = PackSymbol(x, y)

		south += float64(y) * latSpan
		north = south + latSpan
		west += float64(x) * lngSpan
		east = west + lngSpan
	}
	return string(buf)
}

// EncodeAll returns the keys of p at resolutions 1..MaxResolution.
func EncodeAll(p Point) []string {
	full := Encode(p, MaxResolution)
	keys := make([]string, MaxResolution)
	for i := range keys {
		keys[i] = full[:i+1]
	}
	return keys
}

func clampDigit(v float64) int {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > GridSize-1 {
		return GridSize - 1
	}
	return int(v)
}

// Decode returns the full-resolution index of the south-west corner of the
// cell named by key. The empty key decodes to the origin.
func Decode(key string) (GridIndex, error) {
	if len(key) > MaxResolution {
		return GridIndex{}, invalidArgf("cell key %q longer than %d", key, MaxResolution)
	}
	var idx GridIndex
	for i := 0; i < len(key); i++ {
		x, y, ok := UnpackSymbol(key[i])
		if !ok {
			return GridIndex{}, invalidArgf("cell key %q has invalid symbol %q at %d", key, key[i], i)
		}
		s := pow4[MaxResolution-1-i]
		idx.Col += x * s
		idx.Row += y * s
	}
	return idx, nil
}

// IndexToKey returns the MaxResolution-long key of the finest cell at idx.
// Panics if idx is outside the grid.
func IndexToKey(idx GridIndex) string {
	if idx.Row < 0 || idx.Row >= GridExtent || idx.Col < 0 || idx.Col >= GridExtent {
		panic(invalidArgf("grid index (%d, %d) outside the grid", idx.Row, idx.Col))
	}
	var buf [MaxResolution]byte
	row, col := idx.Row, idx.Col
	for i := range buf {
		d := pow4[MaxResolution-1-i]
		y, x := row/d, col/d
		buf[i] = PackSymbol(x, y)
		row -= y * d
		col -= x * d
	}
	return string(buf[:])
}

// Bounds returns the region covered by the cell named by key.
func Bounds(key string) (Box, error) {
	idx, err := Decode(key)
	if err != nil {
		return Box{}, err
	}
	latSpan, lngSpan := CellSize(len(key))
	finestLat, finestLng := CellSize(MaxResolution)
	sw := Point{
		Lat: minLat + float64(idx.Row)*finestLat,
		Lng: minLng + float64(idx.Col)*finestLng,
	}
	return Box{SW: sw, NE: Point{Lat: sw.Lat + latSpan, Lng: sw.Lng + lngSpan}}, nil
}
