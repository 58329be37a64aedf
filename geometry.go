package geocell

const (
	// GridSize is the number of subdivisions per axis at every level.
	GridSize = 4

	// MaxResolution is the deepest level of the quadtree.
	MaxResolution = 7

	// GridExtent is the number of rows (and columns) in the finest grid.
	GridExtent = 16384 // GridSize^MaxResolution

	// Alphabet maps packed quadrant values 0..15 to key symbols.
	Alphabet = "0123456789abcdef"
)

type cellSize struct {
	lat float64
	lng float64
}

// indexed by resolution, 0 is the whole world
var cellSizes = buildCellSizes()

// powers of GridSize, pow4[i] = 4^i
var pow4 = buildPow4()

func buildCellSizes() [MaxResolution + 1]cellSize {
	var t [MaxResolution + 1]cellSize
	lat, lng := 180.0, 360.0
	for res := 0; res <= MaxResolution; res++ {
		t[res] = cellSize{lat, lng}
		lat /= GridSize
		lng /= GridSize
	}
	return t
}

func buildPow4() [MaxResolution + 1]int {
	var t [MaxResolution + 1]int
	v := 1
	for i := range t {
		t[i] = v
		v *= GridSize
	}
	return t
}

// CellSize returns the angular size of a cell at the given resolution.
// Resolution 0 is the whole world.
func CellSize(res int) (latSpan, lngSpan float64) {
	checkResolution(res)
	s := cellSizes[res]
	return s.lat, s.lng
}

// step returns the full-resolution grid span of one cell at res.
func step(res int) int {
	return pow4[MaxResolution-res]
}

func checkResolution(res int) {
	if res < 0 || res > MaxResolution {
		panic(invalidResolution(res))
	}
}
