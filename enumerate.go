package geocell

// Enumerate returns the keys of the cells at resolution len(swKey) that
// together cover the rectangle from the cell swKey to the cell neKey.
//
// A nil result with a nil error means the box is inverted or crosses the
// antimeridian, which the index can't serve. When both corners sit at the
// origin cell, the result is the 16 top-level keys.
func Enumerate(swKey, neKey string) ([]string, error) {
	if len(swKey) != len(neKey) {
		return nil, invalidArgf("corner keys %q and %q differ in resolution", swKey, neKey)
	}
	res := len(swKey)
	sw, err := Decode(swKey)
	if err != nil {
		return nil, err
	}
	ne, err := Decode(neKey)
	if err != nil {
		return nil, err
	}

	if ne.Col < sw.Col || ne.Row < sw.Row {
		return nil, nil
	}
	if sw == (GridIndex{}) && ne == (GridIndex{}) {
		return topLevelKeys(), nil
	}

	s := step(res)
	keys := make([]string, 0, ((ne.Row-sw.Row)/s+1)*((ne.Col-sw.Col)/s+1))
	for row := sw.Row; row <= ne.Row; row += s {
		for col := sw.Col; col <= ne.Col; col += s {
			keys = append(keys, IndexToKey(GridIndex{row, col})[:res])
		}
	}
	return keys, nil
}

func topLevelKeys() []string {
	keys := make([]string, len(Alphabet))
	for i := range keys {
		keys[i] = Alphabet[i : i+1]
	}
	return keys
}

// CandidateCells returns the cells at res covering box. The cover is a
// superset of box; filter matches with Box.Contains.
func CandidateCells(box Box, res int) ([]string, error) {
	if res < 0 || res > MaxResolution {
		return nil, invalidResolution(res)
	}
	return Enumerate(Encode(box.SW, res), Encode(box.NE, res))
}
