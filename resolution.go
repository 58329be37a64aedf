package geocell

// SelectResolution picks the finest resolution whose cell height is strictly
// greater than the smaller span of box. Only the latitude size is compared,
// for both axes.
//
// The result is 0 when the box is at least as tall and wide as a level-1
// cell, and MaxResolution when the span is zero or negative.
func SelectResolution(box Box) int {
	span := min(box.latSpan(), box.lngSpan())
	var res int
	for r := 1; r <= MaxResolution; r++ {
		if cellSizes[r].lat > span {
			res++
		}
	}
	return res
}
