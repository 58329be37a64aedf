package geocell

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

const (
	minLat = -90.0
	maxLat = 90.0
	minLng = -180.0
	maxLng = 180.0
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `msgpack:"lat" json:"lat"`
	Lng float64 `msgpack:"lng" json:"lng"`
}

// Box is an axis-aligned lat/lng rectangle. Nothing checks that SW is
// actually south-west of NE.
type Box struct {
	SW Point
	NE Point
}

func (p Point) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// Orb returns p as an orb point, which is ordered [lng, lat].
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

func PointFromOrb(pt orb.Point) Point {
	return Point{Lat: pt.Lat(), Lng: pt.Lon()}
}

func BoxFromBound(b orb.Bound) Box {
	return Box{SW: PointFromOrb(b.Min), NE: PointFromOrb(b.Max)}
}

func (b Box) Bound() orb.Bound {
	return orb.Bound{Min: b.SW.Orb(), Max: b.NE.Orb()}
}

// Contains reports whether p lies in b, edges included.
func (b Box) Contains(p Point) bool {
	return b.SW.Lat <= p.Lat && p.Lat <= b.NE.Lat && b.SW.Lng <= p.Lng && p.Lng <= b.NE.Lng
}

func (b Box) latSpan() float64 { return b.NE.Lat - b.SW.Lat }
func (b Box) lngSpan() float64 { return b.NE.Lng - b.SW.Lng }

// ParsePoint parses "lat,lng".
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, &ParseError{Input: s, Msg: "expected lat,lng"}
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, &ParseError{Input: s, Msg: "bad latitude", Err: err}
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, &ParseError{Input: s, Msg: "bad longitude", Err: err}
	}
	return Point{Lat: lat, Lng: lng}, nil
}
