package geo

import (
	"fmt"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// MaxMercatorLatitude is where Web Mercator reaches a square world.
const MaxMercatorLatitude = 85.05112878

// XY is a position in EPSG:3857 meters, the map surface's coordinate space.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var (
	toMercator   = wgs84.EPSG().Transform(4326, 3857)
	fromMercator = wgs84.EPSG().Transform(3857, 4326)
)

// ToMercator projects p into EPSG:3857. Latitudes past the Mercator limit are
// pinned to it.
func ToMercator(p Point) XY {
	lat := Clamp(p.Lat, -MaxMercatorLatitude, MaxMercatorLatitude)
	x, y, _ := toMercator(p.Lon, lat, 0)
	return XY{X: x, Y: y}
}

// FromMercator inverts ToMercator. Results are clamped to valid WGS84 ranges
// because the map surface reports clicks on wrapped copies of the world.
func FromMercator(xy XY) Point {
	lon, lat, _ := fromMercator(xy.X, xy.Y, 0)
	return Point{Lon: wrapLongitude(lon), Lat: Clamp(lat, -90, 90)}
}

func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// PointGeometry returns p as a projected point geometry.
func PointGeometry(p Point) (geom.Geometry, error) {
	xy := ToMercator(p)
	pt, err := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: xy.X, Y: xy.Y},
		Type: geom.DimXY,
	})
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("point geometry: %w", err)
	}
	return pt.AsGeometry(), nil
}

// LineGeometry returns a projected line through pts. Repeated points are
// dropped; a line with fewer than two distinct points comes back empty.
func LineGeometry(pts ...Point) (geom.Geometry, error) {
	flat := make([]float64, 0, len(pts)*2)
	var last XY
	for i, p := range pts {
		xy := ToMercator(p)
		if i > 0 && xy == last {
			continue
		}
		flat = append(flat, xy.X, xy.Y)
		last = xy
	}
	if len(flat) < 4 {
		return geom.LineString{}.AsGeometry(), nil
	}
	ls, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("line geometry: %w", err)
	}
	return ls.AsGeometry(), nil
}
