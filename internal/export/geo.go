package export

import (
	"github.com/wroge/wgs84"

	"honnef.co/go/dubins"
)

// Georeference converts positions from a local frame to longitude and
// latitude (EPSG:4326). The local X and Y axes are Web Mercator (EPSG:3857)
// easting and northing in meters, relative to the given origin. Altitude,
// yaw and pitch are kept as they are.
func Georeference(states []dubins.State, originLon, originLat float64) []dubins.State {
	epsg := wgs84.EPSG()
	toMercator := epsg.Transform(4326, 3857)
	toLonLat := epsg.Transform(3857, 4326)

	ox, oy, _ := toMercator(originLon, originLat, 0)
	out := make([]dubins.State, len(states))
	for i, s := range states {
		lon, lat, _ := toLonLat(ox+s.X, oy+s.Y, 0)
		s.X, s.Y = lon, lat
		out[i] = s
	}
	return out
}
