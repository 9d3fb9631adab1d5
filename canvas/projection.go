package canvas

import "math"

// WorldSize is the width and height of the world at level 0, in pixels.
const WorldSize = 256.0

// MaxLatitude is where Web Mercator turns the world into a square.
const MaxLatitude = 85.0511287798

// Project maps a latitude/longitude to Web Mercator world pixels at level 0.
func Project(lat, lng float64) (x, y float64) {
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	phi := lat * math.Pi / 180
	x = (lng + 180) / 360 * WorldSize
	y = (1 - math.Log(math.Tan(phi)+1/math.Cos(phi))/math.Pi) / 2 * WorldSize
	return x, y
}

// Unproject is the inverse of Project.
func Unproject(x, y float64) (lat, lng float64) {
	lng = x/WorldSize*360 - 180
	n := math.Pi * (1 - 2*y/WorldSize)
	lat = math.Atan(math.Sinh(n)) * 180 / math.Pi
	return lat, lng
}
