// Package cache implements the local tier of the discovery cache: the
// coordinate-derived key function and a TTL-stamping store over a
// storage.Storage backend.
package cache

import (
	"math"
	"strconv"
)

// Key derives the cache key for a coordinate. Both components are rounded
// half-away-from-zero to 4 decimal places (~11 m precision), so nearby taps
// collapse into the same cell. The textual shape is shared with the
// echo-cache server and previously cached client data; do not change it.
func Key(lat, lng float64) string {
	return "curiosity:" + fixed4(lat) + "," + fixed4(lng)
}

// fixed4 formats v rounded to exactly 4 decimal places.
// math.Round rounds half away from zero, matching the client format.
func fixed4(v float64) string {
	rounded := math.Round(v*1e4) / 1e4
	return strconv.FormatFloat(rounded, 'f', 4, 64)
}
