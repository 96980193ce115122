package cache

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		lat, lng float64
		expected string
	}{
		{41.40691, 2.17401, "curiosity:41.4069,2.1740"},
		{41.40694, 2.17403, "curiosity:41.4069,2.1740"}, // same ~11m cell
		{41.3833, 2.1766, "curiosity:41.3833,2.1766"},
		{0, 0, "curiosity:0.0000,0.0000"},
		{-33.8688, 151.20929, "curiosity:-33.8688,151.2093"},
		{41.12346, 2.1, "curiosity:41.1235,2.1000"},
		{-41.12346, -2.1, "curiosity:-41.1235,-2.1000"},
		{2.62505, 0, "curiosity:2.6251,0.0000"}, // half rounds away from zero, not to even
		{90, -180, "curiosity:90.0000,-180.0000"},
	}

	for _, tt := range tests {
		result := Key(tt.lat, tt.lng)
		if result != tt.expected {
			t.Errorf("Key(%v, %v) = %s, want %s", tt.lat, tt.lng, result, tt.expected)
		}
	}
}

func TestKeyDeterministic(t *testing.T) {
	for _, pair := range [][2]float64{{41.40691, 2.17401}, {-12.0464, -77.0428}, {0.00004, -0.00004}} {
		a := Key(pair[0], pair[1])
		b := Key(pair[0], pair[1])
		if a != b {
			t.Errorf("Key(%v, %v) not deterministic: %s != %s", pair[0], pair[1], a, b)
		}
	}
}
