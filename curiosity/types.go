// Package curiosity defines the domain types for location discovery content:
// the location descriptor handed to generators and the record that gets cached.
package curiosity

// Rarity classifies how notable a piece of generated content is.
type Rarity string

const (
	RarityCommon      Rarity = "common"
	RarityInteresting Rarity = "interesting"
	RarityRare        Rarity = "rare"
	RarityLegendary   Rarity = "legendary"
)

// XP returns the experience points awarded for discovering content of this
// rarity. Unknown rarities score as common.
func (r Rarity) XP() int {
	switch r {
	case RarityInteresting:
		return 250
	case RarityRare:
		return 500
	case RarityLegendary:
		return 1000
	default:
		return 100
	}
}

// Source marks where a record came from. It is provenance only: cache layers
// never treat it as authoritative and re-stamp timestamps on every write.
type Source string

const (
	SourceLive          Source = "live"
	SourceOffline       Source = "offline"
	SourceQuotaExceeded Source = "quota-exceeded"
)

// Location describes one tapped coordinate plus whatever address context the
// caller managed to assemble. Cache identity is derived from Latitude and
// Longitude only; the textual fields feed prompt construction.
type Location struct {
	Latitude  float64
	Longitude float64

	DisplayAddress string
	City           string
	Neighborhood   string
	StreetName     string
	StreetNumber   string
	Country        string

	// Named-place fields, set when the coordinate resolved to a specific POI
	// rather than a street address. A non-empty Name switches the generator
	// to the place-specific prompt and the longer timeout.
	Name             string
	Types            []string
	Category         string
	EditorialSummary string
}

// Named reports whether this location identifies a specific place.
func (l Location) Named() bool {
	return l.Name != ""
}

// Label returns the best human-readable handle for the location.
func (l Location) Label() string {
	if l.Name != "" {
		return l.Name
	}
	if l.DisplayAddress != "" {
		return l.DisplayAddress
	}
	return "this location"
}

// Record is the cached unit of generated content for one coordinate cell.
// The JSON field names are the on-disk format shared with the echo-cache
// server and any previously cached client data, so they must not change.
type Record struct {
	LocationName   string   `json:"location_name"`
	Curiosities    []string `json:"curiosities"`
	MainHighlight  string   `json:"main_highlight"`
	Rarity         Rarity   `json:"rarity"`
	Category       string   `json:"category"`
	TimePeriod     string   `json:"time_period,omitempty"`
	RelatedFigures []string `json:"related_figures,omitempty"`
	Source         Source   `json:"source,omitempty"`

	// Stamped by the local cache store on write, milliseconds since epoch.
	CachedAt  int64 `json:"cached_at,omitempty"`
	ExpiresAt int64 `json:"expires_at,omitempty"`
}
