package discover

import (
	"fmt"

	"github.com/chronosmaps/discovery/curiosity"
)

// Offline deterministically generates plausible filler content from
// whatever descriptor fields are available. It does no I/O and cannot
// fail, which is what makes the resolver's no-error contract hold under
// any combination of upstream failures. Offline records are regenerated
// fresh on every call and never cached.
func Offline(loc curiosity.Location) *curiosity.Record {
	city := loc.City
	if city == "" {
		city = "this city"
	}
	neighborhood := loc.Neighborhood
	if neighborhood == "" {
		neighborhood = "this neighborhood"
	}
	street := loc.StreetName
	if street == "" {
		street = "this area"
	}

	return &curiosity.Record{
		LocationName:   loc.Label(),
		MainHighlight:  fmt.Sprintf("Hidden history of %s", city),
		Rarity:         curiosity.RarityInteresting,
		Category:       "history",
		Source:         curiosity.SourceOffline,
		RelatedFigures: []string{"Local residents", "Historical architects"},
		Curiosities: []string{
			fmt.Sprintf("This spot in %s has witnessed the urban evolution of %s over the last century.", neighborhood, city),
			"The architecture of the area reflects the prevailing styles of its construction era, with unique details on the facades.",
			fmt.Sprintf("Historically, %s was an important artery for the commercial and social life of local residents.", street),
			fmt.Sprintf("Municipal archives suggest earlier settlements on the grounds of %s shaped the current street layout.", city),
			fmt.Sprintf("The oldest neighbors of %s keep oral legends about curious events at these very coordinates.", neighborhood),
		},
	}
}
