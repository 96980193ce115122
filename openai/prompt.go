package openai

import (
	"fmt"
	"strings"

	"github.com/chronosmaps/discovery/curiosity"
)

// systemPrompt frames the model for address-level generation.
func systemPrompt(loc curiosity.Location) string {
	return fmt.Sprintf("You are an expert historian. Generate 5 brief, fascinating historical curiosities about %s. Respond in JSON.", loc.Label())
}

// buildAddressPrompt asks for curiosities about a street address or bare
// coordinate. Optional fields are included only when present.
func buildAddressPrompt(loc curiosity.Location) string {
	var b strings.Builder

	b.WriteString("Generate historical curiosities about this exact location:\n\n")
	fmt.Fprintf(&b, "LOCATION: %s\n", loc.Label())
	if loc.StreetNumber != "" {
		fmt.Fprintf(&b, "STREET NUMBER: %s\n", loc.StreetNumber)
	}
	if loc.City != "" {
		fmt.Fprintf(&b, "CITY: %s\n", loc.City)
	}
	if loc.Country != "" {
		fmt.Fprintf(&b, "COUNTRY: %s\n", loc.Country)
	}
	fmt.Fprintf(&b, "COORDINATES: %v, %v\n", loc.Latitude, loc.Longitude)

	b.WriteString(`
INSTRUCTIONS:
1. Generate 5 fascinating historical curiosities
2. Be SPECIFIC about this location (if you know the exact building/street)
3. If nothing is known about the exact number, cover the street or area
4. Each curiosity: 2-3 sentences at most
5. Include dates where possible
6. Surprising, verifiable facts

CATEGORIES TO CONSIDER:
- History of the specific building/street
- Historical events that happened here
- Famous people who lived here or visited
- Architectural or urban changes
- Local anecdotes and legends

RESPOND WITH VALID JSON IN EXACTLY THIS STRUCTURE:
{
  "location_name": "Specific name of the place",
  "curiosities": ["Curiosity 1...", "Curiosity 2...", "Curiosity 3...", "Curiosity 4...", "Curiosity 5..."],
  "main_highlight": "The single MOST striking fact in one sentence",
  "rarity": "common|interesting|rare|legendary",
  "category": "monument|battle|mystery|culture|gastronomy|cinema|history",
  "time_period": "Main era or century",
  "related_figures": ["Person 1", "Person 2"]
}

If you have no specific history for this exact address, generate curiosities
about the neighborhood or area, but be honest and say so.`)

	return b.String()
}

// buildPlacePrompt asks for curiosities about a specific named place (POI).
func buildPlacePrompt(loc curiosity.Location) string {
	var b strings.Builder

	b.WriteString("Generate 5 SPECIFIC historical curiosities about this important place:\n\n")
	fmt.Fprintf(&b, "PLACE: %s\n", loc.Name)
	if loc.DisplayAddress != "" {
		fmt.Fprintf(&b, "LOCATION: %s\n", loc.DisplayAddress)
	}
	if len(loc.Types) > 0 {
		fmt.Fprintf(&b, "TYPE: %s\n", strings.Join(loc.Types, ", "))
	}
	if loc.Category != "" {
		fmt.Fprintf(&b, "CATEGORY: %s\n", loc.Category)
	}
	if loc.EditorialSummary != "" {
		fmt.Fprintf(&b, "SUMMARY: %s\n", loc.EditorialSummary)
	}

	b.WriteString(`
IMPORTANT:
- Curiosities ONLY about THIS specific place
- NOT about the street or surrounding area
- History, construction, events, people
- Unique architectural facts
- Interesting anecdotes

RESPOND WITH VALID JSON IN EXACTLY THIS STRUCTURE:
{
  "location_name": "` + loc.Name + `",
  "curiosities": ["Curiosity 1 about construction...", "Curiosity 2 about a historical event...", "Curiosity 3 about a person...", "Curiosity 4 architectural...", "Curiosity 5 about use/function..."],
  "main_highlight": "The MOST striking fact about the place in ONE sentence",
  "rarity": "interesting",
  "category": "history",
  "time_period": "Main era or century",
  "related_figures": ["Figure 1", "Figure 2"]
}`)

	return b.String()
}
