package curiosity

import "strings"

const snippetLimit = 200

// Normalize repairs a structurally loose record in place so nothing invalid
// propagates downstream. Generators are LLM-backed and their output is only
// loosely schema-shaped: curiosities may be missing, empty, or collapsed into
// a single text blob. rawText, when non-empty, is the generator's unparsed
// output and serves as the coercion source of last resort.
func (r *Record) Normalize(loc Location, rawText string) {
	if r.LocationName == "" {
		r.LocationName = loc.Label()
	}
	if r.Rarity == "" {
		r.Rarity = RarityCommon
	}
	if r.Category == "" {
		r.Category = "history"
	}

	if len(r.Curiosities) == 0 {
		switch {
		case r.MainHighlight != "":
			r.Curiosities = []string{r.MainHighlight}
		case rawText != "":
			r.Curiosities = []string{Snippet(rawText)}
		default:
			r.Curiosities = []string{"Information was retrieved but arrived in an unusual format."}
		}
	}
	if r.MainHighlight == "" {
		r.MainHighlight = r.Curiosities[0]
	}
}

// Snippet truncates free text to a one-line placeholder curiosity.
func Snippet(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > snippetLimit {
		return string(runes[:snippetLimit]) + "..."
	}
	return text
}
