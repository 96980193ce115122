package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/chronosmaps/discovery/curiosity"
)

// ErrNoJSON means the model response contained no JSON object at all.
var ErrNoJSON = errors.New("no JSON object in response")

// CoerceRecord turns raw model output into a usable record. Models wrap the
// requested JSON in prose or code fences more often than not, so the first
// balanced {...} block is extracted and parsed; if that fails, the raw text
// itself is demoted to a single-curiosity record rather than an error.
// The returned record is always structurally valid.
func CoerceRecord(content string, loc curiosity.Location) curiosity.Record {
	var rec curiosity.Record

	block, err := ExtractJSON(content)
	if err == nil {
		err = json.Unmarshal([]byte(block), &rec)
	}
	if err != nil {
		rec = curiosity.Record{
			LocationName:  loc.Label(),
			Curiosities:   []string{curiosity.Snippet(content)},
			MainHighlight: "Generated information",
			Rarity:        curiosity.RarityCommon,
			Category:      "history",
		}
	}

	rec.Normalize(loc, content)
	return rec
}

// ExtractJSON returns the first balanced {...} block in s, skipping braces
// that occur inside JSON string literals.
func ExtractJSON(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("unbalanced JSON object: %w", ErrNoJSON)
}
