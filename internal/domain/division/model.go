package division

import (
	"fmt"
	"strings"
)

// Division is one age bracket of the league with its own schedule sheet.
type Division struct {
	Name      string
	Scoring   bool
	SourceURL string
	Roster    []string
}

func (d Division) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("division name is required")
	}
	if strings.Contains(d.Name, "|") {
		return fmt.Errorf("division name %q cannot contain '|'", d.Name)
	}

	return nil
}

// DefaultNames is the league's division list in display order.
var DefaultNames = []string{"Majors", "AAA", "AA", "Single A", "Coach Pitch", "T-Ball"}

// DefaultScoringNames lists divisions that keep score and standings.
var DefaultScoringNames = []string{"Majors", "AAA", "AA"}

// Build assembles divisions from configuration maps keyed by division name.
func Build(names, scoring []string, sources map[string]string, rosters map[string][]string) ([]Division, error) {
	scoringSet := make(map[string]struct{}, len(scoring))
	for _, name := range scoring {
		scoringSet[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	out := make([]Division, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		folded := strings.ToLower(name)
		if _, ok := seen[folded]; ok {
			return nil, fmt.Errorf("duplicate division %q", name)
		}
		seen[folded] = struct{}{}

		_, isScoring := scoringSet[folded]
		d := Division{
			Name:      name,
			Scoring:   isScoring,
			SourceURL: lookupFold(sources, name),
			Roster:    append([]string(nil), lookupFoldSlice(rosters, name)...),
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	for name := range scoringSet {
		if _, ok := seen[name]; !ok {
			return nil, fmt.Errorf("scoring division %q is not a configured division", name)
		}
	}

	return out, nil
}

func lookupFold(m map[string]string, name string) string {
	for key, value := range m {
		if strings.EqualFold(strings.TrimSpace(key), name) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func lookupFoldSlice(m map[string][]string, name string) []string {
	for key, value := range m {
		if strings.EqualFold(strings.TrimSpace(key), name) {
			return value
		}
	}
	return nil
}
