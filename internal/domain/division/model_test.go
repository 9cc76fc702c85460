package division

import "testing"

func TestBuild_ResolvesScoringSourcesAndRosters(t *testing.T) {
	t.Parallel()

	items, err := Build(
		DefaultNames,
		DefaultScoringNames,
		map[string]string{"majors": " https://example.com/majors.csv "},
		map[string][]string{"AAA": {"Team 1", "Team 2"}},
	)
	if err != nil {
		t.Fatalf("build divisions: %v", err)
	}
	if len(items) != len(DefaultNames) {
		t.Fatalf("unexpected division count: got=%d want=%d", len(items), len(DefaultNames))
	}

	if !items[0].Scoring || items[0].SourceURL != "https://example.com/majors.csv" {
		t.Fatalf("unexpected majors division: %+v", items[0])
	}
	if len(items[1].Roster) != 2 {
		t.Fatalf("expected AAA roster, got %v", items[1].Roster)
	}
	if items[5].Name != "T-Ball" || items[5].Scoring {
		t.Fatalf("expected T-Ball to be non-scoring, got %+v", items[5])
	}
}

func TestBuild_RejectsUnknownScoringDivision(t *testing.T) {
	t.Parallel()

	if _, err := Build([]string{"Majors"}, []string{"Minors"}, nil, nil); err == nil {
		t.Fatalf("expected error for unknown scoring division")
	}
}

func TestBuild_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	if _, err := Build([]string{"AA", "aa"}, nil, nil, nil); err == nil {
		t.Fatalf("expected error for duplicate division")
	}
}
