package game

import "testing"

func TestDedupe_LaterRowReplacesInPlace(t *testing.T) {
	t.Parallel()

	first := newGame("Majors", "2024-04-01", "18:00", "Tigers", "Cubs", nil, nil)
	other := newGame("Majors", "2024-04-02", "18:00", "Bears", "Owls", nil, nil)
	again := first
	again.Field = "Field 2"
	again.HomeScore = Score(3)

	got := Dedupe([]Game{first, other, again})
	if len(got) != 2 {
		t.Fatalf("expected 2 games after dedupe, got %d", len(got))
	}
	if got[0].Key != first.Key || got[0].Field != "Field 2" || got[0].HomeScore == nil || *got[0].HomeScore != 3 {
		t.Fatalf("expected later row contents at first position, got %+v", got[0])
	}
	if got[1].Key != other.Key {
		t.Fatalf("expected other game to keep second position")
	}
}

func TestCollection_OrderAndLookup(t *testing.T) {
	t.Parallel()

	majors := newGame("Majors", "2024-04-01", "18:00", "Tigers", "Cubs", Score(5), Score(3))
	aaa := newGame("AAA", "2024-04-01", "18:00", "Team 1", "Team 2", nil, nil)
	extra := newGame("Fall Ball", "2024-09-01", "10:00", "Team X", "Team Y", nil, nil)

	c := NewCollection([]string{"Majors", "AAA"}, map[string][]Game{
		"AAA":       {aaa},
		"Majors":    {majors},
		"Fall Ball": {extra},
	})

	divisions := c.Divisions()
	if len(divisions) != 3 || divisions[0] != "Majors" || divisions[1] != "AAA" || divisions[2] != "Fall Ball" {
		t.Fatalf("unexpected division order: %v", divisions)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 games, got %d", c.Len())
	}

	all := c.All()
	if all[0].Key != majors.Key || all[1].Key != aaa.Key || all[2].Key != extra.Key {
		t.Fatalf("unexpected All order")
	}

	got, ok := c.Get(majors.Key)
	if !ok || *got.HomeScore != 5 {
		t.Fatalf("expected to find majors game, got %+v ok=%t", got, ok)
	}
	*got.HomeScore = 99
	again, _ := c.Get(majors.Key)
	if *again.HomeScore != 5 {
		t.Fatalf("expected collection to be immutable through returned copies")
	}

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected missing key lookup to fail")
	}
	if games := c.Division("T-Ball"); games == nil || len(games) != 0 {
		t.Fatalf("expected empty non-nil slice for unknown division")
	}
}

func TestCollection_OverlayReplacesScoresUnconditionally(t *testing.T) {
	t.Parallel()

	played := newGame("Majors", "2024-04-01", "18:00", "Tigers", "Cubs", Score(5), Score(3))
	unplayed := newGame("Majors", "2024-04-02", "18:00", "Cubs", "Tigers", nil, nil)
	base := NewCollection([]string{"Majors"}, map[string][]Game{"Majors": {played, unplayed}})

	overlaid := base.Overlay(func(key string) (*int, *int, bool) {
		switch key {
		case played.Key:
			return Score(2), Score(2), true
		case unplayed.Key:
			return nil, nil, true
		}
		return nil, nil, false
	})

	got, _ := overlaid.Get(played.Key)
	if *got.HomeScore != 2 || *got.AwayScore != 2 {
		t.Fatalf("expected override 2-2, got %d-%d", *got.HomeScore, *got.AwayScore)
	}
	base1, _ := base.Get(played.Key)
	if *base1.HomeScore != 5 {
		t.Fatalf("expected base collection untouched")
	}
	cleared, _ := overlaid.Get(unplayed.Key)
	if cleared.Final() {
		t.Fatalf("expected cleared override to keep game unplayed")
	}
}
