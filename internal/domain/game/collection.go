package game

import "sort"

type position struct {
	division string
	index    int
}

// Collection is an immutable reconciled set of games grouped by division.
// Accessors return copies.
type Collection struct {
	order      []string
	byDivision map[string][]Game
	index      map[string]position
}

// NewCollection builds a collection. Division order follows order; divisions
// present in byDivision but absent from order are appended alphabetically.
// Keys are assumed unique per collection.
func NewCollection(order []string, byDivision map[string][]Game) *Collection {
	c := &Collection{
		byDivision: make(map[string][]Game, len(byDivision)),
		index:      make(map[string]position),
	}

	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		c.order = append(c.order, name)
	}
	extra := make([]string, 0)
	for name := range byDivision {
		if _, ok := seen[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	c.order = append(c.order, extra...)

	for division, games := range byDivision {
		copied := make([]Game, 0, len(games))
		for _, g := range games {
			c.index[g.Key] = position{division: division, index: len(copied)}
			copied = append(copied, g.clone())
		}
		c.byDivision[division] = copied
	}

	return c
}

// EmptyCollection returns a collection with no games.
func EmptyCollection(order []string) *Collection {
	return NewCollection(order, nil)
}

// Divisions lists division names in display order.
func (c *Collection) Divisions() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Division returns the games of one division in load order.
func (c *Collection) Division(name string) []Game {
	if c == nil {
		return []Game{}
	}
	games := c.byDivision[name]
	out := make([]Game, 0, len(games))
	for _, g := range games {
		out = append(out, g.clone())
	}
	return out
}

// All returns every game, divisions in display order.
func (c *Collection) All() []Game {
	if c == nil {
		return []Game{}
	}
	out := make([]Game, 0, c.Len())
	for _, name := range c.order {
		for _, g := range c.byDivision[name] {
			out = append(out, g.clone())
		}
	}
	return out
}

// Get finds a game by key.
func (c *Collection) Get(key string) (Game, bool) {
	if c == nil {
		return Game{}, false
	}
	pos, ok := c.index[key]
	if !ok {
		return Game{}, false
	}
	return c.byDivision[pos.division][pos.index].clone(), true
}

// Len counts all games.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.index)
}

// raw exposes the per-division slices for rebuilding a derived collection.
// Callers must not mutate the result.
func (c *Collection) raw() map[string][]Game {
	if c == nil {
		return nil
	}
	return c.byDivision
}

// Overlay returns a new collection where scores of games whose key is known
// to scores are replaced unconditionally.
func (c *Collection) Overlay(scores func(key string) (home, away *int, ok bool)) *Collection {
	byDivision := make(map[string][]Game, len(c.raw()))
	for division, games := range c.raw() {
		out := make([]Game, 0, len(games))
		for _, g := range games {
			if home, away, ok := scores(g.Key); ok {
				g = g.WithScores(home, away)
			}
			out = append(out, g)
		}
		byDivision[division] = out
	}
	return NewCollection(c.Divisions(), byDivision)
}

// Dedupe collapses games sharing a key. The later game wins and takes the
// position of the first occurrence.
func Dedupe(games []Game) []Game {
	out := make([]Game, 0, len(games))
	at := make(map[string]int, len(games))
	for _, g := range games {
		if i, ok := at[g.Key]; ok {
			out[i] = g
			continue
		}
		at[g.Key] = len(out)
		out = append(out, g)
	}
	return out
}
