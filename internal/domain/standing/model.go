package standing

// Row is one team's derived record within a division.
type Row struct {
	Team        string
	Wins        int
	Losses      int
	Ties        int
	RunsFor     int
	RunsAgainst int
}

func (r Row) GamesPlayed() int {
	return r.Wins + r.Losses + r.Ties
}

func (r Row) RunDifferential() int {
	return r.RunsFor - r.RunsAgainst
}

// WinPct counts a tie as half a win. A team without decided games has 0.
func (r Row) WinPct() float64 {
	played := r.GamesPlayed()
	if played == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(played)
}
