package analysis

// seasonGamePhases lists (first season, scheduled games) for each schedule era.
var seasonGamePhases = []struct {
	from  int
	games int
}{
	{1900, 140},
	{1904, 154},
	{1919, 140},
	{1920, 154},
	{1962, 162},
}

// GamesInSeason returns the scheduled regular-season length for a season.
func GamesInSeason(season int) int {
	games := seasonGamePhases[0].games
	for _, phase := range seasonGamePhases {
		if season < phase.from {
			break
		}
		games = phase.games
	}
	return games
}

// DefaultThresholds are the streak lengths every section is computed for.
func DefaultThresholds() []int {
	return []int{5, 6, 7, 8, 9, 10}
}

// DefaultIgnoredSeasons are excluded from team-season statistics (shortened schedules).
func DefaultIgnoredSeasons() map[int]bool {
	return map[int]bool{2020: true}
}
