package streaks

import (
	"sort"

	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
)

// Rank returns the collection's streaks longest first. Equal lengths keep collection order.
func Rank(c *domainstreaks.Collection) []domainstreaks.Streak {
	ranked := c.Items()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Length > ranked[j].Length
	})
	return ranked
}

// Filter keeps streaks at least min long and, when t is non-empty, of that type.
func Filter(items []domainstreaks.Streak, min int, t domainstreaks.Type) []domainstreaks.Streak {
	out := make([]domainstreaks.Streak, 0, len(items))
	for _, s := range items {
		if s.Length < min {
			continue
		}
		if t != "" && s.Type != t {
			continue
		}
		out = append(out, s)
	}
	return out
}
