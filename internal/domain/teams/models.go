package teams

// Team is an active club considered for a season run.
// ID is the upstream provider's opaque key, kept as a string so fixtures and providers agree.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RosterEntry is a raw roster row as returned by a roster provider.
type RosterEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Team reduces the entry to the (id, name) pair used by the core.
func (e RosterEntry) Team() Team {
	return Team{ID: e.ID, Name: e.Name}
}
