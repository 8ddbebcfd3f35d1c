package config

// MLBStatsConfig controls how we talk to the MLB Stats API and how hard we lean on it.
type MLBStatsConfig struct {
	BaseURL    string
	SportID    int
	RatePerSec float64
	Burst      int
	Retries    int
}

func loadMLBStats() MLBStatsConfig {
	return MLBStatsConfig{
		BaseURL:    envOrDefault(envMLBBaseURL, defaultMLBBaseURL),
		SportID:    intEnvOrDefault(envMLBSportID, defaultMLBSportID),
		RatePerSec: floatEnvOrDefault(envProviderRate, defaultProviderRate),
		Burst:      intEnvOrDefault(envProviderBurst, defaultProviderBurst),
		Retries:    intEnvOrDefault(envProviderRetry, defaultProviderRetry),
	}
}
