package config

// OutputConfig controls where run results land on disk.
type OutputConfig struct {
	Dir        string
	CSVEnabled bool
	// Retention is the number of season reports kept; 0 keeps all.
	Retention int
}

func loadOutput() OutputConfig {
	return OutputConfig{
		Dir:        envOrDefault(envOutputDir, defaultOutputDir),
		CSVEnabled: boolEnvOrDefault(envCSVEnabled, defaultCSVEnabled),
		Retention:  nonNegativeIntEnv(envReportRetention, 0),
	}
}
