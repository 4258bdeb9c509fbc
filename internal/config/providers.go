package config

// ProviderConfig selects and tunes the upstream stats source.
type ProviderConfig struct {
	Name            string   `validate:"oneof=fixture remote nbalive"`
	StatsBaseURL    string   `validate:"omitempty,url"`
	StatsAPIKey     string
	LiveBaseURL     string   `validate:"omitempty,url"`
	LiveConcurrency int      `validate:"min=1,max=32"`
	TopN            int      `validate:"min=1"`
	MinAttempts     int      `validate:"min=1"`
	Timeout         Duration `validate:"gt=0"`
	MinInterval     Duration `validate:"gte=0"`
	RetryAttempts   int      `validate:"min=1,max=10"`
	RetryBackoff    Duration `validate:"gt=0"`
}

func loadProvider() ProviderConfig {
	return ProviderConfig{
		Name:            envOrDefault(envProvider, defaultProvider),
		StatsBaseURL:    envOrDefault(envStatsBaseURL, defaultStatsBaseURL),
		StatsAPIKey:     envOrDefault(envStatsAPIKey, ""),
		LiveBaseURL:     envOrDefault(envLiveBaseURL, defaultLiveBaseURL),
		LiveConcurrency: intEnvOrDefault(envLiveConcurrency, defaultLiveConcurrency),
		TopN:            intEnvOrDefault(envLeadersTopN, defaultLeadersTopN),
		MinAttempts:     intEnvOrDefault(envLeadersMinAttempts, defaultLeadersMinAttempts),
		Timeout:         durationEnvOrDefault(envProviderTimeout, defaultProviderTimeout),
		MinInterval:     durationEnvOrDefault(envProviderInterval, defaultProviderInterval),
		RetryAttempts:   intEnvOrDefault(envProviderAttempts, defaultProviderAttempts),
		RetryBackoff:    durationEnvOrDefault(envProviderBackoff, defaultProviderBackoff),
	}
}
