package config

// CacheConfig points the snapshot publisher at Redis. An empty Addr
// disables publishing.
type CacheConfig struct {
	Addr     string
	Password string
	DB       int      `validate:"gte=0"`
	Key      string   `validate:"required_with=Addr"`
	Channel  string   `validate:"required_with=Addr"`
	TTL      Duration `validate:"gte=0"`
}

// Enabled reports whether a Redis address is configured.
func (c CacheConfig) Enabled() bool {
	return c.Addr != ""
}

func loadCache() CacheConfig {
	return CacheConfig{
		Addr:     envOrDefault(envRedisAddr, ""),
		Password: envOrDefault(envRedisPassword, ""),
		DB:       intEnvOrDefault(envRedisDB, 0),
		Key:      envOrDefault(envRedisKey, defaultRedisKey),
		Channel:  envOrDefault(envRedisChannel, defaultRedisChannel),
		TTL:      durationEnvOrDefault(envRedisTTL, defaultRedisTTL),
	}
}
