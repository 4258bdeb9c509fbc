package config

import (
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port         string   `validate:"required,numeric"`
	PollInterval Duration `validate:"gt=0"`
	AdminToken   string
	CORSOrigins  []string
	Provider     ProviderConfig
	Cache        CacheConfig
	Log          LogConfig
	Metrics      MetricsConfig
}

// LogConfig feeds logging.NewLogger.
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn warning error"`
	Format string `validate:"oneof=json text"`
	File   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		AdminToken:   envOrDefault(envAdminToken, ""),
		CORSOrigins:  listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		Provider:     loadProvider(),
		Cache:        loadCache(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
			File:   envOrDefault(envLogFile, ""),
		},
		Metrics: loadMetrics(),
	}
}

var validate = validator.New()

// Validate checks field constraints and returns the first failures joined
// into one error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate config")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Namespace()+" failed "+fe.Tag())
	}
	return errors.Newf("invalid config: %v", msgs)
}
