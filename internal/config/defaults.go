package config

const (
	defaultLogDir           = "~/.local/share/glidefront/logs"
	defaultLogRetentionDays = 7
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultMaxIdle          = 100
	defaultReserveIdle      = 5
	defaultRequestTimeout   = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Frontend: Frontend{
			MaxIdle:        defaultMaxIdle,
			ReserveIdle:    defaultReserveIdle,
			RequestTimeout: defaultRequestTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
