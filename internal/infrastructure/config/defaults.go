package config

import (
	"runtime"
	"time"
)

// SetDefaults sets default values for all configuration fields.
func SetDefaults(cfg *Config) {
	// Paths defaults
	if cfg.Paths.HighwayData == "" {
		cfg.Paths.HighwayData = "."
	}
	if cfg.Paths.SystemsFile == "" {
		cfg.Paths.SystemsFile = "systems.csv"
	}
	if cfg.Paths.UserLists == "" {
		cfg.Paths.UserLists = "userlists"
	}
	if cfg.Paths.Database == "" {
		cfg.Paths.Database = "travelmapping"
	}
	if cfg.Paths.Logs == "" {
		cfg.Paths.Logs = "logs"
	}
	if cfg.Paths.CSVStats == "" {
		cfg.Paths.CSVStats = "."
	}
	if cfg.Paths.Graphs == "" {
		cfg.Paths.Graphs = "graphs"
	}
	if cfg.Paths.PIDFile == "" {
		cfg.Paths.PIDFile = "tmbuild.pid"
	}

	// Thread defaults
	if cfg.Threads.Count == 0 {
		cfg.Threads.Count = runtime.NumCPU()
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = cfg.Paths.Database + ".db"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
