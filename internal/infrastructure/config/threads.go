package config

// ThreadConfig sizes the ingestion worker pool. It is set from the config
// file or environment; tmbuild has no thread-count flag.
type ThreadConfig struct {
	// Count is the number of workers draining the HighwaySystem queue.
	// Zero means "use runtime.NumCPU()".
	Count int `mapstructure:"count" validate:"min=0"`
}
