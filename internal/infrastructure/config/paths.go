package config

// PathsConfig holds every filesystem location a run uses. Only HighwayData,
// UserLists and Graphs can also be overridden by tmbuild flags.
type PathsConfig struct {
	// HighwayData is the root of the highway data tree (systems.csv,
	// per-system CSVs, and the region/system/*.wpt files).
	HighwayData string `mapstructure:"highway_data" validate:"required"`

	// SystemsFile names the top-level systems CSV, relative to HighwayData.
	SystemsFile string `mapstructure:"systems_file" validate:"required"`

	// UserLists is the directory of *.list travel-list files.
	UserLists string `mapstructure:"user_lists" validate:"required"`

	// Database names the output SQL dump (without extension).
	Database string `mapstructure:"database" validate:"required"`

	// Logs is the output directory for datacheck/concurrency/NMP logs.
	Logs string `mapstructure:"logs" validate:"required"`

	// CSVStats is the output directory for stats CSVs.
	CSVStats string `mapstructure:"csv_stats" validate:"required"`

	// Graphs is the output directory for .tmg graph files.
	Graphs string `mapstructure:"graphs" validate:"required"`

	// NMPMerge is an optional path to a prior tm-master.nmp to merge
	// known-intentional near-misses from before re-logging them.
	NMPMerge string `mapstructure:"nmp_merge"`

	// PIDFile locks the output tree against two concurrent runs.
	PIDFile string `mapstructure:"pid_file"`
}

// RunConfig holds the run-shaping flags that are not filesystem paths.
type RunConfig struct {
	// SkipGraphs suppresses all graph-file generation.
	SkipGraphs bool `mapstructure:"skip_graphs"`

	// ErrorCheckOnly stops after the fatal-error check, before any output
	// is written: exit 0 on success, 1 on aggregated fatal errors.
	ErrorCheckOnly bool `mapstructure:"error_check_only"`

	// UserListRestriction, if set, limits processing to a single named
	// user's travel list instead of the whole directory.
	UserListRestriction string `mapstructure:"user_list_restriction"`
}
