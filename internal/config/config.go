// Package config defines process configuration and loading.
//
// Conventions follow the rest of the project: defaults come from New, a YAML
// file named by FAIRSPLIT_CONFIG may override them, and FAIRSPLIT_* env vars
// override both.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// InputFile is the roster workbook to read.
	InputFile string `koanf:"input_file"`

	// OutputFile is the balanced-groups workbook to write.
	OutputFile string `koanf:"output_file"`

	// GroupCount is the number of groups to split the roster into.
	GroupCount int `koanf:"group_count"`

	// TimeBudgetSeconds bounds each worker's wall-clock run time.
	TimeBudgetSeconds int `koanf:"time_budget_seconds"`

	// Replicas is the number of workers per scenario; zero splits the
	// available CPUs across scenarios.
	Replicas int `koanf:"replicas"`

	// Cooling schedule.
	InitialTemp    float64 `koanf:"initial_temp"`
	CoolingFactor  float64 `koanf:"cooling_factor"`
	TempFloor      float64 `koanf:"temp_floor"`
	ReheatFraction float64 `koanf:"reheat_fraction"`
	ReheatAfter    int     `koanf:"reheat_after"`
	ReheatBurst    int     `koanf:"reheat_burst"`

	// RecomputeEvery is the paranoid full-recomputation interval.
	RecomputeEvery int `koanf:"recompute_every"`

	// Move generation tunables.
	SwapProbability float64 `koanf:"swap_probability"`
	FocusWindow     int     `koanf:"focus_window"`
	RetryLimit      int     `koanf:"retry_limit"`

	// Progress cadence.
	ProgressEvery    int `koanf:"progress_every"`
	ProgressMinGapMS int `koanf:"progress_min_gap_ms"`

	// PolishPasses is the hill-climb pass count applied to champions.
	PolishPasses int `koanf:"polish_passes"`

	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		InputFile:         "participants.xlsx",
		OutputFile:        "balanced_groups.xlsx",
		GroupCount:        0, // required from file or env
		TimeBudgetSeconds: 900,
		Replicas:          0,
		InitialTemp:       1000.0,
		CoolingFactor:     0.9999,
		TempFloor:         0.001,
		ReheatFraction:    0.5,
		ReheatAfter:       2000,
		ReheatBurst:       20,
		RecomputeEvery:    500,
		SwapProbability:   0.8,
		FocusWindow:       3,
		RetryLimit:        32,
		ProgressEvery:     1000,
		ProgressMinGapMS:  250,
		PolishPasses:      3,
		MetricsAddr:       "",
	}
}
