package config

import "time"

type Config interface {
	Precision() int
	HistorySize() int
	AllowNonRootAccess() bool
	HTTPAddr() string
	HistoryMaxAge() time.Duration
	PruneSchedule() string

	SetPrecision(int)
	SetHistorySize(int)
	SetAllowNonRootAccess(bool)
	SetHTTPAddr(string)
	SetHistoryMaxAge(time.Duration)
	SetPruneSchedule(string)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
