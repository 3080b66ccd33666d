package config

import "time"

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Config struct {
	SampleInterval   time.Duration `yaml:"sample_interval"`
	ProcessInterval  time.Duration `yaml:"process_interval"`
	ChartInterval    time.Duration `yaml:"chart_interval"`
	TerminateTimeout time.Duration `yaml:"terminate_timeout"`
	HistorySize      int           `yaml:"history_size"`

	Theme        string  `yaml:"theme"`
	CPUThreshold float64 `yaml:"cpu_threshold"`
	MemThreshold float64 `yaml:"mem_threshold"`
	ConfirmKill  bool    `yaml:"confirm_kill"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}
