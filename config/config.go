package config

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"pulse/model"
)

const (
	dirName  = ".pulse"
	fileName = "config.yaml"
)

// Dir is the per-user directory holding the config file and the log.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, dirName)
}

func DefaultPath() string {
	return filepath.Join(Dir(), fileName)
}

func Default() *Config {
	return &Config{
		SampleInterval:   time.Second,
		ProcessInterval:  5 * time.Second,
		ChartInterval:    time.Second,
		TerminateTimeout: 5 * time.Second,
		HistorySize:      model.DefaultHistory,
		Theme:            ThemeDark,
		CPUThreshold:     50,
		MemThreshold:     10,
		ConfirmKill:      true,
		LogFile:          filepath.Join(Dir(), "pulse.log"),
		LogLevel:         "info",
	}
}

// Load reads the config at path. A missing file is created with defaults.
// A file that cannot be parsed yields defaults together with the parse
// error, and is left as it is so the user can fix it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		return cfg, Save(path, cfg)
	}
	if err != nil {
		return Default(), errors.Wrapf(err, "reading %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), errors.Wrapf(err, "parsing %s", path)
	}
	cfg.Validate()
	return cfg, nil
}

var saveMu sync.Mutex

// Save writes cfg to path atomically. Concurrent saves are serialised and
// each one goes through its own temp file.
func Save(path string, cfg *Config) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config dir")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "encoding config")
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return errors.Wrap(err, "creating temp config")
	}
	tmp := f.Name()
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "writing %s", tmp)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "writing %s", tmp)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "writing %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "replacing %s", path)
	}
	return nil
}

// Validate replaces out-of-range values with their defaults.
func (c *Config) Validate() {
	def := Default()
	if c.SampleInterval <= 0 {
		c.SampleInterval = def.SampleInterval
	}
	if c.ProcessInterval <= 0 {
		c.ProcessInterval = def.ProcessInterval
	}
	if c.ChartInterval <= 0 {
		c.ChartInterval = def.ChartInterval
	}
	if c.TerminateTimeout <= 0 {
		c.TerminateTimeout = def.TerminateTimeout
	}
	if c.HistorySize <= 0 {
		c.HistorySize = def.HistorySize
	}
	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		c.Theme = def.Theme
	}
	if c.CPUThreshold <= 0 || c.CPUThreshold > 100 {
		c.CPUThreshold = def.CPUThreshold
	}
	if c.MemThreshold <= 0 || c.MemThreshold > 100 {
		c.MemThreshold = def.MemThreshold
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}
