package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	DefaultBaudRate      = 115200
	DefaultReportPath    = "px4_test_report.txt"
	DefaultReadTimeoutMS = 2000
)

// Config holds all px4check configuration.
type Config struct {
	SerialPort     string `json:"serial_port,omitempty"`
	SerialBaudRate int    `json:"serial_baud_rate,omitempty"`
	ReportPath     string `json:"report_path,omitempty"`
	ReadTimeoutMS  int    `json:"read_timeout_ms,omitempty"`
	LogDir         string `json:"log_dir,omitempty"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		SerialBaudRate: DefaultBaudRate,
		ReportPath:     DefaultReportPath,
		ReadTimeoutMS:  DefaultReadTimeoutMS,
	}
}

// Load reads and merges global and working-directory configs.
// Order: defaults → global (~/.config/px4check/config.json) → local (.px4check/config.json).
func Load(dir string) Config {
	cfg := Defaults()

	// Global config
	if home, err := os.UserHomeDir(); err == nil {
		globalPath := filepath.Join(home, ".config", "px4check", "config.json")
		mergeFromFile(&cfg, globalPath)
	}

	// Local config
	if dir != "" {
		localPath := filepath.Join(dir, ".px4check", "config.json")
		mergeFromFile(&cfg, localPath)
	}

	return cfg
}

// Save writes the config to the local .px4check/config.json by default,
// or to the global config if global is true.
func Save(cfg Config, dir string, global bool) error {
	var target string
	if global {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		target = filepath.Join(home, ".config", "px4check")
	} else {
		target = filepath.Join(dir, ".px4check")
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(target, "config.json"), data, 0o644)
}

func mergeFromFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var fileCfg Config
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return
	}

	if fileCfg.SerialPort != "" {
		cfg.SerialPort = fileCfg.SerialPort
	}
	if fileCfg.SerialBaudRate != 0 {
		cfg.SerialBaudRate = fileCfg.SerialBaudRate
	}
	if fileCfg.ReportPath != "" {
		cfg.ReportPath = fileCfg.ReportPath
	}
	if fileCfg.ReadTimeoutMS != 0 {
		cfg.ReadTimeoutMS = fileCfg.ReadTimeoutMS
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}
}
