package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.SerialBaudRate != 115200 {
		t.Errorf("expected SerialBaudRate=115200, got=%d", cfg.SerialBaudRate)
	}
	if cfg.ReportPath != "px4_test_report.txt" {
		t.Errorf("expected default report path, got=%s", cfg.ReportPath)
	}
	if cfg.ReadTimeoutMS != 2000 {
		t.Errorf("expected ReadTimeoutMS=2000, got=%d", cfg.ReadTimeoutMS)
	}
}

func TestLoadMerge(t *testing.T) {
	tmp := t.TempDir()
	localDir := filepath.Join(tmp, ".px4check")
	os.MkdirAll(localDir, 0o755)
	os.WriteFile(filepath.Join(localDir, "config.json"), []byte(`{
		"serial_port": "/dev/ttyACM0",
		"serial_baud_rate": 57600
	}`), 0o644)

	cfg := Load(tmp)

	if cfg.SerialPort != "/dev/ttyACM0" {
		t.Errorf("expected serial_port from local config, got=%s", cfg.SerialPort)
	}
	if cfg.SerialBaudRate != 57600 {
		t.Errorf("expected baud rate 57600 from local config, got=%d", cfg.SerialBaudRate)
	}
	// ReportPath should still be default since not overridden
	if cfg.ReportPath != "px4_test_report.txt" {
		t.Errorf("expected default report path, got=%s", cfg.ReportPath)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmp := t.TempDir()
	cfg := Config{
		SerialPort:     "/dev/ttyUSB1",
		SerialBaudRate: 921600,
		ReportPath:     "bench_report.txt",
	}

	err := Save(cfg, tmp, false)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(tmp, ".px4check", "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	loaded := Load(tmp)
	if loaded.SerialPort != "/dev/ttyUSB1" {
		t.Errorf("expected SerialPort=/dev/ttyUSB1, got=%s", loaded.SerialPort)
	}
	if loaded.SerialBaudRate != 921600 {
		t.Errorf("expected SerialBaudRate=921600, got=%d", loaded.SerialBaudRate)
	}
	if loaded.ReportPath != "bench_report.txt" {
		t.Errorf("expected ReportPath=bench_report.txt, got=%s", loaded.ReportPath)
	}
}

func TestLoadIgnoresMalformedFile(t *testing.T) {
	tmp := t.TempDir()
	localDir := filepath.Join(tmp, ".px4check")
	os.MkdirAll(localDir, 0o755)
	os.WriteFile(filepath.Join(localDir, "config.json"), []byte(`{not json`), 0o644)

	cfg := Load(tmp)
	if cfg.SerialBaudRate != DefaultBaudRate {
		t.Errorf("expected defaults on malformed config, got baud=%d", cfg.SerialBaudRate)
	}
}
