package harness

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func runHealthy(t *testing.T) *Harness {
	t.Helper()
	ft := &fakeTransport{responses: healthyResponses()}
	h := newTestHarness(ft, nil)
	h.RunAll(Battery())
	return h
}

func TestSaveReportIdempotent(t *testing.T) {
	h := runHealthy(t)
	dir := t.TempDir()

	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	if err := h.SaveReport(first); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	if err := h.SaveReport(second); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Error("expected byte-identical reports for the same results")
	}
}

func TestSaveReportOverwrites(t *testing.T) {
	h := runHealthy(t)
	path := filepath.Join(t.TempDir(), "report.txt")

	os.WriteFile(path, []byte("stale content\n"), 0o644)
	if err := h.SaveReport(path); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	if strings.Contains(readFile(t, path), "stale content") {
		t.Error("expected report to overwrite the target file")
	}
}

func TestSaveReportFormat(t *testing.T) {
	h := runHealthy(t)
	h.started = time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "report.txt")

	if err := h.SaveReport(path); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	report := readFile(t, path)

	for _, want := range []string{
		"PX4 SAMV71 Test Report",
		"Date: 2026-08-28 09:30:00",
		"Port: /dev/ttyACM0",
		"Baudrate: 115200",
		"[1] Echo test",
		"Command: echo PX4_TEST",
		"Status: PASS",
		"Response:\n  PX4_TEST",
		"[12] dmesg",
		"SUMMARY",
		"Total Tests: 12",
		"Passed: 12",
		"Failed: 0",
		"Success Rate: 100.0%",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestSaveReportIncludesDiagnostics(t *testing.T) {
	responses := healthyResponses()
	responses["param show | wc -l"] = []string{"no such command"}
	ft := &fakeTransport{responses: responses}
	h := newTestHarness(ft, nil)
	h.RunAll(Battery())

	path := filepath.Join(t.TempDir(), "report.txt")
	if err := h.SaveReport(path); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	report := readFile(t, path)

	if !strings.Contains(report, "Status: FAIL") {
		t.Error("expected a FAIL entry")
	}
	if !strings.Contains(report, "Error: No parameter count found") {
		t.Error("expected the evaluator diagnostic in the report")
	}
}

func TestSaveReportUnwritablePath(t *testing.T) {
	h := runHealthy(t)
	if err := h.SaveReport(filepath.Join(t.TempDir(), "missing", "report.txt")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
