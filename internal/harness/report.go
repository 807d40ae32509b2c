package harness

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// SaveReport writes the full run transcript to path, overwriting any
// existing file. The field order and labels are the stable contract
// for anyone parsing the report. Content depends only on the recorded
// results and the run start time, so re-saving is byte-identical.
func (h *Harness) SaveReport(path string) error {
	if h.started.IsZero() {
		h.started = time.Now()
	}

	var b strings.Builder
	dashes := strings.Repeat("-", bannerWidth)

	b.WriteString(rule() + "\n")
	b.WriteString("PX4 SAMV71 Test Report\n")
	b.WriteString(rule() + "\n")
	fmt.Fprintf(&b, "Date: %s\n", h.started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Port: %s\n", h.portName)
	fmt.Fprintf(&b, "Baudrate: %d\n", h.baudRate)
	b.WriteString(rule() + "\n\n")

	for i, r := range h.results {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, r.Name)
		fmt.Fprintf(&b, "Command: %s\n", r.Command)
		fmt.Fprintf(&b, "Status: %s\n", r.Status)
		if r.Diag != "" {
			fmt.Fprintf(&b, "Error: %s\n", r.Diag)
		}
		b.WriteString("Response:\n")
		for _, line := range r.Response {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n" + dashes + "\n\n")
	}

	passed, failed := Tally(h.results)
	b.WriteString(rule() + "\n")
	b.WriteString("SUMMARY\n")
	b.WriteString(rule() + "\n")
	fmt.Fprintf(&b, "Total Tests: %d\n", len(h.results))
	fmt.Fprintf(&b, "Passed: %d\n", passed)
	fmt.Fprintf(&b, "Failed: %d\n", failed)
	fmt.Fprintf(&b, "Success Rate: %.1f%%\n", SuccessRate(passed, failed))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
