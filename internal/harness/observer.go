package harness

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/buckleypaul/px4check/internal/ui"
)

// Observer receives run progress. The console implementation renders
// the operator-facing output; the TUI forwards bubbletea messages.
type Observer interface {
	RunStarted(start time.Time, port string)
	BootSettle(d time.Duration)
	CheckStarted(index int, c Check)
	CheckFinished(index int, r Result)
	RunFinished(passed, failed int)
}

type nopObserver struct{}

func (nopObserver) RunStarted(time.Time, string) {}
func (nopObserver) BootSettle(time.Duration)     {}
func (nopObserver) CheckStarted(int, Check)      {}
func (nopObserver) CheckFinished(int, Result)    {}
func (nopObserver) RunFinished(int, int)         {}

const bannerWidth = 70

func rule() string {
	return strings.Repeat("=", bannerWidth)
}

// ConsoleObserver prints the linear run transcript.
type ConsoleObserver struct {
	Out io.Writer
}

func (o *ConsoleObserver) RunStarted(start time.Time, port string) {
	fmt.Fprintln(o.Out)
	fmt.Fprintln(o.Out, rule())
	fmt.Fprintln(o.Out, ui.Title("PX4 SAMV71 Automated Test Suite"))
	fmt.Fprintln(o.Out, rule())
	fmt.Fprintf(o.Out, "Started: %s\n", start.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(o.Out, "Port: %s\n", port)
	fmt.Fprintln(o.Out, rule())
	fmt.Fprintln(o.Out)
}

func (o *ConsoleObserver) BootSettle(d time.Duration) {
	fmt.Fprintf(o.Out, "Waiting for board to boot (%.0f seconds)...\n", d.Seconds())
}

func (o *ConsoleObserver) CheckStarted(index int, c Check) {
	fmt.Fprintf(o.Out, "\n[%d] %s\n", index, c.Section)
	fmt.Fprintf(o.Out, "  Running: %s... ", c.Name)
}

func (o *ConsoleObserver) CheckFinished(index int, r Result) {
	switch r.Status {
	case StatusPass:
		fmt.Fprintf(o.Out, "%s PASS\n", ui.PassMark())
	case StatusNoResponse:
		fmt.Fprintf(o.Out, "%s FAILED (no response)\n", ui.FailMark())
		return
	default:
		fmt.Fprintf(o.Out, "%s FAIL\n", ui.FailMark())
	}
	// A diagnostic can accompany a pass, e.g. a logger that reports
	// lowercase "running".
	if r.Diag != "" {
		fmt.Fprintf(o.Out, "    Error: %s\n", r.Diag)
	}
}

func (o *ConsoleObserver) RunFinished(passed, failed int) {
	fmt.Fprintln(o.Out)
	fmt.Fprintln(o.Out, rule())
	fmt.Fprintln(o.Out, ui.Title("TEST SUMMARY"))
	fmt.Fprintln(o.Out, rule())
	fmt.Fprintf(o.Out, "Total Tests: %d\n", passed+failed)
	fmt.Fprintf(o.Out, "%s Passed: %d\n", ui.PassMark(), passed)
	fmt.Fprintf(o.Out, "%s Failed: %d\n", ui.FailMark(), failed)
	fmt.Fprintf(o.Out, "Success Rate: %.1f%%\n", SuccessRate(passed, failed))
	fmt.Fprintln(o.Out, rule())
	fmt.Fprintln(o.Out)
}
