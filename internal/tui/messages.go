package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buckleypaul/px4check/internal/harness"
)

// RunStartedMsg is sent when the battery begins.
type RunStartedMsg struct {
	Start time.Time
	Port  string
}

// BootSettleMsg is sent while waiting for the board to boot.
type BootSettleMsg struct {
	Delay time.Duration
}

// CheckStartedMsg is sent when a check's command goes out.
type CheckStartedMsg struct {
	Index int
	Check harness.Check
}

// CheckFinishedMsg is sent when a check's result is recorded.
type CheckFinishedMsg struct {
	Index  int
	Result harness.Result
}

// RunFinishedMsg is sent after the last check with the final tally.
type RunFinishedMsg struct {
	Passed int
	Failed int
}

// Observer forwards harness progress into a running bubbletea program.
type Observer struct {
	p *tea.Program
}

// NewObserver wraps a program as a harness.Observer.
func NewObserver(p *tea.Program) *Observer {
	return &Observer{p: p}
}

func (o *Observer) RunStarted(start time.Time, port string) {
	o.p.Send(RunStartedMsg{Start: start, Port: port})
}

func (o *Observer) BootSettle(d time.Duration) {
	o.p.Send(BootSettleMsg{Delay: d})
}

func (o *Observer) CheckStarted(index int, c harness.Check) {
	o.p.Send(CheckStartedMsg{Index: index, Check: c})
}

func (o *Observer) CheckFinished(index int, r harness.Result) {
	o.p.Send(CheckFinishedMsg{Index: index, Result: r})
}

func (o *Observer) RunFinished(passed, failed int) {
	o.p.Send(RunFinishedMsg{Passed: passed, Failed: failed})
}

// Run executes the battery, feeding progress to the program through
// the harness observer. Call it in a goroutine alongside Program.Run;
// the final tally is read from the model once the program exits.
func Run(h *harness.Harness, battery []harness.Check) {
	h.RunAll(battery)
}
