// Package harness runs the fixed acceptance-test battery against a
// flight-controller board over its serial console and records one
// result per check.
package harness

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// bootSettle accommodates a board that was just power-cycled or
	// reflashed before the first command goes out.
	bootSettle = 5 * time.Second

	// maxResponseLines caps runaway output from a single command.
	maxResponseLines = 100
)

// Transport is the command/response link to the board. Implemented by
// serial.Conn; faked in tests.
type Transport interface {
	Connect() error
	Disconnect()
	SendCommand(command string, wait time.Duration, maxLines int) ([]string, error)
}

// Harness owns the transport for the process lifetime and accumulates
// results across one run. Not safe for concurrent use; the run is
// strictly sequential.
type Harness struct {
	transport Transport
	portName  string
	baudRate  int
	observer  Observer
	results   []Result
	started   time.Time
	sleep     func(time.Duration)
	log       *zap.Logger
}

// New creates a Harness for one run. A nil observer discards progress
// output; a nil logger discards debug output.
func New(transport Transport, portName string, baudRate int, observer Observer, log *zap.Logger) *Harness {
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Harness{
		transport: transport,
		portName:  portName,
		baudRate:  baudRate,
		observer:  observer,
		sleep:     time.Sleep,
		log:       log,
	}
}

// Connect opens the transport. The caller must abort the run on error
// rather than test against a dead link.
func (h *Harness) Connect() error {
	return h.transport.Connect()
}

// Disconnect closes the transport. Idempotent.
func (h *Harness) Disconnect() {
	h.transport.Disconnect()
}

// RunCheck executes one check, appends its Result and reports whether
// it passed. Per-check errors never abort the run.
func (h *Harness) RunCheck(c Check) bool {
	index := len(h.results) + 1
	h.observer.CheckStarted(index, c)

	lines, err := h.transport.SendCommand(c.Command, c.Wait, maxResponseLines)
	if err != nil {
		h.log.Warn("check got no response",
			zap.String("name", c.Name),
			zap.String("command", c.Command),
			zap.Error(err),
		)
		r := Result{
			Name:    c.Name,
			Command: c.Command,
			Status:  StatusNoResponse,
			Diag:    "No response",
		}
		h.results = append(h.results, r)
		h.observer.CheckFinished(index, r)
		return false
	}

	passed, diag := evaluate(c.Eval, lines)

	status := StatusFail
	if passed {
		status = StatusPass
	}
	r := Result{
		Name:     c.Name,
		Command:  c.Command,
		Status:   status,
		Response: lines,
		Diag:     diag,
	}
	h.results = append(h.results, r)

	h.log.Info("check finished",
		zap.String("name", c.Name),
		zap.String("status", string(status)),
		zap.Int("lines", len(lines)),
	)
	h.observer.CheckFinished(index, r)
	return passed
}

// evaluate applies the evaluator, converting a panic into a failure so
// a broken evaluator can never abort the run. With no evaluator the
// check passes iff at least one non-blank line was received.
func evaluate(eval Evaluator, lines []string) (passed bool, diag string) {
	if eval == nil {
		return len(lines) > 0, ""
	}
	defer func() {
		if r := recover(); r != nil {
			passed = false
			diag = fmt.Sprintf("Check function error: %v", r)
		}
	}()
	return eval(lines)
}

// RunAll executes the battery in order after the boot-settle delay and
// returns the tally.
func (h *Harness) RunAll(battery []Check) (passed, failed int) {
	h.started = time.Now()
	h.observer.RunStarted(h.started, h.portName)

	h.observer.BootSettle(bootSettle)
	h.sleep(bootSettle)

	for _, c := range battery {
		if h.RunCheck(c) {
			passed++
		} else {
			failed++
		}
	}

	h.observer.RunFinished(passed, failed)
	return passed, failed
}

// Results returns a copy of the recorded results in execution order.
func (h *Harness) Results() []Result {
	out := make([]Result, len(h.results))
	copy(out, h.results)
	return out
}
