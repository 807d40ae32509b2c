package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buckleypaul/px4check/internal/harness"
)

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelRunFlow(t *testing.T) {
	m := NewModel("/dev/ttyACM0", 12)
	m = apply(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = apply(t, m, RunStartedMsg{Start: time.Now(), Port: "/dev/ttyACM0"})
	m = apply(t, m, BootSettleMsg{Delay: 5 * time.Second})
	m = apply(t, m, CheckStartedMsg{Index: 1, Check: harness.Check{Name: "Echo test"}})
	m = apply(t, m, CheckFinishedMsg{Index: 1, Result: harness.Result{
		Name:   "Echo test",
		Status: harness.StatusPass,
	}})

	if m.Done() {
		t.Fatal("run must not be done before RunFinishedMsg")
	}
	if !strings.Contains(m.View(), "Echo test") {
		t.Errorf("expected result line in view:\n%s", m.View())
	}

	m = apply(t, m, RunFinishedMsg{Passed: 11, Failed: 1})
	if !m.Done() {
		t.Fatal("expected done after RunFinishedMsg")
	}
	passed, failed := m.Tally()
	if passed != 11 || failed != 1 {
		t.Errorf("expected tally 11/1, got %d/%d", passed, failed)
	}
	if !strings.Contains(m.View(), "11 passed, 1 failed (91.7%)") {
		t.Errorf("expected summary in view:\n%s", m.View())
	}
}

func TestModelShowsDiagnostic(t *testing.T) {
	m := NewModel("/dev/ttyACM0", 12)
	m = apply(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = apply(t, m, CheckFinishedMsg{Index: 12, Result: harness.Result{
		Name:   "dmesg",
		Status: harness.StatusFail,
		Diag:   "Hard fault detected!",
	}})

	if !strings.Contains(m.View(), "Hard fault detected!") {
		t.Errorf("expected diagnostic in view:\n%s", m.View())
	}
}

func TestModelQuitMidRunAborts(t *testing.T) {
	m := NewModel("/dev/ttyACM0", 12)
	m = apply(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)

	if !m.Aborted() {
		t.Error("expected aborted when quitting mid-run")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestModelQuitAfterFinishIsNotAbort(t *testing.T) {
	m := NewModel("/dev/ttyACM0", 12)
	m = apply(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = apply(t, m, RunFinishedMsg{Passed: 12, Failed: 0})

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if m.Aborted() {
		t.Error("quit after completion must not count as abort")
	}
}
