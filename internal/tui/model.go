package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buckleypaul/px4check/internal/harness"
	"github.com/buckleypaul/px4check/internal/ui"
)

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the live run view: a scrolling transcript of check results
// plus a summary line once the battery finishes.
type Model struct {
	port     string
	total    int
	lines    []string
	current  string
	viewport viewport.Model
	done     bool
	aborted  bool
	passed   int
	failed   int
	width    int
	height   int
}

// NewModel creates the run view for a battery of the given size.
func NewModel(port string, total int) Model {
	return Model{
		port:     port,
		total:    total,
		viewport: viewport.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 5
		if vpHeight < 3 {
			vpHeight = 3
		}
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = vpHeight
		m.refresh()
		return m, nil

	case RunStartedMsg:
		m.append(ui.DimStyle.Render(fmt.Sprintf(
			"Started %s on %s", msg.Start.Format("2006-01-02 15:04:05"), msg.Port)))
		return m, nil

	case BootSettleMsg:
		m.append(ui.DimStyle.Render(fmt.Sprintf(
			"Waiting for board to boot (%.0f seconds)...", msg.Delay.Seconds())))
		return m, nil

	case CheckStartedMsg:
		m.current = fmt.Sprintf("[%d/%d] %s...", msg.Index, m.total, msg.Check.Name)
		m.refresh()
		return m, nil

	case CheckFinishedMsg:
		m.current = ""
		m.append(renderResult(msg.Index, m.total, msg.Result))
		return m, nil

	case RunFinishedMsg:
		m.done = true
		m.passed = msg.Passed
		m.failed = msg.Failed
		m.append("")
		m.append(renderSummary(msg.Passed, msg.Failed))
		m.append(ui.DimStyle.Render("Press q to quit."))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			if !m.done {
				m.aborted = true
			}
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(ui.Title("px4check - PX4 SAMV71 Acceptance Test"))
	b.WriteString(ui.DimStyle.Render("  " + m.port))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	return b.String()
}

// Done reports whether the battery ran to completion.
func (m Model) Done() bool { return m.done }

// Aborted reports whether the operator quit mid-run.
func (m Model) Aborted() bool { return m.aborted }

// Tally returns the final counts; valid once Done.
func (m Model) Tally() (passed, failed int) { return m.passed, m.failed }

func (m *Model) append(line string) {
	m.lines = append(m.lines, line)
	m.refresh()
}

func (m *Model) refresh() {
	content := strings.Join(m.lines, "\n")
	if m.current != "" {
		content += "\n" + ui.DimStyle.Render(m.current)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func renderResult(index, total int, r harness.Result) string {
	var mark, status string
	switch r.Status {
	case harness.StatusPass:
		mark, status = ui.PassMark(), "PASS"
	case harness.StatusNoResponse:
		mark, status = ui.FailMark(), "FAILED (no response)"
	default:
		mark, status = ui.FailMark(), "FAIL"
	}

	line := fmt.Sprintf("%s [%d/%d] %s - %s", mark, index, total, r.Name, status)
	if r.Diag != "" && r.Status != harness.StatusNoResponse {
		line += "\n    " + ui.WarnStyle.Render(r.Diag)
	}
	return line
}

func renderSummary(passed, failed int) string {
	rate := harness.SuccessRate(passed, failed)
	summary := fmt.Sprintf("%d passed, %d failed (%.1f%%)", passed, failed, rate)
	if failed == 0 {
		return ui.PassStyle.Render(summary)
	}
	return ui.FailStyle.Render(summary)
}
