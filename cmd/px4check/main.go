package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/buckleypaul/px4check/internal/config"
	"github.com/buckleypaul/px4check/internal/harness"
	"github.com/buckleypaul/px4check/internal/logging"
	"github.com/buckleypaul/px4check/internal/serial"
	"github.com/buckleypaul/px4check/internal/store"
	"github.com/buckleypaul/px4check/internal/tui"
	"github.com/buckleypaul/px4check/internal/ui"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
	cfg := config.Load(cwd)

	baud := flag.Int("baud", cfg.SerialBaudRate, "baud rate")
	output := flag.String("output", cfg.ReportPath, "output report filename")
	timeout := flag.Float64("timeout", float64(cfg.ReadTimeoutMS)/1000, "serial read timeout in seconds")
	useTUI := flag.Bool("tui", false, "show a live run view instead of the plain transcript")
	list := flag.Bool("list", false, "list available serial ports and exit")
	debug := flag.Bool("debug", false, "trace serial traffic in the log file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: px4check [flags] <port>")
		fmt.Fprintln(os.Stderr, "  e.g. px4check /dev/ttyACM0")
		fmt.Fprintln(os.Stderr, "       px4check -baud 115200 -output test_report.txt COM3")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		return listPorts()
	}

	portName := flag.Arg(0)
	if portName == "" {
		portName = cfg.SerialPort
	}
	if portName == "" {
		flag.Usage()
		return exitFailure
	}

	logDir := cfg.LogDir
	if logDir == "" {
		logDir = filepath.Join(cwd, ".px4check", "logs")
	}
	log, err := logging.New(logDir, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
		log = zap.NewNop()
	}
	defer log.Sync()

	readTimeout := time.Duration(*timeout * float64(time.Second))
	conn := serial.NewConn(portName, *baud, readTimeout, log)

	// SIGINT must still reach the disconnect step.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n\nTest interrupted by user")
		conn.Disconnect()
		log.Sync()
		os.Exit(exitInterrupted)
	}()

	if err := conn.Connect(); err != nil {
		fmt.Fprintf(os.Stderr, "%s Failed to connect to %s: %v\n", ui.FailMark(), portName, err)
		return exitFailure
	}
	defer func() {
		conn.Disconnect()
		fmt.Printf("%s Disconnected from %s\n", ui.PassMark(), portName)
	}()
	fmt.Printf("%s Connected to %s at %d baud\n", ui.PassMark(), portName, *baud)

	battery := harness.Battery()
	start := time.Now()

	var h *harness.Harness
	var failed int
	if *useTUI {
		p := tea.NewProgram(tui.NewModel(portName, len(battery)), tea.WithAltScreen())
		h = harness.New(conn, portName, *baud, tui.NewObserver(p), log)
		go tui.Run(h, battery)

		final, err := p.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s Error during testing: %v\n", ui.FailMark(), err)
			return exitFailure
		}
		m := final.(tui.Model)
		if m.Aborted() {
			return exitInterrupted
		}
		_, failed = m.Tally()
	} else {
		h = harness.New(conn, portName, *baud, &harness.ConsoleObserver{Out: os.Stdout}, log)
		_, failed = h.RunAll(battery)
	}

	if err := h.SaveReport(*output); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.FailMark(), err)
		return exitFailure
	}
	fmt.Printf("Detailed report saved to: %s\n", *output)

	recordRun(cwd, h, portName, *baud, *output, time.Since(start), log)

	if failed > 0 {
		return exitFailure
	}
	return exitOK
}

// recordRun appends the run to local history. History is a convenience;
// a write failure must not fail the run.
func recordRun(cwd string, h *harness.Harness, port string, baud int, reportPath string, elapsed time.Duration, log *zap.Logger) {
	passed, failed := harness.Tally(h.Results())
	st := store.New(filepath.Join(cwd, ".px4check"))
	err := st.AddRun(store.RunRecord{
		Timestamp:  time.Now(),
		Port:       port,
		BaudRate:   baud,
		Passed:     passed,
		Failed:     failed,
		Duration:   elapsed.Round(time.Second).String(),
		ReportPath: reportPath,
	})
	if err != nil {
		log.Warn("record run history", zap.Error(err))
	}
}

func listPorts() int {
	ports, err := serial.ListPorts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found.")
		return exitOK
	}
	for _, p := range ports {
		fmt.Println(p.Label())
	}
	return exitOK
}
