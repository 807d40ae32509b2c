package harness

import (
	"strconv"
	"strings"
	"time"
)

// Battery returns the fixed acceptance-test plan for a PX4 SAMV71
// board, in execution order. The plan is the authoritative contract
// for one run and is not user-configurable.
func Battery() []Check {
	return []Check{
		{
			Section: "Testing Basic Connectivity",
			Name:    "Echo test",
			Command: "echo PX4_TEST",
			Wait:    500 * time.Millisecond,
			Eval: func(lines []string) (bool, string) {
				return anyContains(lines, "PX4_TEST"), ""
			},
		},
		{
			Section: "Testing System Information",
			Name:    "Version info",
			Command: "ver all",
			Wait:    time.Second,
			Eval: func(lines []string) (bool, string) {
				passed := anyContains(lines, "SAMV71", "SAMV70") && anyContains(lines, "PX4")
				diag := ""
				if !anyContains(lines, "SAMV7") {
					diag = "SAMV71 not found in output"
				}
				return passed, diag
			},
		},
		{
			Section: "Testing Logger Module",
			Name:    "Logger status",
			Command: "logger status",
			Wait:    time.Second,
			Eval: func(lines []string) (bool, string) {
				passed := anyContains(lines, "Running", "running")
				diag := ""
				if !anyContains(lines, "Running") {
					diag = "Logger not running"
				}
				return passed, diag
			},
		},
		{
			Section: "Testing Commander Module",
			Name:    "Commander status",
			Command: "commander status",
			Wait:    time.Second,
			Eval: func(lines []string) (bool, string) {
				return anyContains(lines, "Disarmed", "Armed"), ""
			},
		},
		{
			Section: "Testing Sensors Module",
			Name:    "Sensors status",
			Command: "sensors status",
			Wait:    time.Second,
			Eval: func(lines []string) (bool, string) {
				return anyContainsFold(lines, "gyro", "accel"), ""
			},
		},
		{
			Section: "Testing Parameter System",
			Name:    "Parameter count",
			Command: "param show | wc -l",
			Wait:    2 * time.Second,
			Eval:    evalParamCount,
		},
		{
			Section: "Testing Parameter Get",
			Name:    "Get SYS_AUTOSTART",
			Command: "param get SYS_AUTOSTART",
			Wait:    500 * time.Millisecond,
			Eval: func(lines []string) (bool, string) {
				return len(lines) > 0, ""
			},
		},
		{
			Section: "Testing Memory Status",
			Name:    "Free memory",
			Command: "free",
			Wait:    500 * time.Millisecond,
			Eval: func(lines []string) (bool, string) {
				return anyContainsFold(lines, "free", "avail"), ""
			},
		},
		{
			Section: "Testing Task List",
			Name:    "Top command",
			Command: "top -n 1",
			Wait:    1500 * time.Millisecond,
			Eval: func(lines []string) (bool, string) {
				// A healthy system runs well over five tasks.
				if len(lines) > 5 {
					return true, ""
				}
				return false, "Too few tasks running"
			},
		},
		{
			Section: "Testing Storage",
			Name:    "microSD check",
			Command: "ls /fs/microsd",
			Wait:    500 * time.Millisecond,
			Eval: func(lines []string) (bool, string) {
				return len(lines) > 0 && !anyContainsFold(lines, "error"), ""
			},
		},
		{
			Section: "Testing I2C Bus",
			Name:    "I2C bus list",
			Command: "i2c bus",
			Wait:    500 * time.Millisecond,
			Eval: func(lines []string) (bool, string) {
				passed := anyContains(lines, "Bus 0", "bus 0")
				diag := ""
				if !anyContains(lines, "0") {
					diag = "I2C bus 0 not found"
				}
				return passed, diag
			},
		},
		{
			Section: "Testing System Messages",
			Name:    "dmesg",
			Command: "dmesg | tail -10",
			Wait:    time.Second,
			Eval: func(lines []string) (bool, string) {
				if anyContainsFold(lines, "hard fault") {
					return false, "Hard fault detected!"
				}
				return len(lines) > 0, ""
			},
		},
	}
}

// evalParamCount looks for a digit-only line above the expected
// parameter count. "No digit line at all" and "count too low" are the
// same failure but carry different diagnostics.
func evalParamCount(lines []string) (bool, string) {
	const minParams = 300

	hasCount := false
	passed := false
	for _, l := range lines {
		s := strings.TrimSpace(l)
		if !isDigits(s) {
			continue
		}
		hasCount = true
		if n, err := strconv.Atoi(s); err == nil && n > minParams {
			passed = true
		}
	}

	diag := ""
	if !hasCount {
		diag = "No parameter count found"
	}
	return passed, diag
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func anyContains(lines []string, subs ...string) bool {
	for _, l := range lines {
		for _, s := range subs {
			if strings.Contains(l, s) {
				return true
			}
		}
	}
	return false
}

func anyContainsFold(lines []string, subs ...string) bool {
	for _, l := range lines {
		lower := strings.ToLower(l)
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
	}
	return false
}
