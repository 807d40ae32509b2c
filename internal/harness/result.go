package harness

// Status is the outcome of one executed check.
type Status string

const (
	StatusPass       Status = "PASS"
	StatusFail       Status = "FAIL"
	StatusNoResponse Status = "FAILED-NO-RESPONSE"
)

// Result records the outcome of executing one Check. Results are
// appended in execution order and never mutated afterwards.
type Result struct {
	Name     string
	Command  string
	Status   Status
	Response []string
	Diag     string
}

// Passed reports whether the check passed.
func (r Result) Passed() bool {
	return r.Status == StatusPass
}

// Tally counts passed and failed results. Anything that is not a PASS
// counts as failed, so passed+failed always equals len(results).
func Tally(results []Result) (passed, failed int) {
	for _, r := range results {
		if r.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// SuccessRate returns the pass percentage. Zero totals rate as 0.
func SuccessRate(passed, failed int) float64 {
	total := passed + failed
	if total == 0 {
		return 0
	}
	return float64(passed) / float64(total) * 100
}
