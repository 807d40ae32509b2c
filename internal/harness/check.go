package harness

import "time"

// Evaluator inspects the decoded response lines of one check and
// decides pass/fail, optionally returning a diagnostic for the
// operator. Evaluators must be pure over their input; a panicking
// evaluator is recovered and recorded as a failure.
type Evaluator func(lines []string) (passed bool, diag string)

// Check is one entry in the fixed test battery: a shell command, how
// long to let the board answer, and the rule for judging the answer.
// A nil Eval passes whenever any non-blank line came back.
type Check struct {
	Section string
	Name    string
	Command string
	Wait    time.Duration
	Eval    Evaluator
}
