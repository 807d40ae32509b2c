package store

import "time"

// RunRecord captures the outcome of one acceptance-test run.
type RunRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Port       string    `json:"port"`
	BaudRate   int       `json:"baud_rate"`
	Passed     int       `json:"passed"`
	Failed     int       `json:"failed"`
	Duration   string    `json:"duration"`
	ReportPath string    `json:"report_path,omitempty"`
}
