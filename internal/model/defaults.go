package model

import "time"

// Shared defaults used by the CLI and the lifecycle controller.
const (
	DefaultInputPath    = "logs.txt"
	DefaultReportPath   = "log_data.xlsx"
	DefaultDestination  = "~/Downloads"
	DefaultInterval     = time.Second
	DefaultWriteRetries = 3
)

// DefaultKeywords are the phrases tallied when no keywords are configured.
func DefaultKeywords() []string {
	return []string{
		"Database connection failed",
		"Data processing completed",
		"Application stopped",
	}
}
