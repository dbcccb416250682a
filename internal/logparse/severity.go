package logparse

import "github.com/tinytelemetry/logsheet/internal/model"

// ParseLevel converts a level token to its Level. Matching is exact and case-sensitive:
// "INFO" is a level, "info" and "WARN" are not.
func ParseLevel(token string) (model.Level, bool) {
	switch token {
	case "INFO":
		return model.LevelInfo, true
	case "DEBUG":
		return model.LevelDebug, true
	case "WARNING":
		return model.LevelWarning, true
	case "ERROR":
		return model.LevelError, true
	default:
		return 0, false
	}
}
