package model

// Level is the severity classification of a log entry.
type Level int

const (
	LevelInfo Level = iota
	LevelDebug
	LevelWarning
	LevelError
)

// Levels lists every level in report order.
var Levels = []Level{LevelInfo, LevelDebug, LevelWarning, LevelError}

// String returns the upper-case level name as it appears in log files.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SheetName returns the worksheet name used for the level in generated reports.
func (l Level) SheetName() string {
	switch l {
	case LevelInfo:
		return "Info"
	case LevelDebug:
		return "Debug"
	case LevelWarning:
		return "Warning"
	case LevelError:
		return "Error"
	default:
		return "Unknown"
	}
}

// LogRecord represents a single parsed log entry. Records are never mutated after parsing.
type LogRecord struct {
	Timestamp string
	Level     Level
	Message   string
}

// KeywordCount represents a configured keyword and its running tally.
type KeywordCount struct {
	Keyword string
	Count   int64
}

// LevelCount represents the number of sampled records for one level.
type LevelCount struct {
	Level Level
	Count int64
}
