package logsource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tinytelemetry/logsheet/internal/logparse"
	"github.com/tinytelemetry/logsheet/internal/model"
)

// StdinPath selects standard input instead of a file.
const StdinPath = "-"

// FileConfig holds tunable parameters for the file source.
type FileConfig struct {
	MaxLineSize int
}

// LoadFile reads the log file at path once, in full, and returns its well-formed records.
// A path of "-" reads from stdin when stdin is piped.
func LoadFile(path string, conf ...FileConfig) ([]model.LogRecord, error) {
	maxLineSize := logparse.DefaultMaxLineSize
	if len(conf) > 0 && conf[0].MaxLineSize > 0 {
		maxLineSize = conf[0].MaxLineSize
	}

	r, name, err := open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	records, err := logparse.Parse(r, logparse.Options{MaxLineSize: maxLineSize})
	if err != nil {
		if errors.Is(err, logparse.ErrEmptyCorpus) {
			return nil, fmt.Errorf("logsource: %s: %w", name, err)
		}
		return nil, fmt.Errorf("logsource: read %s: %w", name, err)
	}
	return records, nil
}

func open(path string) (io.ReadCloser, string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, "", errors.New("logsource: input path is empty")
	}
	if path == StdinPath {
		if !stdinPiped() {
			return nil, "", errors.New("logsource: stdin is a terminal, pipe a log file or set input-path")
		}
		return io.NopCloser(os.Stdin), "stdin", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("logsource: open %s: %w", path, err)
	}
	return f, path, nil
}

func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
