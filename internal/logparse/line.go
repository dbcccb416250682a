package logparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tinytelemetry/logsheet/internal/model"
)

// DefaultMaxLineSize is the default maximum size (in bytes) of a single input line.
const DefaultMaxLineSize = 1024 * 1024 // 1MB

// ErrEmptyCorpus is returned when an input contains no well-formed log lines.
var ErrEmptyCorpus = errors.New("logparse: no valid log records found")

// minTokens is date, time, level and at least one message word.
const minTokens = 4

// Options tunes Parse.
type Options struct {
	MaxLineSize int
}

// ParseLine converts one raw line of the form
//
//	<date> <time> <LEVEL> <message...>
//
// into a LogRecord. Lines that do not have that shape are rejected.
func ParseLine(line string) (model.LogRecord, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < minTokens {
		return model.LogRecord{}, false
	}
	level, ok := ParseLevel(tokens[2])
	if !ok {
		return model.LogRecord{}, false
	}
	return model.LogRecord{
		Timestamp: tokens[0] + " " + tokens[1],
		Level:     level,
		Message:   strings.Join(tokens[3:], " "),
	}, true
}

// Parse reads r to EOF and returns every well-formed record in input order.
// Malformed lines are skipped without error.
func Parse(r io.Reader, opts ...Options) ([]model.LogRecord, error) {
	maxLineSize := DefaultMaxLineSize
	if len(opts) > 0 && opts[0].MaxLineSize > 0 {
		maxLineSize = opts[0].MaxLineSize
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLineSize)), maxLineSize)

	var records []model.LogRecord
	for scanner.Scan() {
		rec, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("logparse: line exceeded max size (%d bytes): %w", maxLineSize, err)
		}
		return nil, fmt.Errorf("logparse: read: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}
	return records, nil
}
