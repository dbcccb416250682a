package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	defaultRetries = 3
	defaultBackoff = 200 * time.Millisecond

	reportFileMode = 0o644
)

// WriterConfig controls where and how reports are written.
type WriterConfig struct {
	Path    string
	Retries int           // extra attempts after a failed write; negative disables retries
	Backoff time.Duration // delay before retry n is n*Backoff
}

// Writer renders reports to a styled .xlsx workbook. Every write replaces the
// file atomically so readers never observe a partially written workbook.
type Writer struct {
	cfg WriterConfig
}

// NewWriter validates cfg and returns a Writer.
func NewWriter(cfg WriterConfig) (*Writer, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("report: path is empty")
	}
	if ext := strings.ToLower(filepath.Ext(cfg.Path)); ext != ".xlsx" {
		return nil, fmt.Errorf("report: %s: unsupported extension %q, want .xlsx", cfg.Path, ext)
	}
	if cfg.Retries == 0 {
		cfg.Retries = defaultRetries
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = defaultBackoff
	}
	return &Writer{cfg: cfg}, nil
}

// Path returns the working path of the report file.
func (w *Writer) Path() string { return w.cfg.Path }

// Write renders rep and atomically replaces the report file, retrying transient failures.
func (w *Writer) Write(ctx context.Context, rep Report) error {
	var err error
	for attempt := 0; attempt <= w.cfg.Retries; attempt++ {
		if attempt > 0 {
			log.Printf("report: write %s failed (attempt %d/%d): %v", w.cfg.Path, attempt, w.cfg.Retries+1, err)
			select {
			case <-ctx.Done():
				return fmt.Errorf("report: write %s: %w", w.cfg.Path, err)
			case <-time.After(time.Duration(attempt) * w.cfg.Backoff):
			}
		}
		if err = w.writeOnce(rep); err == nil {
			return nil
		}
	}
	return fmt.Errorf("report: write %s: %w", w.cfg.Path, err)
}

func (w *Writer) writeOnce(rep Report) error {
	f, err := render(rep)
	if err != nil {
		return err
	}
	defer f.Close()

	dir := filepath.Dir(w.cfg.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.cfg.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if err := f.Write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode workbook: %w", err)
	}
	if err := tmp.Chmod(reportFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, w.cfg.Path); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	return nil
}

type styles struct {
	header int
	band   int
	plain  int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.header, err = solidFill(f, HeaderFill); err != nil {
		return s, err
	}
	if s.band, err = solidFill(f, BandFill); err != nil {
		return s, err
	}
	if s.plain, err = solidFill(f, PlainFill); err != nil {
		return s, err
	}
	return s, nil
}

func (s styles) forRow(row int) int {
	switch RowFill(row) {
	case HeaderFill:
		return s.header
	case BandFill:
		return s.band
	default:
		return s.plain
	}
}

func solidFill(f *excelize.File, color string) (int, error) {
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
	if err != nil {
		return 0, fmt.Errorf("new style %s: %w", color, err)
	}
	return id, nil
}

// render builds the styled workbook in memory. Values, column widths, header
// fill and row banding are written in a single pass.
func render(rep Report) (*excelize.File, error) {
	if len(rep.Sheets) == 0 {
		return nil, errors.New("report has no sheets")
	}

	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range rep.Sheets {
		if i == 0 {
			err = f.SetSheetName(defaultSheet, sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("add sheet %q: %w", sheet.Name, err)
		}
		if err := renderSheet(f, sheet, st); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func renderSheet(f *excelize.File, sheet Sheet, st styles) error {
	widths := ColumnWidths(sheet)
	if len(widths) == 0 {
		return nil
	}
	lastCol, err := excelize.ColumnNumberToName(len(widths))
	if err != nil {
		return err
	}

	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	rows := append([][]any{header}, sheet.Rows...)

	for i, values := range rows {
		row := i + 1
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		end := fmt.Sprintf("%s%d", lastCol, row)
		if err := f.SetCellStyle(sheet.Name, cell, end, st.forRow(row)); err != nil {
			return fmt.Errorf("style row %d: %w", row, err)
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if width > excelize.MaxColumnWidth {
			width = excelize.MaxColumnWidth
		}
		if err := f.SetColWidth(sheet.Name, col, col, width); err != nil {
			return fmt.Errorf("width of column %s: %w", col, err)
		}
	}
	return nil
}
