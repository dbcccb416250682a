// Package report turns sampler state into the multi-sheet spreadsheet report.
package report

import (
	"log"
	"unicode/utf8"

	"github.com/tinytelemetry/logsheet/internal/model"
	"github.com/tinytelemetry/logsheet/internal/sampler"
	"github.com/xuri/excelize/v2"
)

// Sheet names and headers of the generated workbook.
const (
	SummarySheet  = "Summary"
	KeywordsSheet = "Keyword Counts"
	TotalLabel    = "TOTAL"
)

var (
	levelHeader   = []string{"Number", "Timestamp", "Level", "Message"}
	summaryHeader = []string{"Level", "Count"}
	keywordHeader = []string{"Keyword", "Count"}
)

// Sheet is one named table of the report. Cell values are string or int64.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Report is a snapshot of every table in the workbook, in sheet order.
type Report struct {
	Cycles int64
	Sheets []Sheet
}

// Sheet returns the sheet with the given name.
func (r *Report) Sheet(name string) (Sheet, bool) {
	for _, s := range r.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// SheetNames returns sheet names in workbook order.
func (r *Report) SheetNames() []string {
	names := make([]string, len(r.Sheets))
	for i, s := range r.Sheets {
		names[i] = s.Name
	}
	return names
}

// Build derives the report tables from st. It has no side effects, so building
// twice from the same state yields identical tables.
func Build(st sampler.State) Report {
	rep := Report{
		Cycles: st.Cycles,
		Sheets: make([]Sheet, 0, len(model.Levels)+2),
	}

	for _, level := range model.Levels {
		rep.Sheets = append(rep.Sheets, levelSheet(st.Level(level)))
	}
	rep.Sheets = append(rep.Sheets, summarySheet(st), keywordSheet(st.Keywords))
	return rep
}

func levelSheet(ls sampler.LevelSnapshot) Sheet {
	rows := make([][]any, len(ls.Records))
	first := ls.FirstNumber()
	for i, rec := range ls.Records {
		number := first + int64(i)
		rows[i] = []any{number, rec.Timestamp, rec.Level.String(), clampCell(ls.Level, number, rec.Message)}
	}
	return Sheet{Name: ls.Level.SheetName(), Header: levelHeader, Rows: rows}
}

func summarySheet(st sampler.State) Sheet {
	rows := make([][]any, 0, len(model.Levels)+1)
	var total int64
	for _, level := range model.Levels {
		count := st.Level(level).Count
		total += count
		rows = append(rows, []any{level.String(), count})
	}
	rows = append(rows, []any{TotalLabel, total})
	return Sheet{Name: SummarySheet, Header: summaryHeader, Rows: rows}
}

func keywordSheet(keywords []model.KeywordCount) Sheet {
	rows := make([][]any, len(keywords))
	for i, kw := range keywords {
		rows[i] = []any{kw.Keyword, kw.Count}
	}
	return Sheet{Name: KeywordsSheet, Header: keywordHeader, Rows: rows}
}

// clampCell truncates text to the characters an xlsx cell can hold.
func clampCell(level model.Level, number int64, text string) string {
	n := utf8.RuneCountInString(text)
	if n <= excelize.TotalCellChars {
		return text
	}
	log.Printf("report: %s record %d: message truncated from %d to %d characters", level, number, n, excelize.TotalCellChars)
	runes := []rune(text)
	return string(runes[:excelize.TotalCellChars])
}
