package report

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/tinytelemetry/logsheet/internal/model"
	"github.com/tinytelemetry/logsheet/internal/sampler"
	"github.com/xuri/excelize/v2"
)

func sampledState(t *testing.T, cycles int) sampler.State {
	t.Helper()
	corpus := []model.LogRecord{
		{Timestamp: "2024-01-01 10:00:00", Level: model.LevelInfo, Message: "Data processing completed"},
		{Timestamp: "2024-01-01 10:00:01", Level: model.LevelDebug, Message: "Cache warmed"},
		{Timestamp: "2024-01-01 10:00:02", Level: model.LevelWarning, Message: "Application stopped"},
		{Timestamp: "2024-01-01 10:00:03", Level: model.LevelError, Message: "Database connection failed"},
	}
	s, err := sampler.New(corpus, model.DefaultKeywords(), sampler.Options{Seed: 11})
	if err != nil {
		t.Fatalf("sampler.New: %v", err)
	}
	for i := 0; i < cycles; i++ {
		s.Step()
	}
	return s.Snapshot()
}

func TestBuild_SheetLayout(t *testing.T) {
	t.Parallel()

	rep := Build(sampledState(t, 25))

	wantNames := []string{"Info", "Debug", "Warning", "Error", "Summary", "Keyword Counts"}
	if got := rep.SheetNames(); !reflect.DeepEqual(got, wantNames) {
		t.Fatalf("sheet names = %v, want %v", got, wantNames)
	}

	wantHeaders := map[string][]string{
		"Info":           {"Number", "Timestamp", "Level", "Message"},
		"Error":          {"Number", "Timestamp", "Level", "Message"},
		"Summary":        {"Level", "Count"},
		"Keyword Counts": {"Keyword", "Count"},
	}
	for name, want := range wantHeaders {
		s, ok := rep.Sheet(name)
		if !ok {
			t.Fatalf("missing sheet %q", name)
		}
		if !reflect.DeepEqual(s.Header, want) {
			t.Errorf("%s header = %v, want %v", name, s.Header, want)
		}
	}
}

func TestBuild_SummaryTotal(t *testing.T) {
	t.Parallel()

	for _, cycles := range []int{0, 1, 7, 100} {
		st := sampledState(t, cycles)
		rep := Build(st)
		summary, _ := rep.Sheet(SummarySheet)

		if len(summary.Rows) != 5 {
			t.Fatalf("summary rows = %d, want 5", len(summary.Rows))
		}
		wantLabels := []string{"INFO", "DEBUG", "WARNING", "ERROR", "TOTAL"}
		var sum int64
		for i, row := range summary.Rows {
			if row[0] != wantLabels[i] {
				t.Fatalf("summary row %d label = %v, want %s", i, row[0], wantLabels[i])
			}
			if i < 4 {
				sum += row[1].(int64)
			}
		}
		if total := summary.Rows[4][1].(int64); total != sum || total != int64(cycles) {
			t.Fatalf("TOTAL = %d, sum = %d, cycles = %d", total, sum, cycles)
		}
	}
}

func TestBuild_LevelRowsNumbered(t *testing.T) {
	t.Parallel()

	st := sampledState(t, 40)
	rep := Build(st)

	for _, level := range model.Levels {
		sheet, _ := rep.Sheet(level.SheetName())
		if len(sheet.Rows) != len(st.Level(level).Records) {
			t.Fatalf("%s rows = %d, want %d", sheet.Name, len(sheet.Rows), len(st.Level(level).Records))
		}
		for i, row := range sheet.Rows {
			if row[0] != int64(i+1) {
				t.Fatalf("%s row %d number = %v, want %d", sheet.Name, i, row[0], i+1)
			}
			if row[2] != level.String() {
				t.Fatalf("%s row %d level = %v", sheet.Name, i, row[2])
			}
		}
	}
}

func TestBuild_KeywordRowsInConfigOrder(t *testing.T) {
	t.Parallel()

	rep := Build(sampledState(t, 0))
	kw, _ := rep.Sheet(KeywordsSheet)

	want := model.DefaultKeywords()
	if len(kw.Rows) != len(want) {
		t.Fatalf("keyword rows = %d, want %d", len(kw.Rows), len(want))
	}
	for i, row := range kw.Rows {
		if row[0] != want[i] || row[1] != int64(0) {
			t.Errorf("keyword row %d = %v, want [%s 0]", i, row, want[i])
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	st := sampledState(t, 30)
	if a, b := Build(st), Build(st); !reflect.DeepEqual(a, b) {
		t.Fatal("rebuilding from the same state produced different reports")
	}
}

func TestBuild_Scenario(t *testing.T) {
	t.Parallel()

	rec := model.LogRecord{Timestamp: "2024-01-01 10:00:00", Level: model.LevelInfo, Message: "Data processing completed"}
	s, err := sampler.New([]model.LogRecord{rec}, model.DefaultKeywords(), sampler.Options{})
	if err != nil {
		t.Fatalf("sampler.New: %v", err)
	}
	s.Step()
	rep := Build(s.Snapshot())

	info, _ := rep.Sheet("Info")
	want := [][]any{{int64(1), "2024-01-01 10:00:00", "INFO", "Data processing completed"}}
	if !reflect.DeepEqual(info.Rows, want) {
		t.Fatalf("info rows = %v, want %v", info.Rows, want)
	}
	kw, _ := rep.Sheet(KeywordsSheet)
	if kw.Rows[1][0] != "Data processing completed" || kw.Rows[1][1] != int64(1) {
		t.Fatalf("keyword row = %v", kw.Rows[1])
	}
}

func TestBuild_ClampsOversizedMessage(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", excelize.TotalCellChars+100)
	s, err := sampler.New([]model.LogRecord{
		{Timestamp: "2024-01-01 10:00:00", Level: model.LevelError, Message: long},
	}, nil, sampler.Options{Seed: 1})
	if err != nil {
		t.Fatalf("sampler.New: %v", err)
	}
	s.Step()

	rep := Build(s.Snapshot())
	sheet, _ := rep.Sheet(model.LevelError.SheetName())
	msg := sheet.Rows[0][3].(string)
	if n := utf8.RuneCountInString(msg); n != excelize.TotalCellChars {
		t.Fatalf("message runes = %d, want %d", n, excelize.TotalCellChars)
	}
	want := float64(excelize.TotalCellChars+2) * 1.2
	if got := ColumnWidths(sheet)[3]; got != want {
		t.Fatalf("message width = %v, want %v", got, want)
	}
}
