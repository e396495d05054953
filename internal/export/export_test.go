package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/focusflow/internal/store"
)

func sampleData() ([]store.StudySession, []store.Subject) {
	start := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)

	sessions := []store.StudySession{
		{ID: "s1", SubjectID: "math", Duration: 3600, StartTime: start.UnixMilli(), Date: "2026-03-14"},
		{ID: "s2", SubjectID: "coding", Duration: 1800, StartTime: start.Add(2 * time.Hour).UnixMilli(), Date: "2026-03-14"},
		{ID: "s3", SubjectID: "removed", Duration: 125, StartTime: start.AddDate(0, 0, 1).UnixMilli(), Date: "2026-03-15"},
	}

	subjects := []store.Subject{
		{ID: "math", Name: "Mathematics", Color: "#3b82f6"},
		{ID: "coding", Name: "Coding", Color: "#10b981"},
	}

	return sessions, subjects
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	return records
}

func readJSON(t *testing.T, path string) jsonExport {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return result
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	sessions, subjects := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sessions, subjects, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	expectedHeader := []string{"ID", "Subject", "Date", "Start", "Duration (s)", "Duration"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	if row[0] != "s1" {
		t.Fatalf("ID = %q, want s1", row[0])
	}
	if row[1] != "Mathematics" {
		t.Fatalf("Subject = %q, want Mathematics", row[1])
	}
	if row[2] != "2026-03-14" {
		t.Fatalf("Date = %q", row[2])
	}
	if row[4] != "3600" {
		t.Fatalf("Duration (s) = %q, want 3600", row[4])
	}
	if row[5] != "01:00:00" {
		t.Fatalf("Duration = %q, want 01:00:00", row[5])
	}
	if _, err := time.Parse(time.RFC3339, row[3]); err != nil {
		t.Fatalf("Start is not RFC3339: %q", row[3])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVUnknownSubject(t *testing.T) {
	sessions, subjects := sampleData()
	path := filepath.Join(t.TempDir(), "unknown.csv")

	if err := ToCSV(sessions, subjects, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[3][1] != "Unknown" {
		t.Fatalf("expected 'Unknown' for removed subject, got %q", records[3][1])
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	sessions := []store.StudySession{
		{ID: "x", SubjectID: "q", Duration: 60, StartTime: time.Now().UnixMilli(), Date: "2026-01-01"},
	}
	subjects := []store.Subject{{ID: "q", Name: `Latin "Classics", vol. 2`}}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(sessions, subjects, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][1] != `Latin "Classics", vol. 2` {
		t.Fatalf("subject name mangled: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	sessions, subjects := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sessions, subjects, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	result := readJSON(t, path)
	if result.Count != 3 {
		t.Fatalf("count = %d, want 3", result.Count)
	}
	if len(result.Sessions) != 3 {
		t.Fatalf("sessions = %d, want 3", len(result.Sessions))
	}
	if result.TotalSec != 5525 {
		t.Fatalf("total_seconds = %d, want 5525", result.TotalSec)
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}

	s := result.Sessions[1]
	if s.ID != "s2" || s.Subject != "Coding" || s.SubjectID != "coding" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if s.DurationSec != 1800 || s.Duration != "00:30:00" {
		t.Fatalf("duration = %d / %q", s.DurationSec, s.Duration)
	}
	if result.Sessions[2].Subject != "Unknown" {
		t.Fatalf("expected 'Unknown', got %q", result.Sessions[2].Subject)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, nil, path); err != nil {
		t.Fatal(err)
	}

	result := readJSON(t, path)
	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Sessions != nil {
		t.Fatal("sessions should be nil/null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, nil, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	if err := ToJSON(nil, nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be pretty-printed and indented")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	sessions, subjects := sampleData()
	path := filepath.Join(t.TempDir(), "ts.json")
	if err := ToJSON(sessions, subjects, path); err != nil {
		t.Fatal(err)
	}

	result := readJSON(t, path)
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	for _, s := range result.Sessions {
		start, err := time.Parse(time.RFC3339, s.StartTime)
		if err != nil {
			t.Fatalf("start_time is not valid RFC3339: %q", s.StartTime)
		}
		if store.LocalDate(start) != s.Date {
			t.Fatalf("start_time %q does not fall on %s", s.StartTime, s.Date)
		}
	}
}

// ============================================================
// Format dispatch
// ============================================================

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"csv": FormatCSV, "JSON": FormatJSON, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}

func TestWriteDispatch(t *testing.T) {
	sessions, subjects := sampleData()
	dir := t.TempDir()
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	for _, f := range Formats {
		path := filepath.Join(dir, FileName(f, now))
		if err := Write(f, sessions, subjects, path); err != nil {
			t.Fatalf("Write(%s): %v", f, err)
		}
		if !strings.HasSuffix(path, "focusflow-export-2026-03-15."+string(f)) {
			t.Fatalf("unexpected file name %q", path)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("%s export missing or empty", f)
		}
	}

	if err := Write("xml", nil, nil, filepath.Join(dir, "x")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

// ============================================================
// formatDuration (internal helper)
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{1, "00:00:01"},
		{60, "00:01:00"},
		{125, "00:02:05"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{86400, "24:00:00"},
		{90061, "25:01:01"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.secs)
		if got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
