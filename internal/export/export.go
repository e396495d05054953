// Package export writes the session history to CSV or JSON files.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/focusflow/internal/store"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Formats lists the supported formats in picker order.
var Formats = []Format{FormatCSV, FormatJSON}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
}

// FileName is the default export file name for a given day.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("focusflow-export-%s.%s", now.Format("2006-01-02"), f)
}

// Write dispatches to ToCSV or ToJSON.
func Write(f Format, sessions []store.StudySession, subjects []store.Subject, path string) error {
	switch f {
	case FormatCSV:
		return ToCSV(sessions, subjects, path)
	case FormatJSON:
		return ToJSON(sessions, subjects, path)
	}
	return fmt.Errorf("unknown export format %q", f)
}
