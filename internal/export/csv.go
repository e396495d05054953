package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/focusflow/internal/catalog"
	"github.com/sadopc/focusflow/internal/store"
)

func ToCSV(sessions []store.StudySession, subjects []store.Subject, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Subject", "Date", "Start", "Duration (s)", "Duration"}); err != nil {
		return err
	}

	names := subjectNames(subjects)
	for _, s := range sessions {
		row := []string{
			s.ID,
			subjectName(names, s.SubjectID),
			s.Date,
			s.Start().Format(time.RFC3339),
			strconv.FormatInt(s.Duration, 10),
			formatDuration(s.Duration),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func subjectNames(subjects []store.Subject) map[string]string {
	names := make(map[string]string, len(subjects))
	for _, s := range subjects {
		names[s.ID] = s.Name
	}
	return names
}

func subjectName(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return catalog.UnknownSubjectName
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
