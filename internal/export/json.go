package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/focusflow/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	TotalSec   int64         `json:"total_seconds"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	SubjectID   string `json:"subject_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	DurationSec int64  `json:"duration_seconds"`
	Duration    string `json:"duration"`
}

func ToJSON(sessions []store.StudySession, subjects []store.Subject, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	names := subjectNames(subjects)
	for _, s := range sessions {
		export.TotalSec += s.Duration
		export.Sessions = append(export.Sessions, jsonSession{
			ID:          s.ID,
			Subject:     subjectName(names, s.SubjectID),
			SubjectID:   s.SubjectID,
			Date:        s.Date,
			StartTime:   s.Start().Format(time.RFC3339),
			DurationSec: s.Duration,
			Duration:    formatDuration(s.Duration),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
