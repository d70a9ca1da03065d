package workouts

import (
	"fmt"
	"strings"
	"time"
)

// ImportSummary collects the outcome of one import run, for logging and for
// the completion email.
type ImportSummary struct {
	StartedAt         time.Time `json:"startedAt"`
	FinishedAt        time.Time `json:"finishedAt"`
	FilesScanned      int       `json:"filesScanned"`
	FilesSkipped      int       `json:"filesSkipped"`
	RowsRead          int       `json:"rowsRead"`
	RowsWithErrors    int       `json:"rowsWithErrors"`
	RowsFilteredType  int       `json:"rowsFilteredType"`
	Stored            int       `json:"stored"`
	Duplicates        int       `json:"duplicates"`
	TotalInDB         int       `json:"totalInDb"`
	DBSizeMB          float64   `json:"dbSizeMb"`
	SheetsUpdate      string    `json:"sheetsUpdate"`
	EmailNotification string    `json:"emailNotification,omitempty"`
}

func (s *ImportSummary) String() string {
	var sb strings.Builder
	sb.WriteString("=== Workout Import Summary ===\n")
	sb.WriteString(fmt.Sprintf("Started:                  %s\n", s.StartedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Finished:                 %s\n", s.FinishedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Files scanned:            %d\n", s.FilesScanned))
	sb.WriteString(fmt.Sprintf("Files skipped (seen):     %d\n", s.FilesSkipped))
	sb.WriteString(fmt.Sprintf("Rows read:                %d\n", s.RowsRead))
	sb.WriteString(fmt.Sprintf("Rows with errors:         %d\n", s.RowsWithErrors))
	sb.WriteString(fmt.Sprintf("Rows filtered by type:    %d\n", s.RowsFilteredType))
	sb.WriteString(fmt.Sprintf("Workouts stored:          %d\n", s.Stored))
	sb.WriteString(fmt.Sprintf("Duplicates skipped:       %d\n", s.Duplicates))
	sb.WriteString(fmt.Sprintf("Total workouts in DB:     %d\n", s.TotalInDB))
	sb.WriteString(fmt.Sprintf("Database size:            %.2f MB\n", s.DBSizeMB))
	sb.WriteString(fmt.Sprintf("Sheets update:            %s\n", s.SheetsUpdate))
	return sb.String()
}
