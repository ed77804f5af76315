package models

import "time"

// Run describes one ingestion run as recorded alongside the rows it wrote.
type Run struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     time.Time
	FilesSeen      int
	FilesProcessed int
	FilesSkipped   int
}
