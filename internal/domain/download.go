package domain

import "time"

// DownloadRecord is a locally stored note of an export file download.
// This is the only state the client owns.
type DownloadRecord struct {
	DownloadedAt time.Time
	ExportID     string
	Path         string
	SizeBytes    int64
}
