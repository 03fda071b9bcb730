package storage

import "time"

// DownloadModel is the GORM model for the download history table
type DownloadModel struct {
	CreatedAt    time.Time
	DownloadedAt time.Time `gorm:"not null;index:idx_downloaded_at"`
	ExportID     string    `gorm:"primaryKey"`
	Path         string    `gorm:"not null;default:''"`
	SizeBytes    int64     `gorm:"not null;default:0"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (DownloadModel) TableName() string { return "export_downloads" }
