package model

import "time"

// ExportRecord is one journal entry describing a workbook written by the
// export command. The exported rows themselves are never stored.
type ExportRecord struct {
	CreatedAt time.Time         `json:"created_at"`
	Filters   map[string]string `json:"filters,omitempty"`
	Page      string            `json:"page"`
	FileName  string            `json:"file_name"`
	Path      string            `json:"path"`
	ID        int64             `json:"id"`
	Rows      int               `json:"rows"`
	TotalRows int               `json:"total_rows"`
}
