package domain

import "time"

// Theme is a named set of persisted settings and setting files.
type Theme struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoredFile points at a file kept in the platform file storage.
type StoredFile struct {
	ContextID int64  `json:"contextId"`
	Component string `json:"component"`
	FileArea  string `json:"fileArea"`
	ItemID    int64  `json:"itemId"`
	FilePath  string `json:"filePath"`
	FileName  string `json:"fileName"`
}
