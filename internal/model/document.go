package model

import "time"

// Document represents an uploaded file in the data room.
// Tags are always stored normalized (see matching.NormalizeTags).
// StoragePath is an opaque handle into object storage and is never interpreted by matching.
type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tags        []string  `json:"tags"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
