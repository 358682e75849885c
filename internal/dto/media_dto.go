package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadMediaItem struct {
	Id       uuid.UUID `json:"id"`
	FileName string    `json:"file_name"`
	Url      string    `json:"url"`
}

type UploadMediaResponse struct {
	Files []UploadMediaItem `json:"files"`
}

type ResolveMediaRequest struct {
	Ids []string `json:"ids" validate:"required,min=1"`
}

type ResolveMediaResponse struct {
	// Urls maps media id to a signed URL; unresolvable ids are absent.
	Urls map[string]string `json:"urls"`
}

type MediaRecordResponse struct {
	Id         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	Collection string    `json:"collection"`
	CreatedAt  time.Time `json:"created_at"`
}
