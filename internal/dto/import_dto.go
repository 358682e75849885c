package dto

import "github.com/google/uuid"

type ImportLegacyResponse struct {
	PostId        uuid.UUID `json:"post_id"`
	LegacyId      string    `json:"legacy_id"`
	WordCount     int       `json:"word_count"`
	MigratedFiles int       `json:"migrated_files"`
}

type ImportAllRequest struct {
	Workers int `json:"workers" validate:"omitempty,min=1,max=32"`
}

type ImportAllResponse struct {
	Imported int               `json:"imported"`
	Failed   map[string]string `json:"failed,omitempty"`
}
