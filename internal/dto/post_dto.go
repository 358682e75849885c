package dto

import (
	"time"

	"blog-cms-be/pkg/document"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title   string   `json:"title" validate:"required"`
	Slug    string   `json:"slug" validate:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type CreatePostResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdatePostRequest struct {
	Id      uuid.UUID
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type UpdatePostResponse struct {
	Id        uuid.UUID `json:"id"`
	WordCount int       `json:"word_count"`
}

type ShowPostResponse struct {
	Id             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Content        string     `json:"content"`
	Html           string     `json:"html"`
	Plaintext      string     `json:"plaintext,omitempty"`
	WordCount      int        `json:"word_count"`
	Tags           []string   `json:"tags"`
	FeatureMediaId *uuid.UUID `json:"feature_media_id,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

// ShowPostViewResponse carries the render tree the interactive reader
// consumes instead of raw HTML.
type ShowPostViewResponse struct {
	Id    uuid.UUID          `json:"id"`
	Title string             `json:"title"`
	View  *document.ViewNode `json:"view"`
}

type PostSummary struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	WordCount   int        `json:"word_count"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ListPostsResponse struct {
	Posts []*PostSummary `json:"posts"`
	Total int64          `json:"total"`
}

// PublishPostContentMessage is the event payload for the search indexer.
type PublishPostContentMessage struct {
	PostId uuid.UUID `json:"post_id"`
}
