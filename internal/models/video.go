package models

import (
	"time"

	"github.com/google/uuid"
)

// Video lifecycle statuses. The worker only ever moves a video through
// producing -> completed|failed (one terminal transition per run); published
// is set by the upload-finalization flow.
const (
	VideoStatusCreated   = "created"
	VideoStatusQueued    = "queued"
	VideoStatusProducing = "producing"
	VideoStatusCompleted = "completed"
	VideoStatusFailed    = "failed"
	VideoStatusPublished = "published"
)

// Processing-job statuses (content_pipeline.status).
const (
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Video is a row of the videos table. The persisted record is the source of
// truth between processing runs; Script holds the raw script payload JSON.
type Video struct {
	ID                    uuid.UUID  `json:"id"`
	ChannelID             uuid.UUID  `json:"channel_id"`
	Title                 *string    `json:"title,omitempty"`
	Status                string     `json:"status"`
	VideoURL              *string    `json:"video_url,omitempty"`
	ThumbnailURL          *string    `json:"thumbnail_url,omitempty"`
	Script                []byte     `json:"script,omitempty"`
	ProcessingStartedAt   *time.Time `json:"processing_started_at,omitempty"`
	ProcessingCompletedAt *time.Time `json:"processing_completed_at,omitempty"`
	PublishedAt           *time.Time `json:"published_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// ProcessingJob is a row of the content_pipeline table: one record per
// processing run, created at run start and finalized exactly once.
type ProcessingJob struct {
	ID           uuid.UUID  `json:"id"`
	VideoID      uuid.UUID  `json:"video_id"`
	Stage        string     `json:"stage"`
	Status       string     `json:"status"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
