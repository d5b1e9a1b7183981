package models

// Queue message contracts. Payloads are JSON strings pushed onto the Redis
// list subjects; a malformed payload is logged and dropped, never retried.

// ActionStartProcessing is the only processing action the worker acts on.
const ActionStartProcessing = "start_processing"

type ProcessingMessage struct {
	VideoID string `json:"video_id"`
	UserID  string `json:"user_id"`
	Action  string `json:"action"`
}

type ThumbnailMessage struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	Style   string `json:"style,omitempty"`
}

type UploadMessage struct {
	VideoID  string         `json:"video_id"`
	FilePath string         `json:"file_path"`
	Metadata UploadMetadata `json:"metadata"`
}

type UploadMetadata struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	CategoryID    string   `json:"category_id"`
	PrivacyStatus string   `json:"privacy_status"`
}
