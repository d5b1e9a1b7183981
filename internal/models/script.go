package models

import "encoding/json"

// Scene content types. The content type decides which renderer path a scene
// takes; anything else is rejected before a process is spawned.
const (
	SceneTypeText  = "text"
	SceneTypeImage = "image"
	SceneTypeVideo = "video"
)

// Scene is one timed unit of a video script. Content is either literal text
// or a remote asset URL depending on ContentType.
type Scene struct {
	Duration    float64  `json:"duration"`
	ContentType string   `json:"content_type"`
	Content     string   `json:"content"`
	Transition  *string  `json:"transition,omitempty"`
	Effects     []string `json:"effects,omitempty"`
}

// VideoScript is the parsed script payload of a video. Scene order is
// significant and preserved end-to-end through rendering and concatenation.
type VideoScript struct {
	Scenes        []Scene         `json:"scenes"`
	TotalDuration float64         `json:"total_duration"`
	AudioURL      *string         `json:"audio_url,omitempty"`
	VoiceSettings json.RawMessage `json:"voice_settings,omitempty"`
}
