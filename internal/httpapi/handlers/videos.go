package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reel/internal/httpkit"
	"reel/internal/models"
)

type CreateVideoRequest struct {
	ChannelID string          `json:"channel_id"`
	Title     string          `json:"title"`
	Script    json.RawMessage `json:"script"`
}

type ProcessVideoRequest struct {
	UserID string `json:"user_id"`
}

type ThumbnailRequest struct {
	Title string `json:"title"`
	Style string `json:"style"`
}

// PostVideo stores a new video record with its script. The video is not
// processed until explicitly enqueued via the process endpoint.
func (h *Handler) PostVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateVideoRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	if len(req.Script) == 0 {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "script is required", map[string]any{"field": "script"})
		return
	}
	channelID, err := uuid.Parse(strings.TrimSpace(req.ChannelID))
	if err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "channel_id must be a uuid", map[string]any{"field": "channel_id"})
		return
	}

	videoID := uuid.New()
	createdAt := time.Now().UTC()
	_, err = h.pool.Exec(ctx,
		`INSERT INTO videos (id, channel_id, title, status, script, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$6)`,
		videoID, channelID, nullIfEmpty(strings.TrimSpace(req.Title)),
		models.VideoStatusCreated, []byte(req.Script), createdAt,
	)
	if err != nil {
		if httpkit.IsUniqueViolation(err) {
			httpkit.WriteErr(w, 409, "VIDEO_EXISTS", "video already exists", map[string]any{"video_id": videoID.String()})
			return
		}
		h.log.FromContext(ctx).Error("video insert failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db insert failed", nil)
		return
	}

	httpkit.WriteJSON(w, 201, map[string]any{
		"video": map[string]any{
			"id":         videoID,
			"channel_id": channelID,
			"title":      req.Title,
			"status":     models.VideoStatusCreated,
			"created_at": createdAt,
		},
	})
}

// PostProcess enqueues a processing run for a stored video.
func (h *Handler) PostProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "videoId must be a uuid", nil)
		return
	}

	var req ProcessVideoRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}

	// The worker refuses videos without a script, so reject early here.
	var scriptLen int
	err = h.pool.QueryRow(ctx,
		`SELECT COALESCE(LENGTH(script::text),0) FROM videos WHERE id=$1`,
		videoID,
	).Scan(&scriptLen)
	if err != nil {
		httpkit.WriteErr(w, 404, "VIDEO_NOT_FOUND", "video not found", map[string]any{"video_id": videoID.String()})
		return
	}
	if scriptLen == 0 {
		httpkit.WriteErr(w, 422, "VALIDATION_ERROR", "video has no script", map[string]any{"video_id": videoID.String()})
		return
	}

	msg := models.ProcessingMessage{
		VideoID: videoID.String(),
		UserID:  strings.TrimSpace(req.UserID),
		Action:  models.ActionStartProcessing,
	}
	payload, _ := json.Marshal(msg)

	if err := h.rdb.LPush(ctx, h.processSubject, payload).Err(); err != nil {
		h.log.FromContext(ctx).Error("queue push failed", "error", err.Error(), "subject", h.processSubject)
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "queue push failed", nil)
		return
	}

	if _, err := h.pool.Exec(ctx,
		`UPDATE videos SET status=$1, updated_at=NOW() WHERE id=$2`,
		models.VideoStatusQueued, videoID,
	); err != nil {
		h.log.FromContext(ctx).Warn("queued status update failed", "error", err.Error())
	}

	httpkit.WriteJSON(w, 202, map[string]any{
		"video_id": videoID.String(),
		"status":   models.VideoStatusQueued,
	})
}

// PostThumbnail enqueues thumbnail generation for a stored video.
func (h *Handler) PostThumbnail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "videoId must be a uuid", nil)
		return
	}

	var req ThumbnailRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "title is required", map[string]any{"field": "title"})
		return
	}

	var exists bool
	if err := h.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM videos WHERE id=$1)`, videoID,
	).Scan(&exists); err != nil || !exists {
		httpkit.WriteErr(w, 404, "VIDEO_NOT_FOUND", "video not found", map[string]any{"video_id": videoID.String()})
		return
	}

	msg := models.ThumbnailMessage{
		VideoID: videoID.String(),
		Title:   strings.TrimSpace(req.Title),
		Style:   strings.TrimSpace(req.Style),
	}
	payload, _ := json.Marshal(msg)

	if err := h.rdb.LPush(ctx, h.thumbnailSubject, payload).Err(); err != nil {
		h.log.FromContext(ctx).Error("queue push failed", "error", err.Error(), "subject", h.thumbnailSubject)
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "queue push failed", nil)
		return
	}

	httpkit.WriteJSON(w, 202, map[string]any{
		"video_id": videoID.String(),
	})
}

// GetVideo returns the stored status and artifact URLs of a video.
func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "videoId must be a uuid", nil)
		return
	}

	var channelID uuid.UUID
	var title, status string
	var videoURL, thumbnailURL *string
	var startedAt, completedAt, published *time.Time
	var createdAt, updatedAt time.Time
	err = h.pool.QueryRow(ctx,
		`SELECT channel_id, COALESCE(title,''), status, video_url, thumbnail_url,
		        processing_started_at, processing_completed_at, published_at,
		        created_at, updated_at
		 FROM videos WHERE id=$1`,
		videoID,
	).Scan(&channelID, &title, &status, &videoURL, &thumbnailURL,
		&startedAt, &completedAt, &published, &createdAt, &updatedAt)
	if err != nil {
		httpkit.WriteErr(w, 404, "VIDEO_NOT_FOUND", "video not found", map[string]any{"video_id": videoID.String()})
		return
	}

	httpkit.WriteJSON(w, 200, map[string]any{
		"video": map[string]any{
			"id":                      videoID.String(),
			"channel_id":              channelID.String(),
			"title":                   title,
			"status":                  status,
			"video_url":               videoURL,
			"thumbnail_url":           thumbnailURL,
			"processing_started_at":   startedAt,
			"processing_completed_at": completedAt,
			"published_at":            published,
			"created_at":              createdAt,
			"updated_at":              updatedAt,
		},
	})
}

// GetVideoJobs lists the processing runs recorded for a video, newest first.
func (h *Handler) GetVideoJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "videoId must be a uuid", nil)
		return
	}

	rows, err := h.pool.Query(ctx,
		`SELECT id, stage, status, error_message, started_at, completed_at
		 FROM content_pipeline WHERE video_id=$1
		 ORDER BY started_at DESC`,
		videoID,
	)
	if err != nil {
		if httpkit.IsUndefinedTable(err) {
			httpkit.WriteJSON(w, 200, map[string]any{"jobs": []any{}})
			return
		}
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db query failed", nil)
		return
	}
	defer rows.Close()

	type item struct {
		ID           uuid.UUID  `json:"id"`
		Stage        string     `json:"stage"`
		Status       string     `json:"status"`
		ErrorMessage *string    `json:"error_message,omitempty"`
		StartedAt    time.Time  `json:"started_at"`
		CompletedAt  *time.Time `json:"completed_at,omitempty"`
	}

	out := []item{}
	for rows.Next() {
		var it item
		if err := rows.Scan(&it.ID, &it.Stage, &it.Status, &it.ErrorMessage, &it.StartedAt, &it.CompletedAt); err != nil {
			httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "row scan failed", nil)
			return
		}
		out = append(out, it)
	}

	httpkit.WriteJSON(w, 200, map[string]any{"jobs": out})
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
