package processor

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reel/internal/models"
	"reel/internal/pkg/errors"
)

// Store persists video status transitions and processing-job records.
// The worker is the only writer of these columns during a run.
type Store interface {
	GetVideo(ctx context.Context, id uuid.UUID) (*models.Video, error)
	UpdateVideoStatus(ctx context.Context, id uuid.UUID, status string) error
	SetVideoURL(ctx context.Context, id uuid.UUID, url string) error
	SetThumbnailURL(ctx context.Context, id uuid.UUID, url string) error
	MarkVideoPublished(ctx context.Context, id uuid.UUID) error
	CreateJob(ctx context.Context, videoID uuid.UUID, stage string) (uuid.UUID, error)
	FinishJob(ctx context.Context, jobID uuid.UUID, errMsg string) error
}

// PGStore implements Store on the shared pgx pool.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) GetVideo(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var v models.Video
	err := s.pool.QueryRow(ctx,
		`SELECT id, channel_id, title, status, video_url, thumbnail_url, script,
		        processing_started_at, processing_completed_at, published_at,
		        created_at, updated_at
		 FROM videos WHERE id=$1`,
		id,
	).Scan(
		&v.ID, &v.ChannelID, &v.Title, &v.Status, &v.VideoURL, &v.ThumbnailURL,
		&v.Script, &v.ProcessingStartedAt, &v.ProcessingCompletedAt,
		&v.PublishedAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodePersistence, "store.get_video", "video not found")
	}
	return &v, nil
}

func (s *PGStore) UpdateVideoStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE videos SET status=$1, updated_at=NOW() WHERE id=$2`,
		status, id,
	)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodePersistence, "store.video_status", "failed to update video status")
	}
	return nil
}

func (s *PGStore) SetVideoURL(ctx context.Context, id uuid.UUID, url string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE videos SET video_url=$1, processing_completed_at=NOW(), updated_at=NOW() WHERE id=$2`,
		url, id,
	)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodePersistence, "store.video_url", "failed to set video url")
	}
	return nil
}

func (s *PGStore) SetThumbnailURL(ctx context.Context, id uuid.UUID, url string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE videos SET thumbnail_url=$1, updated_at=NOW() WHERE id=$2`,
		url, id,
	)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodePersistence, "store.thumbnail_url", "failed to set thumbnail url")
	}
	return nil
}

func (s *PGStore) MarkVideoPublished(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE videos SET status='published', published_at=NOW(), updated_at=NOW() WHERE id=$1`,
		id,
	)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodePersistence, "store.publish", "failed to mark video published")
	}
	return nil
}

func (s *PGStore) CreateJob(ctx context.Context, videoID uuid.UUID, stage string) (uuid.UUID, error) {
	jobID := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO content_pipeline (id, video_id, stage, status, started_at)
		 VALUES ($1,$2,$3,'processing',NOW())`,
		jobID, videoID, stage,
	)
	if err != nil {
		return uuid.Nil, errors.WrapWithCode(err, errors.CodePersistence, "store.create_job", "failed to create processing job")
	}
	return jobID, nil
}

// FinishJob finalizes a job record exactly once: completed when errMsg is
// empty, failed otherwise.
func (s *PGStore) FinishJob(ctx context.Context, jobID uuid.UUID, errMsg string) error {
	status := models.JobStatusCompleted
	var msg any
	if errMsg != "" {
		status = models.JobStatusFailed
		msg = errMsg
	}
	_, err := s.pool.Exec(ctx,
		`UPDATE content_pipeline
		 SET status=$1, error_message=$2, completed_at=NOW()
		 WHERE id=$3`,
		status, msg, jobID,
	)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodePersistence, "store.finish_job", "failed to finalize processing job")
	}
	return nil
}
