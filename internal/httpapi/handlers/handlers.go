package handlers

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"reel/internal/pkg/logger"
	"reel/internal/ports"
)

type Deps struct {
	Pool *pgxpool.Pool
	RDB  *redis.Client
	SP   ports.StorageProvider
	Log  *logger.Logger

	// ProcessSubject and ThumbnailSubject are the queue list names the
	// enqueue endpoints push to.
	ProcessSubject   string
	ThumbnailSubject string
}

type Handler struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	sp   ports.StorageProvider
	log  *logger.Logger

	processSubject   string
	thumbnailSubject string
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	return &Handler{
		pool:             d.Pool,
		rdb:              d.RDB,
		sp:               d.SP,
		log:              log.WithComponent("httpapi"),
		processSubject:   d.ProcessSubject,
		thumbnailSubject: d.ThumbnailSubject,
	}
}
