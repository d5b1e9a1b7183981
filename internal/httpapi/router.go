package httpapi

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"reel/internal/httpapi/handlers"
	"reel/internal/httpkit"
	"reel/internal/pkg/logger"
	"reel/internal/pkg/middleware"
	"reel/internal/ports"
)

type Deps struct {
	Pool *pgxpool.Pool
	RDB  *redis.Client
	SP   ports.StorageProvider
	Log  *logger.Logger

	ProcessSubject   string
	ThumbnailSubject string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Timeout(30 * time.Second))

	allowedOrigins := envCSV("CORS_ALLOWED_ORIGINS", []string{
		"http://localhost:8081",
		"http://localhost:5173",
	})
	r.Use(httpkit.CORS(httpkit.CORSOptions{
		AllowedOrigins: allowedOrigins,
		MaxAgeSeconds:  600,
	}))

	h := handlers.New(handlers.Deps{
		Pool:             d.Pool,
		RDB:              d.RDB,
		SP:               d.SP,
		Log:              log,
		ProcessSubject:   d.ProcessSubject,
		ThumbnailSubject: d.ThumbnailSubject,
	})

	r.Get("/health", h.Health)

	r.Post("/videos", h.PostVideo)
	r.Get("/videos/{videoId}", h.GetVideo)
	r.Get("/videos/{videoId}/jobs", h.GetVideoJobs)
	r.Post("/videos/{videoId}/process", h.PostProcess)
	r.Post("/videos/{videoId}/thumbnail", h.PostThumbnail)

	return r
}

func envCSV(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
