package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dgallion1/docslice/internal/config"
	"github.com/dgallion1/docslice/internal/pipeline"
	"github.com/dgallion1/docslice/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Ingestor is what the handlers need from the pipeline.
type Ingestor interface {
	Process(ctx context.Context, authorization string, documentID int64) error
	GetRun(id string) *pipeline.Run
	StatsSnapshot() pipeline.StatsSnapshot
}

// DocumentStore is what the document management handlers need from
// Postgres.
type DocumentStore interface {
	ListDocuments(ctx context.Context, limit int) ([]store.Document, error)
	DeleteSections(ctx context.Context, documentID int64) (int64, error)
}

// Server is the HTTP API server for docslice.
type Server struct {
	router    chi.Router
	ingestor  Ingestor
	documents DocumentStore
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(ingestor Ingestor, documents DocumentStore, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		ingestor:  ingestor,
		documents: documents,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// The ingestion endpoint carries its own authorization handling:
	// the wire contract predates this service and reports auth
	// failures as 500 bodies rather than 401s.
	r.Post("/process", s.handleProcess)

	// Supplementary API, service-key authenticated.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.StorageServiceKey, s.log))

		r.Get("/api/runs/{runID}", s.handleRunStatus)
		r.Get("/api/stats/ingest", s.handleIngestStats)
		r.Get("/api/documents", s.handleListDocuments)
		r.Delete("/api/documents/{docID}/sections", s.handleDeleteSections)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
