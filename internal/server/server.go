package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nao1215/wcagaudit/internal/consistency"
	"github.com/nao1215/wcagaudit/internal/model"
	"github.com/nao1215/wcagaudit/internal/pipeline"
	"github.com/nao1215/wcagaudit/internal/request"
	"github.com/nao1215/wcagaudit/internal/targets"
	"github.com/nao1215/wcagaudit/internal/urlset"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  *urlset.Store
	logger *slog.Logger

	// requestOptions are applied to every report request, e.g. the model.
	requestOptions []request.Option
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRequestOptions sets options applied to every report request.
func WithRequestOptions(opts ...request.Option) Option {
	return func(s *Server) {
		s.requestOptions = append(s.requestOptions, opts...)
	}
}

// New creates a Server.
func New(runner *pipeline.Runner, store *urlset.Store, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the router with all API routes mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Post("/reports", s.handleGenerate)
		r.Route("/sets", func(r chi.Router) {
			r.Get("/", s.handleListSets)
			r.Post("/", s.handleSaveSet)
			r.Delete("/{id}", s.handleDeleteSet)
			r.Get("/{id}/targets", s.handleLoadSet)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

type generateRequest struct {
	Targets   []model.Target `json:"targets"`
	Inspector string         `json:"inspector"`
	Client    string         `json:"client,omitempty"`
	Version   string         `json:"version,omitempty"`
}

type generateResponse struct {
	Report        *model.Report             `json:"report"`
	Discrepancies []consistency.Discrepancy `json:"discrepancies"`
	Warnings      []string                  `json:"warnings"`
}

type saveSetRequest struct {
	Name    string         `json:"name"`
	Targets []model.Target `json:"targets"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Ongeldige aanvraag.")
		return
	}

	list := targets.NewList()
	for _, t := range body.Targets {
		if _, err := list.Add(t); err != nil {
			writeError(w, http.StatusBadRequest, pipeline.UserMessage(err))
			return
		}
	}
	submission, err := list.Submission()
	if err != nil {
		writeError(w, http.StatusBadRequest, pipeline.UserMessage(err))
		return
	}

	opts := append([]request.Option{}, s.requestOptions...)
	if body.Client != "" {
		opts = append(opts, request.WithClient(body.Client))
	}
	if body.Version != "" {
		opts = append(opts, request.WithVersion(body.Version))
	}

	report, job, err := s.runner.Generate(r.Context(), submission, body.Inspector, opts...)
	if err != nil {
		s.writeGenerateError(w, r, err)
		return
	}

	resp := generateResponse{
		Report:        report,
		Discrepancies: job.Consistency.Discrepancies,
		Warnings:      job.Warnings(),
	}
	if resp.Discrepancies == nil {
		resp.Discrepancies = []consistency.Discrepancy{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pipeline.ErrGenerationInProgress):
		writeError(w, http.StatusConflict, pipeline.UserMessage(err))
	case pipeline.IsInputError(err):
		writeError(w, http.StatusBadRequest, pipeline.UserMessage(err))
	default:
		s.logger.Error("report generation failed",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
		writeError(w, http.StatusBadGateway, pipeline.GenericFailureMessage)
	}
}

func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	s.store.Reload(r.Context())
	sets := s.store.List()
	for i := range sets {
		for j := range sets[i].Targets {
			sets[i].Targets[j].Password = ""
		}
	}
	writeJSON(w, http.StatusOK, sets)
}

func (s *Server) handleSaveSet(w http.ResponseWriter, r *http.Request) {
	var body saveSetRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Ongeldige aanvraag.")
		return
	}
	if len(body.Targets) > targets.MaxTargets {
		writeError(w, http.StatusBadRequest, pipeline.UserMessage(targets.ErrCapacityExceeded))
		return
	}

	set, err := s.store.Save(r.Context(), body.Name, body.Targets)
	if errors.Is(err, urlset.ErrInvalidName) {
		writeError(w, http.StatusBadRequest, "Geef de set een naam.")
		return
	}
	if err != nil {
		s.logger.Error("failed to save set", "error", err)
		writeError(w, http.StatusInternalServerError, "De set kon niet worden opgeslagen.")
		return
	}

	for i := range set.Targets {
		set.Targets[i].Password = ""
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.logger.Error("failed to delete set", "error", err)
		writeError(w, http.StatusInternalServerError, "De set kon niet worden verwijderd.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLoadSet(w http.ResponseWriter, r *http.Request) {
	s.store.Reload(r.Context())
	list, err := s.store.LoadSet(chi.URLParam(r, "id"))
	if errors.Is(err, urlset.ErrSetNotFound) {
		writeError(w, http.StatusNotFound, "Set niet gevonden.")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "De set kon niet worden geladen.")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
