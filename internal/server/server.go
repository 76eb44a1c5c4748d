// SPDX-License-Identifier: Apache-2.0

// Package server exposes the extraction pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bancoquestoes/qextract/internal/cache"
	"github.com/bancoquestoes/qextract/internal/extraction"
)

// maxBodyBytes bounds request bodies. A 2M-character text may take up to
// four bytes per character, plus JSON escaping.
const maxBodyBytes = 16 << 20

const (
	msgInvalidBody  = "Corpo da requisição inválido"
	msgMissingText  = "O campo 'text' é obrigatório"
	msgTextTooShort = "Texto muito curto para conter questões"
	msgTextTooLong  = "Texto excede o tamanho máximo permitido"
	msgNoQuestions  = "Nenhuma questão válida encontrada no documento"
	hintNoQuestions = "Converta o arquivo para texto simples (.txt) e tente novamente"
	msgInternal     = "Erro interno ao processar o documento"
)

type extractRequest struct {
	Text     *string `json:"text"`
	FileName string  `json:"fileName"`
}

type extractResponse struct {
	Success   bool                           `json:"success"`
	Questions []extraction.ExtractedQuestion `json:"questions"`
	Stats     extraction.Stats               `json:"stats"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Hint    string `json:"hint,omitempty"`
}

// Option configures a Server.
type Option func(*Server)

// WithCache enables response caching.
func WithCache(c *cache.ResultCache) Option {
	return func(s *Server) { s.cache = c }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// Server serves the extraction API.
type Server struct {
	pipeline *extraction.Pipeline
	auth     Authenticator
	cache    *cache.ResultCache
	logger   *slog.Logger
	router   *chi.Mux
}

// New creates a Server. auth guards the extraction route.
func New(pipeline *extraction.Pipeline, auth Authenticator, opts ...Option) *Server {
	s := &Server{pipeline: pipeline, auth: auth}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Group(func(r chi.Router) {
		r.Use(requireCaller(s.auth))
		r.Post("/api/v1/questions/extract", s.handleExtract)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req extractRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}
	if req.Text == nil || *req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgMissingText})
		return
	}
	doc := extraction.RawDocument{Text: *req.Text, FileName: req.FileName}
	log := s.logger.With("request_id", middleware.GetReqID(ctx), "caller", Caller(ctx), "file", req.FileName)

	if s.cache != nil {
		res, ok, err := s.cache.Get(ctx, doc)
		if err != nil {
			log.WarnContext(ctx, "cache lookup failed", "error", err)
		} else if ok {
			log.InfoContext(ctx, "extraction served from cache", "total", res.Stats.Total)
			writeJSON(w, http.StatusOK, extractResponse{Success: true, Questions: res.Questions, Stats: res.Stats})
			return
		}
	}

	res, err := s.pipeline.Run(ctx, doc)
	switch {
	case errors.Is(err, extraction.ErrTextTooShort):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgTextTooShort})
		return
	case errors.Is(err, extraction.ErrTextTooLong):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgTextTooLong})
		return
	case errors.Is(err, extraction.ErrNoValidQuestions):
		log.InfoContext(ctx, "no valid questions", "duration", time.Since(start))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgNoQuestions, Hint: hintNoQuestions})
		return
	case err != nil:
		log.ErrorContext(ctx, "extraction failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal})
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, doc, res); err != nil {
			log.WarnContext(ctx, "cache store failed", "error", err)
		}
	}
	log.InfoContext(ctx, "questions extracted",
		"total", res.Stats.Total, "strategy", res.Stats.Strategy, "duration", time.Since(start))
	writeJSON(w, http.StatusOK, extractResponse{Success: true, Questions: res.Questions, Stats: res.Stats})
}

// recoverer turns a panic into a generic 500 and logs the details.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.ErrorContext(r.Context(), "panic serving request",
					"request_id", middleware.GetReqID(r.Context()), "path", r.URL.Path, "panic", rec)
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
