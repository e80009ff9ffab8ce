// Package server exposes a quiz.Service as the JSON HTTP API the game
// client talks to.
package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/sql-snake/internal/quiz"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBody caps request bodies; queries are short.
const maxBody = 64 << 10

type handler struct {
	svc     quiz.Service
	logger  *log.Logger
	metrics *metrics
}

// New builds the API handler. A nil registry gets a private one, so
// several handlers can coexist in tests.
func New(svc quiz.Service, logger *log.Logger, reg *prometheus.Registry) http.Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	h := &handler{
		svc:     svc,
		logger:  logger,
		metrics: newMetrics(reg),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/question/random", h.randomQuestion)
	mux.HandleFunc("POST /api/validate", h.validate)
	mux.HandleFunc("POST /api/stats", h.stats)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, quiz.StatusResponse{Status: "ok"})
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return h.middleware(mux)
}

func (h *handler) randomQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.RandomQuestion(r.Context())
	switch {
	case errors.Is(err, quiz.ErrNoQuestion):
		h.metrics.questions.WithLabelValues("empty").Inc()
		writeJSON(w, http.StatusNotFound, quiz.QuestionResponse{Error: "No questions available"})
	case err != nil:
		h.metrics.questions.WithLabelValues("error").Inc()
		h.logger.Error("random question failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, quiz.QuestionResponse{Error: "Database error: " + err.Error()})
	default:
		h.metrics.questions.WithLabelValues("served").Inc()
		writeJSON(w, http.StatusOK, quiz.QuestionResponse{Question: q})
	}
}

func (h *handler) validate(w http.ResponseWriter, r *http.Request) {
	var req quiz.ValidateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.metrics.validations.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, quiz.ValidateResponse{Error: "Invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" || req.QuestionID == 0 {
		h.metrics.validations.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, quiz.ValidateResponse{Error: "Missing query or question ID"})
		return
	}

	v, err := h.svc.Validate(r.Context(), strings.TrimSpace(req.Query), req.QuestionID)
	switch {
	case errors.Is(err, quiz.ErrUnknownQuestion):
		h.metrics.validations.WithLabelValues("unknown_question").Inc()
		writeJSON(w, http.StatusNotFound, quiz.ValidateResponse{Error: "Question not found"})
	case errors.Is(err, quiz.ErrMissingInput):
		h.metrics.validations.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, quiz.ValidateResponse{Error: "Missing query or question ID"})
	case err != nil:
		h.metrics.validations.WithLabelValues("error").Inc()
		h.logger.Error("validation failed", "question", req.QuestionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, quiz.ValidateResponse{Error: "Validation error: " + err.Error()})
	default:
		outcome := "incorrect"
		if v.Valid {
			outcome = "correct"
		}
		h.metrics.validations.WithLabelValues(outcome).Inc()
		writeJSON(w, http.StatusOK, quiz.ValidateResponse{Valid: v.Valid, Expected: v.Expected})
	}
}

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	var s quiz.Stats
	if err := decodeJSON(r, &s); err != nil {
		h.metrics.stats.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, quiz.StatusResponse{Status: "error", Message: "Invalid JSON body"})
		return
	}
	if s.Username == "" {
		s.Username = "anonymous"
	}
	if s.Score < 0 || s.QuestionsAnswered < 0 || s.CorrectAnswers < 0 || s.CorrectAnswers > s.QuestionsAnswered {
		h.metrics.stats.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, quiz.StatusResponse{Status: "error", Message: "Inconsistent statistics"})
		return
	}

	if err := h.svc.UpdateStats(r.Context(), s); err != nil {
		h.metrics.stats.WithLabelValues("error").Inc()
		h.logger.Error("stats update failed", "user", s.Username, "error", err)
		writeJSON(w, http.StatusInternalServerError, quiz.StatusResponse{Status: "error", Message: err.Error()})
		return
	}
	h.metrics.stats.WithLabelValues("recorded").Inc()
	h.metrics.score.Observe(float64(s.Score))
	writeJSON(w, http.StatusOK, quiz.StatusResponse{Status: "success"})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client went away; nothing to do
	jsoniter.NewEncoder(w).Encode(v)
}
