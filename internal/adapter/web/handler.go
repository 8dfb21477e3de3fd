package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ParikhVedant/pare/internal/adapter/funnelchart"
	"github.com/ParikhVedant/pare/internal/usecase"
)

// Handler exposes the assistant over HTTP. Sessions live in memory, keyed by
// the session_id returned from the first turn.
type Handler struct {
	assistant *usecase.Assistant
	funnel    *usecase.Funnel
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*usecase.Session
}

func NewHandler(assistant *usecase.Assistant, funnel *usecase.Funnel, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		assistant: assistant,
		funnel:    funnel,
		logger:    logger,
		sessions:  make(map[string]*usecase.Session),
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requestLogger)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/chat", h.handleChat)
	r.Get("/funnel", h.handleFunnelSummary)
	r.Get("/funnel.png", h.handleFunnelChart)
	return r
}

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
	Artifact  string `json:"artifact,omitempty"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSONError(w, http.StatusBadRequest, "message field cannot be empty")
		return
	}

	s := h.session(req.SessionID)
	resp, err := h.assistant.Respond(r.Context(), s, req.Message)
	if err != nil {
		h.logger.Error("turn failed", "session_id", s.ID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "could not process the message, please try again")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(chatResponse{
		SessionID: s.ID,
		Response:  resp.Response,
		Artifact:  resp.Artifact,
	})
}

func (h *Handler) handleFunnelSummary(w http.ResponseWriter, _ *http.Request) {
	if h.funnel == nil {
		writeJSONError(w, http.StatusNotFound, "funnel is not configured")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.funnel.Summary()))
}

func (h *Handler) handleFunnelChart(w http.ResponseWriter, _ *http.Request) {
	if h.funnel == nil {
		writeJSONError(w, http.StatusNotFound, "funnel is not configured")
		return
	}
	labels, values := h.funnel.GraphData()
	png, err := funnelchart.RenderPNG(labels, values)
	if err != nil {
		h.logger.Error("funnel chart failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "could not render funnel chart")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// session returns the existing session for id, or registers a fresh one.
func (h *Handler) session(id string) *usecase.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[id]; ok {
		return s
	}
	s := h.assistant.NewSession()
	h.sessions[s.ID] = s
	return s
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Serve runs the API with graceful shutdown on context cancellation.
func Serve(ctx context.Context, addr string, h *Handler) error {
	server := &http.Server{Addr: addr, Handler: h.Routes()}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("api server running", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
