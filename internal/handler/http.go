package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/link-shortener/internal/logger"
	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/storage"
)

type Resolver interface {
	Resolve(ctx context.Context, requestPath string) model.Response
}

type Handler struct {
	resolver Resolver
	pinger   storage.Pinger
}

// NewHandler creates the HTTP handler. pinger may be nil when the store
// cannot report its health.
func NewHandler(resolver Resolver, pinger storage.Pinger) *Handler {
	return &Handler{
		resolver: resolver,
		pinger:   pinger,
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(logger.RequestLogger)

	r.Get("/ping", h.handlePing)
	r.Get("/*", h.handleResolve)
	r.Head("/*", h.handleResolve)

	return r
}

// handleResolve resolves the escaped request path so keys match the raw
// URI CloudFront hands to the edge function.
func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	resp := h.resolver.Resolve(r.Context(), r.URL.EscapedPath())
	WriteResponse(w, r, resp)
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := h.pinger.Ping(r.Context()); err != nil {
		log.Error().Err(err).Msg("Store ping failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// WriteResponse copies a resolver response onto w. HEAD requests get the
// headers and status only.
func WriteResponse(w http.ResponseWriter, r *http.Request, resp model.Response) {
	for _, values := range resp.Headers {
		for _, v := range values {
			w.Header().Add(v.Key, v.Value)
		}
	}
	w.WriteHeader(resp.Status)

	if r.Method == http.MethodHead {
		return
	}

	if _, err := io.WriteString(w, resp.Body); err != nil {
		log.Warn().Err(err).Msg("Failed to write response body")
	}
}
