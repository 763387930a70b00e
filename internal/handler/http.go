package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/shortlink/internal/logger"
	"github.com/MikhailRaia/shortlink/internal/middleware"
	"github.com/MikhailRaia/shortlink/internal/model"
	"github.com/MikhailRaia/shortlink/internal/service"
	"github.com/MikhailRaia/shortlink/internal/storage"
)

// maxCreateBodySize caps the create request body.
const maxCreateBodySize = 256 << 10

var errBadShape = errors.New("request body does not match the create request shape")

type Shortener interface {
	Create(ctx context.Context, req model.CreateRequest) (model.CreateResponse, error)
	Resolve(ctx context.Context, slug string) (string, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	shortener Shortener
}

func NewHandler(shortener Shortener) *Handler {
	return &Handler{
		shortener: shortener,
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(logger.RequestLogger)

	r.Use(middleware.GzipReader)
	r.Use(middleware.Compress)

	r.Post("/edit", h.handleCreate)
	r.Get("/ping", h.handlePing)
	r.Get("/{slug}", h.handleRedirect)

	return r
}

// createPayload mirrors model.CreateRequest with pointers so that missing
// and mistyped fields can be rejected.
type createPayload struct {
	MasterSecret *string `json:"master_secret"`
	Target       *string `json:"target"`
}

func decodeCreateRequest(body io.Reader) (model.CreateRequest, error) {
	var payload createPayload

	dec := json.NewDecoder(body)
	if err := dec.Decode(&payload); err != nil {
		return model.CreateRequest{}, fmt.Errorf("%w: %v", errBadShape, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return model.CreateRequest{}, fmt.Errorf("%w: trailing data after object", errBadShape)
	}

	if payload.Target == nil || *payload.Target == "" {
		return model.CreateRequest{}, fmt.Errorf("%w: target is required", errBadShape)
	}

	return model.CreateRequest{
		MasterSecret: payload.MasterSecret,
		Target:       *payload.Target,
	}, nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "application/json") {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req, err := decodeCreateRequest(http.MaxBytesReader(w, r.Body, maxCreateBodySize))
	if err != nil {
		log.Debug().Err(err).Msg("Rejected create request")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp, err := h.shortener.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			w.WriteHeader(http.StatusForbidden)
		case errors.Is(err, service.ErrInvalidRequest):
			w.WriteHeader(http.StatusBadRequest)
		default:
			log.Error().Err(err).Msg("Failed to create record")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	responseJSON, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode create response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(responseJSON)
}

func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	target, err := h.shortener.Resolve(r.Context(), slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		log.Error().Err(err).Str("slug", slug).Msg("Failed to resolve slug")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusFound)
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	if err := h.shortener.Ping(r.Context()); err != nil {
		log.Error().Err(err).Msg("Store ping failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
