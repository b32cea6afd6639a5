package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/models"
)

// Handler serves the party API: the REST handshake endpoints and the
// websocket session endpoint.
type Handler struct {
	hub     *Hub
	version string

	logger *logger.Logger
}

// NewHandler builds the HTTP handler over the given hub.
func NewHandler(hub *Hub, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		hub:     hub,
		version: version,
		logger:  logger,
	}
}

// Init assembles the route table.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/health", h.health)
	router.Post("/api/party", h.createParty)
	router.Post("/api/party/{code}/join", h.joinParty)
	router.Get("/ws/{code}", h.serveWS)

	return router
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

func (h *Handler) createParty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeAPIError(w, http.StatusBadRequest, "invalid JSON was passed")
		return
	}

	resp, err := h.hub.Create(ctx, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyName):
			log.Err(err).Msg("empty member name")
			writeAPIError(w, http.StatusBadRequest, "member name is required")
		default:
			log.Err(err).Msg("unexpected error occurred during party creation")
			writeAPIError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) joinParty(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	code := chi.URLParam(r, "code")

	var req models.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeAPIError(w, http.StatusBadRequest, "invalid JSON was passed")
		return
	}

	resp, err := h.hub.Join(code, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrPartyNotFound):
			log.Err(err).Str("code", code).Msg("party not found")
			writeAPIError(w, http.StatusNotFound, "party not found")
		case errors.Is(err, ErrPartyFull):
			log.Err(err).Str("code", code).Msg("party is full")
			writeAPIError(w, http.StatusConflict, "party is full")
		case errors.Is(err, ErrEmptyName):
			log.Err(err).Msg("empty member name")
			writeAPIError(w, http.StatusBadRequest, "member name is required")
		default:
			log.Err(err).Msg("unexpected error occurred during party join")
			writeAPIError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	code := chi.URLParam(r, "code")
	memberID := r.URL.Query().Get("member_id")

	room, err := h.hub.Room(code)
	if err != nil {
		log.Err(err).Str("code", code).Msg("websocket party lookup failed")
		writeAPIError(w, http.StatusNotFound, "party not found")
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Msg("websocket upgrade failed")
		return
	}

	client := newWSClient(room, memberID, ws, h.logger)
	if err := room.Attach(memberID, client); err != nil {
		log.Err(err).Str("member", memberID).Msg("websocket attach rejected")
		_ = ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		_ = ws.Close()
		return
	}

	client.serve()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.APIError{Error: msg})
}
