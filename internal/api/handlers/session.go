package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jslate/trophy-share/internal/domain"
	"github.com/jslate/trophy-share/internal/service"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

type CreateSessionRequest struct {
	OrganizerName string `json:"organizerName"`
}

type SessionResponse struct {
	ID           string    `json:"id"`
	SessionCode  string    `json:"sessionCode"`
	ShareableURL string    `json:"shareableUrl"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
	TrophyCount  int64     `json:"trophyCount"`
}

type SessionWithTrophiesResponse struct {
	Session  SessionResponse  `json:"session"`
	Trophies []TrophyResponse `json:"trophies"`
}

func sessionToResponse(session *domain.Session, trophyCount int64) SessionResponse {
	return SessionResponse{
		ID:           session.ID.String(),
		SessionCode:  session.SessionCode,
		ShareableURL: session.ShareableURL(),
		Status:       string(session.Status),
		CreatedAt:    session.CreatedAt,
		ExpiresAt:    session.ExpiresAt,
		TrophyCount:  trophyCount,
	}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Body is optional; a bare POST creates an anonymous session
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionService.CreateSession(r.Context(), req.OrganizerName)
	if err != nil {
		log.Printf("ERROR [SessionHandler.Create] %v", err)
		writeError(w, http.StatusBadRequest, "failed to create session")
		return
	}

	w.Header().Set("Location", "/api/sessions/"+session.SessionCode)
	writeJSON(w, http.StatusCreated, sessionToResponse(session, 0))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "sessionCode")

	session, err := h.sessionService.GetSessionWithTrophies(r.Context(), code)
	if err != nil {
		writeDomainError(w, err, "SessionHandler.Get")
		return
	}

	trophies := make([]TrophyResponse, len(session.Trophies))
	for i := range session.Trophies {
		trophies[i] = trophyToResponse(&session.Trophies[i])
	}

	writeJSON(w, http.StatusOK, SessionWithTrophiesResponse{
		Session:  sessionToResponse(session, int64(len(session.Trophies))),
		Trophies: trophies,
	})
}

func (h *SessionHandler) StartPresentation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "sessionCode")

	session, count, err := h.sessionService.StartPresentation(r.Context(), code)
	if err != nil {
		writeDomainError(w, err, "SessionHandler.StartPresentation")
		return
	}

	writeJSON(w, http.StatusOK, sessionToResponse(session, count))
}

func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "sessionCode")

	session, count, err := h.sessionService.CloseSession(r.Context(), code)
	if err != nil {
		writeDomainError(w, err, "SessionHandler.Close")
		return
	}

	writeJSON(w, http.StatusOK, sessionToResponse(session, count))
}
