package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jslate/trophy-share/internal/domain"
	"github.com/jslate/trophy-share/internal/service"
)

type TrophyHandler struct {
	trophyService *service.TrophyService
}

func NewTrophyHandler(trophyService *service.TrophyService) *TrophyHandler {
	return &TrophyHandler{
		trophyService: trophyService,
	}
}

type SubmitTrophyRequest struct {
	RecipientName   string `json:"recipientName"`
	AchievementText string `json:"achievementText"`
	SubmitterName   string `json:"submitterName"`
}

type TrophyResponse struct {
	ID              string    `json:"id"`
	RecipientName   string    `json:"recipientName"`
	AchievementText string    `json:"achievementText"`
	SubmitterName   *string   `json:"submitterName,omitempty"`
	SubmittedAt     time.Time `json:"submittedAt"`
	DisplayOrder    int       `json:"displayOrder"`
}

type TrophyDetailsResponse struct {
	ID              string  `json:"id"`
	RecipientName   string  `json:"recipientName"`
	AchievementText string  `json:"achievementText"`
	SubmitterName   *string `json:"submitterName,omitempty"`
	DisplayOrder    int     `json:"displayOrder"`
	NextTrophyID    *string `json:"nextTrophyId"`
	IsLastTrophy    bool    `json:"isLastTrophy"`
}

func trophyToResponse(trophy *domain.TrophySubmission) TrophyResponse {
	return TrophyResponse{
		ID:              trophy.ID.String(),
		RecipientName:   trophy.RecipientName,
		AchievementText: trophy.AchievementText,
		SubmitterName:   trophy.SubmitterName,
		SubmittedAt:     trophy.SubmittedAt,
		DisplayOrder:    trophy.DisplayOrder,
	}
}

func (h *TrophyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "sessionCode")

	var req SubmitTrophyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trophy, err := h.trophyService.SubmitTrophy(r.Context(), code, service.SubmitTrophyInput{
		RecipientName:   req.RecipientName,
		AchievementText: req.AchievementText,
		SubmitterName:   req.SubmitterName,
	})
	if err != nil {
		writeDomainError(w, err, "TrophyHandler.Submit")
		return
	}

	w.Header().Set("Location", "/api/sessions/"+code+"/trophies/"+trophy.ID.String())
	writeJSON(w, http.StatusCreated, trophyToResponse(trophy))
}

func (h *TrophyHandler) List(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "sessionCode")

	trophies, err := h.trophyService.ListTrophies(r.Context(), code)
	if err != nil {
		writeDomainError(w, err, "TrophyHandler.List")
		return
	}

	resp := make([]TrophyResponse, len(trophies))
	for i, trophy := range trophies {
		resp[i] = trophyToResponse(trophy)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TrophyHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "sessionCode")

	trophyID, err := uuid.Parse(chi.URLParam(r, "trophyID"))
	if err != nil {
		writeError(w, http.StatusNotFound, domain.ErrTrophyNotFound.Error())
		return
	}

	details, err := h.trophyService.GetTrophyDetails(r.Context(), code, trophyID)
	if err != nil {
		writeDomainError(w, err, "TrophyHandler.Get")
		return
	}

	resp := TrophyDetailsResponse{
		ID:              details.Trophy.ID.String(),
		RecipientName:   details.Trophy.RecipientName,
		AchievementText: details.Trophy.AchievementText,
		SubmitterName:   details.Trophy.SubmitterName,
		DisplayOrder:    details.Trophy.DisplayOrder,
		IsLastTrophy:    details.IsLastTrophy,
	}
	if details.NextTrophyID != nil {
		id := details.NextTrophyID.String()
		resp.NextTrophyID = &id
	}

	writeJSON(w, http.StatusOK, resp)
}
