package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/domain/roster"
	"musterbot/internal/ports/input"
)

type handler struct {
	musters input.MusterUseCase
	members input.MemberUseCase
}

type errorResponse struct {
	Error string `json:"error"`
}

type entryResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

type musterResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CreatorID   string          `json:"creator_id"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	Slots       int             `json:"slots"`
	ChannelID   string          `json:"channel_id"`
	ThreadID    string          `json:"thread_id,omitempty"`
	Primary     []entryResponse `json:"primary"`
	Overflow    []entryResponse `json:"overflow"`
	CreatedAt   time.Time       `json:"created_at"`
	// PostedAt est l'horodatage porté par l'id du message.
	PostedAt *time.Time `json:"posted_at,omitempty"`
}

type memberResponse struct {
	ID               string    `json:"id"`
	DisplayName      string    `json:"display_name"`
	GameStatic       string    `json:"game_static"`
	UpdatedAt        time.Time `json:"updated_at"`
	AccountCreatedAt time.Time `json:"account_created_at"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listMusters(w http.ResponseWriter, r *http.Request) {
	musters, err := h.musters.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "❌ Liste des rassemblements indisponible", tint.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to list musters")
		return
	}
	out := make([]musterResponse, 0, len(musters))
	for i := range musters {
		out = append(out, toMusterResponse(&musters[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getMuster(w http.ResponseWriter, r *http.Request) {
	m, err := h.musters.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrMusterNotFound) {
			writeError(w, http.StatusNotFound, "muster not found")
			return
		}
		slog.ErrorContext(r.Context(), "❌ Lecture du rassemblement impossible", tint.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to get muster")
		return
	}
	writeJSON(w, http.StatusOK, toMusterResponse(m))
}

func (h *handler) memberByStatic(w http.ResponseWriter, r *http.Request) {
	m, err := h.members.FindByStatic(r.Context(), chi.URLParam(r, "static"))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		slog.ErrorContext(r.Context(), "❌ Recherche du membre impossible", tint.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to find member")
		return
	}
	resp := memberResponse{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		GameStatic:  m.GameStatic,
		UpdatedAt:   m.UpdatedAt,
	}
	if id, err := snowflake.Parse(m.ID); err == nil {
		resp.AccountCreatedAt = id.Time()
	}
	writeJSON(w, http.StatusOK, resp)
}

func toMusterResponse(m *entities.Muster) musterResponse {
	resp := musterResponse{
		ID:          m.ID,
		Name:        m.Name,
		CreatorID:   m.CreatorID,
		ScheduledAt: m.ScheduledAt,
		Slots:       m.Slots,
		ChannelID:   m.ChannelID,
		ThreadID:    m.ThreadID,
		Primary:     toEntries(m.Primary),
		Overflow:    toEntries(m.Overflow),
		CreatedAt:   m.CreatedAt,
	}
	if id, err := snowflake.Parse(m.ID); err == nil {
		t := id.Time()
		resp.PostedAt = &t
	}
	return resp
}

func toEntries(entries []roster.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{UserID: e.UserID, DisplayName: e.DisplayName})
	}
	return out
}
