package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cwrk-planet/signaling-service/internal/domain"
	"github.com/cwrk-planet/signaling-service/internal/postgres"
	httpmw "github.com/cwrk-planet/signaling-service/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

// InviteSvc is what the invite endpoints need. *service.InviteService
// satisfies it.
type InviteSvc interface {
	ListPending(ctx context.Context, receiverID, cursor string, limit int) ([]domain.CallInvite, string, error)
	Resolve(ctx context.Context, inviteID, receiverID string, status domain.InviteStatus) error
}

type Handler struct {
	inviteSvc InviteSvc
}

func NewHandler(invites InviteSvc) *Handler {
	return &Handler{inviteSvc: invites}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /invites?limit=&cursor= — the caller's pending invites, newest first.
// This is how a client recovers calls it missed while offline.
func (h *Handler) ListInvites(w http.ResponseWriter, r *http.Request) {
	userID := httpmw.UserIDFromCtx(r.Context())

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	cursor := r.URL.Query().Get("cursor")

	invites, next, err := h.inviteSvc.ListPending(r.Context(), userID, cursor, limit)
	if err != nil {
		if errors.Is(err, postgres.ErrInvalidCursor) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_cursor"})
			return
		}
		slog.Error("handler.ListInvites:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	resp := InvitesListResponse{Items: make([]InviteItem, 0, len(invites)), NextCursor: next}
	for _, inv := range invites {
		resp.Items = append(resp.Items, mapInvite(inv))
	}

	writeJSON(w, http.StatusOK, resp)
}

// POST /invites/{id}/accept
func (h *Handler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	h.resolveInvite(w, r, domain.InviteAccepted)
}

// POST /invites/{id}/decline
func (h *Handler) DeclineInvite(w http.ResponseWriter, r *http.Request) {
	h.resolveInvite(w, r, domain.InviteDeclined)
}

func (h *Handler) resolveInvite(w http.ResponseWriter, r *http.Request, status domain.InviteStatus) {
	inviteID := chi.URLParam(r, "id")
	userID := httpmw.UserIDFromCtx(r.Context())

	err := h.inviteSvc.Resolve(r.Context(), inviteID, userID, status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInviteNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "invite not found"})
		case errors.Is(err, domain.ErrInviteResolved):
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: "invite already resolved"})
		default:
			slog.Error("handler.resolveInvite:", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func mapInvite(inv domain.CallInvite) InviteItem {
	return InviteItem{
		ID:          inv.ID,
		CommunityID: inv.CommunityID,
		CallerID:    inv.CallerID,
		CallerName:  inv.CallerName,
		RoomID:      inv.RoomID,
		ReceiverID:  inv.ReceiverID,
		Status:      string(inv.Status),
		CreatedAt:   inv.CreatedAt,
	}
}
