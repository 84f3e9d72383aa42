package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/invite"
	"github.com/heidekoenig/reservation-backend-go/internal/handler/http/response"
)

type InviteHandler interface {
	// Public endpoint - pre-flight token check for the form page
	Validate(w http.ResponseWriter, r *http.Request)
	// Admin endpoints
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Resend(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
	BulkDelete(w http.ResponseWriter, r *http.Request)
}

type inviteHandlerImpl struct {
	inviteService invite.InviteService
}

func NewInviteHandler(inviteService invite.InviteService) InviteHandler {
	return &inviteHandlerImpl{
		inviteService: inviteService,
	}
}

// Validate implements InviteHandler - public endpoint. A token that never
// existed answers 404; one that once worked answers 410 with the reason.
func (h *inviteHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	result, err := h.inviteService.Validate(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Valid {
		response.Success(w, invite.ValidateResponse{
			Valid:   true,
			FormKey: result.FormKey,
		})
		return
	}

	switch result.Reason {
	case invite.ReasonRevoked:
		response.Gone(w, "INVITE_REVOKED", "Invite link has been revoked")
	case invite.ReasonExpired:
		response.Gone(w, "INVITE_EXPIRED", "Invite link has expired")
	case invite.ReasonUsed:
		response.Gone(w, "INVITE_USED", "Invite link has already been used")
	default:
		response.NotFound(w, "Invite link not found")
	}
}

// Create implements InviteHandler - mints a new invite link
func (h *inviteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req invite.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		req.CreatedByUserID = &userID
	}

	result, err := h.inviteService.Issue(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invite link created", result)
}

// List implements InviteHandler
func (h *inviteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.inviteService.List(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Resend implements InviteHandler - mints a fresh invite for the same
// recipient and emails it
func (h *inviteHandlerImpl) Resend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.inviteService.Resend(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invite resent", result)
}

// Revoke implements InviteHandler
func (h *inviteHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.inviteService.Revoke(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invite link revoked", nil)
}

// BulkDelete implements InviteHandler
func (h *inviteHandlerImpl) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req invite.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	deleted, err := h.inviteService.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int64{"deleted": deleted})
}
