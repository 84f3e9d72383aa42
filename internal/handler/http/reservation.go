package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/reservation"
	"github.com/heidekoenig/reservation-backend-go/internal/handler/http/response"
)

// maxSubmissionBytes bounds the form payload; signature data URLs dominate
// the size.
const maxSubmissionBytes = 2 << 20

type ReservationHandler interface {
	// Public endpoint - guest intake
	Create(w http.ResponseWriter, r *http.Request)
	// Admin endpoints
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type reservationHandlerImpl struct {
	reservationService reservation.ReservationService
}

func NewReservationHandler(reservationService reservation.ReservationService) ReservationHandler {
	return &reservationHandlerImpl{
		reservationService: reservationService,
	}
}

// Create implements ReservationHandler - public endpoint. The invite token
// rides in the query string so the form body stays shape-agnostic.
func (h *reservationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxSubmissionBytes))
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sub, err := reservation.DecodeSubmission(raw)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	inviteToken := r.URL.Query().Get("token")

	result, err := h.reservationService.Create(r.Context(), sub, inviteToken)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Reservation request submitted", result)
}

// GetByID implements ReservationHandler
func (h *reservationHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.reservationService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ReservationHandler
func (h *reservationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.reservationService.List(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateStatus implements ReservationHandler
func (h *reservationHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req reservation.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reservationService.UpdateStatus(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reservation status updated", result)
}
