package response

import (
	"errors"
	"net/http"

	"github.com/heidekoenig/reservation-backend-go/internal/domain/auth"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/invite"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/reservation"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/user"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Invite domain errors. A token that never existed is indistinguishable
	// from a deleted one, hence 404; revoked, expired and exhausted links
	// once worked and answer 410.
	case errors.Is(err, invite.ErrInviteNotFound), errors.Is(err, invite.ErrTokenInvalid):
		NotFound(w, "Invite link not found")
	case errors.Is(err, invite.ErrTokenRevoked):
		Gone(w, "INVITE_REVOKED", "Invite link has been revoked")
	case errors.Is(err, invite.ErrTokenExpired):
		Gone(w, "INVITE_EXPIRED", "Invite link has expired")
	case errors.Is(err, invite.ErrTokenExhausted):
		Gone(w, "INVITE_USED", "Invite link has already been used")
	case errors.Is(err, invite.ErrRecipientMissing):
		BadRequest(w, "Invite has no recipient email", nil)

	// Reservation domain errors
	case errors.Is(err, reservation.ErrReservationNotFound):
		NotFound(w, "Reservation not found")
	case errors.Is(err, reservation.ErrRateLimited):
		TooManyRequests(w, "Too many reservation requests, please try again later")
	case errors.Is(err, reservation.ErrInvalidSignature):
		BadRequest(w, "Signature image data is malformed", nil)
	case errors.Is(err, reservation.ErrUnknownPayloadShape):
		BadRequest(w, "Submission payload shape is not recognized", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
