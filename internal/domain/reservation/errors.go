package reservation

import "errors"

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrRateLimited         = errors.New("too many reservation requests")
	ErrInvalidStatus       = errors.New("invalid reservation status")
	ErrInvalidSignature    = errors.New("signature image data is malformed")
	ErrUnknownPayloadShape = errors.New("submission payload shape is not recognized")
)
