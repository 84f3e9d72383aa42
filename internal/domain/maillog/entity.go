package maillog

import "time"

// Status of a delivery attempt
type Status string

const (
	StatusSent   Status = "SENT"
	StatusFailed Status = "FAILED"
)

// Entry records one outbound mail attempt, scoped to the invite or the
// reservation it concerns. Entries are purged when their invite is deleted.
type Entry struct {
	ID            string
	InviteID      *string
	ReservationID *string
	To            string
	Subject       string
	Status        Status
	Error         *string
	CreatedAt     time.Time
}
