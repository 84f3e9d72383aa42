package maillog

import "context"

// MailLogRepository defines the interface for mail-log data access
type MailLogRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	ListByInviteID(ctx context.Context, inviteID string) ([]Entry, error)
}
