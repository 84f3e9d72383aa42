package invite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"time"

	"github.com/heidekoenig/reservation-backend-go/internal/config"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/invite"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/maillog"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/email"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/token"
)

type InviteServiceImpl struct {
	inviteRepo  invite.InviteRepository
	mailLogRepo maillog.MailLogRepository
	email       email.EmailService
	codec       *token.Codec
	defaultDays int
	baseURL     string
}

func NewInviteService(
	inviteRepo invite.InviteRepository,
	mailLogRepo maillog.MailLogRepository,
	emailService email.EmailService,
	codec *token.Codec,
	cfg config.InviteConfig,
	baseURL string,
) invite.InviteService {
	return &InviteServiceImpl{
		inviteRepo:  inviteRepo,
		mailLogRepo: mailLogRepo,
		email:       emailService,
		codec:       codec,
		defaultDays: cfg.DefaultExpiryDays,
		baseURL:     baseURL,
	}
}

// Issue implements invite.InviteService.
func (s *InviteServiceImpl) Issue(ctx context.Context, req invite.IssueRequest) (invite.IssueResponse, error) {
	if err := req.Validate(); err != nil {
		return invite.IssueResponse{}, err
	}

	maxUses := req.MaxUses
	if maxUses < 1 {
		maxUses = 1
	}

	// nil falls back to the configured default; an explicit zero means the
	// invite never expires.
	days := s.defaultDays
	if req.ExpiresInDays != nil {
		days = *req.ExpiresInDays
	}
	var expiresAt *time.Time
	if days != 0 {
		t := time.Now().AddDate(0, 0, days)
		expiresAt = &t
	}

	plaintext, err := s.codec.Generate()
	if err != nil {
		return invite.IssueResponse{}, err
	}

	created, err := s.inviteRepo.Create(ctx, invite.InviteLink{
		FormKey:         req.FormKey,
		TokenHash:       s.codec.Hash(plaintext),
		CreatedByUserID: req.CreatedByUserID,
		RecipientEmail:  req.RecipientEmail,
		Note:            req.Note,
		ExpiresAt:       expiresAt,
		MaxUses:         maxUses,
	})
	if err != nil {
		return invite.IssueResponse{}, err
	}

	resp := invite.IssueResponse{
		InviteID: created.ID,
		Link:     s.buildLink(plaintext),
		Token:    plaintext,
		Invite:   created,
	}

	// Delivery failure must not fail issuance: the invite exists and staff
	// can resend.
	if created.RecipientEmail != nil {
		s.deliverInvite(ctx, created, resp.Link)
	}

	return resp, nil
}

// Validate implements invite.InviteService. Read-only; never consumes a use.
func (s *InviteServiceImpl) Validate(ctx context.Context, plaintext string) (invite.Validation, error) {
	if plaintext == "" {
		return invite.Validation{Valid: false, Reason: invite.ReasonInvalid}, nil
	}

	link, err := s.inviteRepo.GetByHash(ctx, s.codec.Hash(plaintext))
	if err != nil {
		if errors.Is(err, invite.ErrInviteNotFound) {
			return invite.Validation{Valid: false, Reason: invite.ReasonInvalid}, nil
		}
		return invite.Validation{}, err
	}

	if reason := link.FailureReason(time.Now()); reason != "" {
		return invite.Validation{Valid: false, Reason: reason}, nil
	}

	return invite.Validation{
		Valid:    true,
		InviteID: link.ID,
		FormKey:  link.FormKey,
		UseCount: link.UseCount,
		MaxUses:  link.MaxUses,
	}, nil
}

// ConsumeForReservation implements invite.InviteService. The conditional
// update is the only admission check; the state is re-read after a refusal
// purely to pick the right error for the caller.
func (s *InviteServiceImpl) ConsumeForReservation(ctx context.Context, plaintext, reservationID string) (invite.InviteLink, error) {
	link, err := s.inviteRepo.GetByHash(ctx, s.codec.Hash(plaintext))
	if err != nil {
		if errors.Is(err, invite.ErrInviteNotFound) {
			return invite.InviteLink{}, invite.ErrTokenInvalid
		}
		return invite.InviteLink{}, err
	}

	now := time.Now()
	consumed, err := s.inviteRepo.TryConsume(ctx, link.ID, link.MaxUses, now, reservationID)
	if err != nil {
		return invite.InviteLink{}, fmt.Errorf("failed to consume invite token: %w", err)
	}
	if !consumed {
		return invite.InviteLink{}, s.classifyRefusal(ctx, link.ID, now)
	}

	updated, err := s.inviteRepo.GetByID(ctx, link.ID)
	if err != nil {
		return invite.InviteLink{}, err
	}
	return updated, nil
}

func (s *InviteServiceImpl) classifyRefusal(ctx context.Context, id string, now time.Time) error {
	link, err := s.inviteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, invite.ErrInviteNotFound) {
			return invite.ErrTokenInvalid
		}
		return err
	}

	switch link.FailureReason(now) {
	case invite.ReasonRevoked:
		return invite.ErrTokenRevoked
	case invite.ReasonExpired:
		return invite.ErrTokenExpired
	}
	// The conditional update refused but the snapshot looks consumable: a
	// concurrent consumer won the race between our write and this read.
	return invite.ErrTokenExhausted
}

// Resend implements invite.InviteService. Mints a brand-new invite; the old
// one keeps whatever state it had.
func (s *InviteServiceImpl) Resend(ctx context.Context, inviteID string) (invite.IssueResponse, error) {
	old, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		return invite.IssueResponse{}, err
	}
	if old.RecipientEmail == nil {
		return invite.IssueResponse{}, invite.ErrRecipientMissing
	}

	// Never-expiring invites stay never-expiring; otherwise carry over the
	// remaining TTL with a floor of one day.
	days := 0
	if old.ExpiresAt != nil {
		days = int(math.Ceil(time.Until(*old.ExpiresAt).Hours() / 24))
		if days < 1 {
			days = 1
		}
	}

	return s.Issue(ctx, invite.IssueRequest{
		FormKey:         old.FormKey,
		RecipientEmail:  old.RecipientEmail,
		ExpiresInDays:   &days,
		Note:            old.Note,
		MaxUses:         old.MaxUses,
		CreatedByUserID: old.CreatedByUserID,
	})
}

// Revoke implements invite.InviteService.
func (s *InviteServiceImpl) Revoke(ctx context.Context, inviteID string) error {
	return s.inviteRepo.Revoke(ctx, inviteID)
}

// BulkDelete implements invite.InviteService.
func (s *InviteServiceImpl) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	return s.inviteRepo.DeleteMany(ctx, ids)
}

// List implements invite.InviteService.
func (s *InviteServiceImpl) List(ctx context.Context, limit int) ([]invite.ListItem, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	links, err := s.inviteRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]invite.ListItem, 0, len(links))
	for _, link := range links {
		items = append(items, invite.NewListItem(link, now))
	}
	return items, nil
}

func (s *InviteServiceImpl) buildLink(plaintext string) string {
	return fmt.Sprintf("%s/request?token=%s", s.baseURL, url.QueryEscape(plaintext))
}

func (s *InviteServiceImpl) deliverInvite(ctx context.Context, link invite.InviteLink, inviteURL string) {
	sendErr := s.email.SendInvite(*link.RecipientEmail, inviteURL, link.ExpiresAt, link.Note)

	entry := maillog.Entry{
		InviteID: &link.ID,
		To:       *link.RecipientEmail,
		Subject:  email.SubjectInvite,
		Status:   maillog.StatusSent,
	}
	if sendErr != nil {
		msg := sendErr.Error()
		entry.Status = maillog.StatusFailed
		entry.Error = &msg
		slog.Error("Failed to deliver invite email", "invite_id", link.ID, "error", sendErr)
	}

	if _, err := s.mailLogRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to record invite mail log", "invite_id", link.ID, "error", err)
	}
}
