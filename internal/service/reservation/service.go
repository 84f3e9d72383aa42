package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heidekoenig/reservation-backend-go/internal/config"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/invite"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/maillog"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/reservation"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/database"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/email"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/ratelimit"
	"github.com/heidekoenig/reservation-backend-go/internal/repository/postgresql"
)

type ReservationServiceImpl struct {
	db              *database.DB
	reservationRepo reservation.ReservationRepository
	inviteService   invite.InviteService
	mailLogRepo     maillog.MailLogRepository
	email           email.EmailService
	limiter         *ratelimit.Limiter
	appCfg          config.AppConfig
}

func NewReservationService(
	db *database.DB,
	reservationRepo reservation.ReservationRepository,
	inviteService invite.InviteService,
	mailLogRepo maillog.MailLogRepository,
	emailService email.EmailService,
	limiter *ratelimit.Limiter,
	appCfg config.AppConfig,
) reservation.ReservationService {
	return &ReservationServiceImpl{
		db:              db,
		reservationRepo: reservationRepo,
		inviteService:   inviteService,
		mailLogRepo:     mailLogRepo,
		email:           emailService,
		limiter:         limiter,
		appCfg:          appCfg,
	}
}

// Create implements reservation.ReservationService. Invite consumption, the
// reservation row and the host signature commit or roll back together, so a
// refused token never burns a reservation and a failed insert never burns a
// token use.
func (s *ReservationServiceImpl) Create(ctx context.Context, sub reservation.Submission, inviteToken string) (reservation.CreateResponse, error) {
	if err := sub.Validate(); err != nil {
		return reservation.CreateResponse{}, err
	}

	if !s.limiter.Allow(strings.ToLower(strings.TrimSpace(sub.GuestEmail))) {
		return reservation.CreateResponse{}, reservation.ErrRateLimited
	}

	signatureImage, err := reservation.DecodeSignatureDataURL(sub.Signature)
	if err != nil {
		return reservation.CreateResponse{}, err
	}

	// The id is minted up front so the invite consumption inside the
	// transaction can record which reservation spent the use.
	reservationID := uuid.NewString()

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		req := reservation.ReservationRequest{
			ID:                  reservationID,
			GuestName:           sub.GuestName,
			GuestEmail:          sub.GuestEmail,
			GuestPhone:          sub.GuestPhone,
			EventDate:           sub.EventDate,
			EventType:           sub.EventType,
			EventStartTime:      sub.EventStartTime,
			EventEndTime:        sub.EventEndTime,
			NumberOfGuests:      sub.NumberOfGuests,
			PaymentMethod:       sub.PaymentMethod,
			Extras:              sub.Extras,
			PriceEstimate:       sub.PriceEstimate,
			TotalPrice:          sub.TotalPrice,
			InternalResponsible: sub.InternalResponsible,
			InternalNotes:       sub.InternalNotes,
			Status:              reservation.StatusNew,
		}

		if inviteToken != "" {
			consumed, err := s.inviteService.ConsumeForReservation(txCtx, inviteToken, reservationID)
			if err != nil {
				return err
			}
			req.InviteID = &consumed.ID
		}

		if _, err := s.reservationRepo.Create(txCtx, req); err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		if _, err := s.reservationRepo.CreateSignature(txCtx, reservation.Signature{
			ReservationID: reservationID,
			Type:          reservation.SignatureHost,
			ImageData:     signatureImage,
		}); err != nil {
			return fmt.Errorf("failed to store signature: %w", err)
		}

		return nil
	})
	if err != nil {
		return reservation.CreateResponse{}, err
	}

	// Notifications happen after commit; their failure never unwinds the
	// reservation.
	s.notify(ctx, reservationID, sub)

	return reservation.CreateResponse{ReservationID: reservationID}, nil
}

func (s *ReservationServiceImpl) notify(ctx context.Context, reservationID string, sub reservation.Submission) {
	if len(s.appCfg.AdminNotificationEmails) > 0 {
		err := s.email.SendReservationNotice(s.appCfg.AdminNotificationEmails, sub.GuestName, sub.GuestEmail, reservationID)
		s.logMail(ctx, reservationID, strings.Join(s.appCfg.AdminNotificationEmails, ","),
			fmt.Sprintf("%s %s", email.SubjectReservationNotice, sub.GuestName), err)
	}

	if s.appCfg.SendGuestConfirmation {
		err := s.email.SendGuestConfirmation(sub.GuestEmail)
		s.logMail(ctx, reservationID, sub.GuestEmail, email.SubjectGuestConfirmation, err)
	}
}

func (s *ReservationServiceImpl) logMail(ctx context.Context, reservationID, to, subject string, sendErr error) {
	entry := maillog.Entry{
		ReservationID: &reservationID,
		To:            to,
		Subject:       subject,
		Status:        maillog.StatusSent,
	}
	if sendErr != nil {
		msg := sendErr.Error()
		entry.Status = maillog.StatusFailed
		entry.Error = &msg
		slog.Error("Failed to send reservation email", "reservation_id", reservationID, "error", sendErr)
	}

	if _, err := s.mailLogRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to record reservation mail log", "reservation_id", reservationID, "error", err)
	}
}

// GetByID implements reservation.ReservationService.
func (s *ReservationServiceImpl) GetByID(ctx context.Context, id string) (reservation.DetailResponse, error) {
	req, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return reservation.DetailResponse{}, err
	}

	sigs, err := s.reservationRepo.ListSignatures(ctx, id)
	if err != nil {
		return reservation.DetailResponse{}, err
	}

	return reservation.NewDetailResponse(req, sigs), nil
}

// List implements reservation.ReservationService. Signatures are omitted
// from the list view; the detail endpoint carries them.
func (s *ReservationServiceImpl) List(ctx context.Context, limit int) ([]reservation.DetailResponse, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	reqs, err := s.reservationRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]reservation.DetailResponse, 0, len(reqs))
	for _, req := range reqs {
		items = append(items, reservation.NewDetailResponse(req, nil))
	}
	return items, nil
}

// UpdateStatus implements reservation.ReservationService.
func (s *ReservationServiceImpl) UpdateStatus(ctx context.Context, id string, req reservation.UpdateStatusRequest) (reservation.DetailResponse, error) {
	if err := req.Validate(); err != nil {
		return reservation.DetailResponse{}, err
	}

	updated, err := s.reservationRepo.UpdateStatus(ctx, id, req.Status, req.Notes)
	if err != nil {
		return reservation.DetailResponse{}, err
	}

	sigs, err := s.reservationRepo.ListSignatures(ctx, id)
	if err != nil {
		return reservation.DetailResponse{}, err
	}

	return reservation.NewDetailResponse(updated, sigs), nil
}
