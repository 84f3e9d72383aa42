package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/heidekoenig/reservation-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Subjects shared with the mail log
const (
	SubjectInvite            = "Ihre Einladung zur Reservierungsanfrage"
	SubjectReservationNotice = "Neue Reservierungsanfrage"
	SubjectGuestConfirmation = "Ihre Anfrage wurde übermittelt"
)

// EmailService defines the interface for sending emails
type EmailService interface {
	SendInvite(to, link string, expiresAt *time.Time, note *string) error
	SendReservationNotice(to []string, guestName, guestEmail, reservationID string) error
	SendGuestConfirmation(to string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type inviteEmailData struct {
	Link      string
	ExpiresAt string
	Note      string
}

// SendInvite sends the invite link to its recipient
func (s *emailServiceImpl) SendInvite(to, link string, expiresAt *time.Time, note *string) error {
	data := inviteEmailData{Link: link}
	if expiresAt != nil {
		data.ExpiresAt = expiresAt.Format("02.01.2006 15:04")
	}
	if note != nil {
		data.Note = *note
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "invite.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML([]string{to}, SubjectInvite, body.String())
}

type reservationNoticeData struct {
	GuestName     string
	GuestEmail    string
	ReservationID string
}

// SendReservationNotice notifies staff about a new reservation request
func (s *emailServiceImpl) SendReservationNotice(to []string, guestName, guestEmail, reservationID string) error {
	data := reservationNoticeData{
		GuestName:     guestName,
		GuestEmail:    guestEmail,
		ReservationID: reservationID,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "reservation_notice.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("%s %s", SubjectReservationNotice, guestName), body.String())
}

// SendGuestConfirmation acknowledges the guest's submission
func (s *emailServiceImpl) SendGuestConfirmation(to string) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "guest_confirmation.html", struct{}{}); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML([]string{to}, SubjectGuestConfirmation, body.String())
}

func (s *emailServiceImpl) sendHTML(to []string, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	for _, rcpt := range to {
		headers += fmt.Sprintf("To: %s\r\n", rcpt)
	}
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, to, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
