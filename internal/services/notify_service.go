package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fwc_backend/internal/models"
	"fwc_backend/internal/repository"
	"fwc_backend/pkg/whatsapp"

	"github.com/rs/zerolog"
)

// EmailSender is satisfied by *mailer.Client.
type EmailSender interface {
	Send(to, subject, body, attachmentName string, attachment []byte) error
}

// WhatsAppSender is satisfied by *whatsapp.Client.
type WhatsAppSender interface {
	SendStatusUpdate(ctx context.Context, mobile, status string, transport *whatsapp.TransportParams) error
}

type NotifyService interface {
	Notifier
	// RecoverPending re-dispatches outbox entries left behind by a crash
	// between commit and dispatch. Called once at startup.
	RecoverPending(ctx context.Context)
}

type notifyService struct {
	outbox     repository.OutboxRepository
	quotations repository.QuotationRepository
	bookings   repository.BookingRepository
	transport  repository.TransportRepository
	email      EmailSender
	wa         WhatsAppSender
	artifacts  Artifacts
	retries    int
	backoff    time.Duration
	log        zerolog.Logger
}

func NewNotifyService(
	outbox repository.OutboxRepository,
	quotations repository.QuotationRepository,
	bookings repository.BookingRepository,
	transport repository.TransportRepository,
	email EmailSender,
	wa WhatsAppSender,
	artifacts Artifacts,
	retries int,
	backoff time.Duration,
	log zerolog.Logger,
) NotifyService {
	if retries < 1 {
		retries = 1
	}
	return &notifyService{
		outbox:     outbox,
		quotations: quotations,
		bookings:   bookings,
		transport:  transport,
		email:      email,
		wa:         wa,
		artifacts:  artifacts,
		retries:    retries,
		backoff:    backoff,
		log:        log,
	}
}

// Dispatch sends each entry with a fixed-backoff retry loop. Failures
// are recorded on the outbox row and never propagate to the caller.
func (s *notifyService) Dispatch(ctx context.Context, entries []models.NotificationOutbox) {
	for _, entry := range entries {
		var lastErr error
		for attempt := 1; attempt <= s.retries; attempt++ {
			lastErr = s.send(ctx, entry)
			if lastErr == nil {
				break
			}
			s.log.Warn().Err(lastErr).
				Str("channel", string(entry.Channel)).
				Str("order_ref", entry.OrderRef).
				Str("event", entry.Event).
				Int("attempt", attempt).
				Msg("notification attempt failed")
			if attempt < s.retries {
				select {
				case <-time.After(s.backoff):
				case <-ctx.Done():
					attempt = s.retries
				}
			}
		}

		if lastErr != nil {
			if err := s.outbox.MarkFailed(entry.ID, s.retries, lastErr.Error()); err != nil {
				s.log.Error().Err(err).Str("id", entry.ID).Msg("failed to mark outbox entry failed")
			}
			continue
		}
		if err := s.outbox.MarkSent(entry.ID); err != nil {
			s.log.Error().Err(err).Str("id", entry.ID).Msg("failed to mark outbox entry sent")
		}
	}
}

func (s *notifyService) RecoverPending(ctx context.Context) {
	entries, err := s.outbox.ListPending(100)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list pending notifications")
		return
	}
	if len(entries) == 0 {
		return
	}
	s.log.Info().Int("count", len(entries)).Msg("re-dispatching pending notifications")
	s.Dispatch(ctx, entries)
}

func (s *notifyService) send(ctx context.Context, entry models.NotificationOutbox) error {
	switch entry.Channel {
	case models.ChannelEmail:
		return s.sendEmail(entry)
	case models.ChannelWhatsApp:
		return s.sendWhatsApp(ctx, entry)
	}
	return fmt.Errorf("unknown notification channel %q", entry.Channel)
}

func (s *notifyService) sendEmail(entry models.NotificationOutbox) error {
	if s.email == nil {
		return fmt.Errorf("email sender not configured")
	}

	subject, body, err := s.composeEmail(entry)
	if err != nil {
		return err
	}

	var attachment []byte
	var attachmentName string
	if entry.PDFPath != "" && s.artifacts.Exists(entry.PDFPath) {
		data, err := s.artifacts.Read(entry.PDFPath)
		if err != nil {
			s.log.Warn().Err(err).Str("path", entry.PDFPath).Msg("sending email without attachment")
		} else {
			attachment = data
			attachmentName = entry.PDFPath[strings.LastIndex(entry.PDFPath, "/")+1:]
		}
	}

	return s.email.Send(entry.Recipient, subject, body, attachmentName, attachment)
}

func (s *notifyService) composeEmail(entry models.NotificationOutbox) (string, string, error) {
	if strings.HasPrefix(entry.Event, "status_") {
		status := strings.TrimPrefix(entry.Event, "status_")
		subject := fmt.Sprintf("Order %s is now %s - Phoenix Crackers", entry.OrderRef, status)
		body := fmt.Sprintf("Dear customer,\n\nYour order %s has been updated to: %s.\n\nThank you for shopping with Phoenix Crackers!",
			entry.OrderRef, status)
		return subject, body, nil
	}

	if entry.OrderKind == models.KindQuotation {
		quotation, err := s.quotations.GetByQuotationID(entry.OrderRef)
		if err != nil {
			return "", "", fmt.Errorf("failed to load quotation %s: %w", entry.OrderRef, err)
		}
		subject := fmt.Sprintf("Quotation %s - Phoenix Crackers", entry.OrderRef)
		if entry.Event == "quotation_updated" {
			subject = fmt.Sprintf("Quotation %s (updated) - Phoenix Crackers", entry.OrderRef)
		}
		body := fmt.Sprintf("Dear %s,\n\nPlease find attached quotation %s for a total of Rs.%.2f.\n\nThank you for your interest in Phoenix Crackers!",
			quotation.CustomerName, entry.OrderRef, quotation.Total)
		return subject, body, nil
	}

	booking, err := s.bookings.GetByOrderID(entry.OrderRef)
	if err != nil {
		return "", "", fmt.Errorf("failed to load order %s: %w", entry.OrderRef, err)
	}
	subject := fmt.Sprintf("Order %s confirmed - Phoenix Crackers", entry.OrderRef)
	if entry.Event == "booking_updated" {
		subject = fmt.Sprintf("Order %s (updated) - Phoenix Crackers", entry.OrderRef)
	}
	body := fmt.Sprintf("Dear %s,\n\nYour order %s for a total of Rs.%.2f has been recorded. The estimate bill is attached.\n\nThank you for shopping with Phoenix Crackers!",
		booking.CustomerName, entry.OrderRef, booking.Total)
	return subject, body, nil
}

func (s *notifyService) sendWhatsApp(ctx context.Context, entry models.NotificationOutbox) error {
	if s.wa == nil {
		return fmt.Errorf("whatsapp sender not configured")
	}

	status := strings.TrimPrefix(entry.Event, "status_")

	var params *whatsapp.TransportParams
	if status == string(models.StatusDispatched) || status == string(models.StatusDelivered) {
		details, err := s.transport.ListByOrderID(entry.OrderRef)
		if err == nil && len(details) > 0 {
			latest := details[len(details)-1]
			params = &whatsapp.TransportParams{
				TransportName:    latest.TransportName,
				LRNumber:         latest.LRNumber,
				TransportContact: latest.TransportContact,
			}
		}
	}

	return s.wa.SendStatusUpdate(ctx, entry.Recipient, status, params)
}
