package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fwc_backend/internal/models"
	"fwc_backend/internal/pdf"
	"fwc_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Artifacts is the document storage the order service writes rendered
// PDFs through. *artifact.Store satisfies it.
type Artifacts interface {
	FileName(partyName, refID string, kind models.OrderKind) string
	Write(name string, data []byte) (string, error)
	Read(path string) ([]byte, error)
	Exists(path string) bool
	Remove(path string) error
}

// RenderFunc produces document bytes from a render input. pdf.Render
// satisfies it.
type RenderFunc func(pdf.Input) ([]byte, error)

// Notifier dispatches enqueued outbox entries after a transaction has
// committed. Dispatch is best-effort and must never return an error
// into the order path.
type Notifier interface {
	Dispatch(ctx context.Context, entries []models.NotificationOutbox)
}

// PaymentDetails carries the optional payment fields of a booking.
type PaymentDetails struct {
	Method        string
	TransactionID string
	AmountPaid    float64
}

// TransportRequest is the dispatch payload required to move a booking
// to dispatched.
type TransportRequest struct {
	TransportName    string `json:"transport_name"`
	LRNumber         string `json:"lr_number"`
	TransportContact string `json:"transport_contact"`
}

// OrderPatch is a partial quotation update. Nil fields are untouched.
// Any item or monetary change forces the document to be regenerated;
// a status-only patch leaves the stored artifact alone.
type OrderPatch struct {
	Status             *models.OrderStatus
	Items              []LineItemRequest
	NetRate            *float64
	YouSave            *float64
	PromoDiscount      *float64
	AdditionalDiscount *float64
	Total              *float64
}

// BookingPatch extends OrderPatch with payment and dispatch fields.
type BookingPatch struct {
	OrderPatch
	PaymentMethod *string
	TransactionID *string
	AmountPaid    *float64
	Transport     *TransportRequest
}

type OrderService interface {
	CreateQuotation(ctx context.Context, draft *OrderDraft) (*models.Quotation, error)
	CreateBooking(ctx context.Context, draft *OrderDraft, fromQuotation *string, payment PaymentDetails) (*models.Booking, error)

	GetQuotation(ctx context.Context, quotationID string) (*models.Quotation, []models.LineItem, error)
	GetBooking(ctx context.Context, orderID string) (*models.Booking, []models.LineItem, error)

	UpdateQuotation(ctx context.Context, quotationID string, patch OrderPatch) (*models.Quotation, error)
	UpdateBooking(ctx context.Context, orderID string, patch BookingPatch) (*models.Booking, error)
	UpdateBookingByID(ctx context.Context, id uint, patch BookingPatch) (*models.Booking, error)

	CancelQuotation(ctx context.Context, quotationID string) error
	CancelBooking(ctx context.Context, orderID string) error
	// DeleteBooking removes a booking, its items, its transport history
	// and the quotation it was created from, if any.
	DeleteBooking(ctx context.Context, orderID string) error

	// FetchArtifact returns the stored document bytes, regenerating and
	// re-persisting them from order state if the file has gone missing.
	FetchArtifact(ctx context.Context, kind models.OrderKind, refID string) ([]byte, string, error)

	SearchQuotations(ctx context.Context, customerName, mobileNumber string) ([]models.Quotation, error)
	SearchBookings(ctx context.Context, customerName, mobileNumber string) ([]models.Booking, error)
	ListQuotations(ctx context.Context) ([]models.Quotation, error)
	ListBookings(ctx context.Context, status, customerType string) ([]models.Booking, error)
	ListTracking(ctx context.Context) ([]models.Booking, error)
	TransportHistory(ctx context.Context, orderID string) ([]models.TransportDetail, error)
}

type orderService struct {
	txm        repository.TxManager
	quotations repository.QuotationRepository
	bookings   repository.BookingRepository
	items      repository.LineItemRepository
	transport  repository.TransportRepository
	builder    OrderBuilder
	artifacts  Artifacts
	render     RenderFunc
	notifier   Notifier
	ownerEmail string
	log        zerolog.Logger
}

func NewOrderService(
	txm repository.TxManager,
	quotations repository.QuotationRepository,
	bookings repository.BookingRepository,
	items repository.LineItemRepository,
	transport repository.TransportRepository,
	builder OrderBuilder,
	artifacts Artifacts,
	render RenderFunc,
	notifier Notifier,
	ownerEmail string,
	log zerolog.Logger,
) OrderService {
	return &orderService{
		txm:        txm,
		quotations: quotations,
		bookings:   bookings,
		items:      items,
		transport:  transport,
		builder:    builder,
		artifacts:  artifacts,
		render:     render,
		notifier:   notifier,
		ownerEmail: ownerEmail,
		log:        log,
	}
}

func wrapDB(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: record not found", models.ErrNotFound)
	}
	return fmt.Errorf("%w: %v", models.ErrPersistence, err)
}

func (s *orderService) renderInput(kind models.OrderKind, refID string, party models.PartySnapshot,
	items []models.LineItem, netRate, youSave, promo, additional, total float64, generatedAt time.Time) pdf.Input {
	return pdf.Input{
		Kind:               kind,
		RefID:              refID,
		Party:              party,
		Items:              items,
		NetRate:            netRate,
		YouSave:            youSave,
		PromoDiscount:      promo,
		AdditionalDiscount: additional,
		Total:              total,
		GeneratedAt:        generatedAt,
	}
}

func outboxEntry(channel models.NotifyChannel, recipient string, kind models.OrderKind, ref, event, pdfPath string) models.NotificationOutbox {
	return models.NotificationOutbox{
		ID:        uuid.NewString(),
		Channel:   channel,
		Recipient: recipient,
		OrderKind: kind,
		OrderRef:  ref,
		Event:     event,
		PDFPath:   pdfPath,
		Status:    models.OutboxPending,
	}
}

// documentEntries builds the email fan-out for document events: owner
// first, then the customer when an address is on file.
func (s *orderService) documentEntries(kind models.OrderKind, ref, event string, party models.PartySnapshot, pdfPath string) []models.NotificationOutbox {
	var entries []models.NotificationOutbox
	if s.ownerEmail != "" {
		entries = append(entries, outboxEntry(models.ChannelEmail, s.ownerEmail, kind, ref, event, pdfPath))
	}
	if party.Email != "" {
		entries = append(entries, outboxEntry(models.ChannelEmail, party.Email, kind, ref, event, pdfPath))
	}
	return entries
}

// statusEntries builds the fan-out for booking status changes: customer
// email plus a WhatsApp message when a mobile number is on file.
func (s *orderService) statusEntries(ref string, status models.OrderStatus, party models.PartySnapshot) []models.NotificationOutbox {
	event := "status_" + string(status)
	var entries []models.NotificationOutbox
	if party.Email != "" {
		entries = append(entries, outboxEntry(models.ChannelEmail, party.Email, models.KindBooking, ref, event, ""))
	}
	if party.MobileNumber != "" {
		entries = append(entries, outboxEntry(models.ChannelWhatsApp, party.MobileNumber, models.KindBooking, ref, event, ""))
	}
	return entries
}

func (s *orderService) dispatch(entries []models.NotificationOutbox) {
	if s.notifier == nil || len(entries) == 0 {
		return
	}
	go s.notifier.Dispatch(context.Background(), entries)
}

func (s *orderService) CreateQuotation(ctx context.Context, draft *OrderDraft) (*models.Quotation, error) {
	now := time.Now()
	quotation := &models.Quotation{
		QuotationID:        draft.RefID,
		PartySnapshot:      draft.Party,
		NetRate:            draft.NetRate,
		YouSave:            draft.YouSave,
		PromoDiscount:      draft.PromoDiscount,
		AdditionalDiscount: draft.AdditionalDiscount,
		Total:              draft.Total,
		Status:             models.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	var entries []models.NotificationOutbox
	var written string
	err := s.txm.Do(ctx, func(r repository.Repos) error {
		if _, err := r.Quotations.GetByQuotationID(draft.RefID); err == nil {
			return fmt.Errorf("%w: quotation %s already exists", models.ErrConflict, draft.RefID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return wrapDB(err)
		}

		data, err := s.render(s.renderInput(models.KindQuotation, draft.RefID, draft.Party, draft.Items,
			draft.NetRate, draft.YouSave, draft.PromoDiscount, draft.AdditionalDiscount, draft.Total, now))
		if err != nil {
			return err
		}
		path, err := s.artifacts.Write(s.artifacts.FileName(draft.Party.CustomerName, draft.RefID, models.KindQuotation), data)
		if err != nil {
			return fmt.Errorf("%w: %v", models.ErrRender, err)
		}
		written = path
		quotation.PDFPath = path

		if err := r.Quotations.Create(quotation); err != nil {
			return wrapDB(err)
		}
		if err := r.Items.Replace(models.KindQuotation, draft.RefID, draft.Items); err != nil {
			return wrapDB(err)
		}
		entries = s.documentEntries(models.KindQuotation, draft.RefID, "quotation_created", draft.Party, path)
		return r.Outbox.Enqueue(entries)
	})
	if err != nil {
		s.removeOrphan(written)
		return nil, err
	}
	s.dispatch(entries)
	return quotation, nil
}

func (s *orderService) CreateBooking(ctx context.Context, draft *OrderDraft, fromQuotation *string, payment PaymentDetails) (*models.Booking, error) {
	now := time.Now()
	booking := &models.Booking{
		OrderID:            draft.RefID,
		QuotationID:        fromQuotation,
		PartySnapshot:      draft.Party,
		NetRate:            draft.NetRate,
		YouSave:            draft.YouSave,
		PromoDiscount:      draft.PromoDiscount,
		AdditionalDiscount: draft.AdditionalDiscount,
		Total:              draft.Total,
		Status:             models.StatusBooked,
		PaymentMethod:      payment.Method,
		TransactionID:      payment.TransactionID,
		AmountPaid:         payment.AmountPaid,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	var entries []models.NotificationOutbox
	var written string
	err := s.txm.Do(ctx, func(r repository.Repos) error {
		if _, err := r.Bookings.GetByOrderID(draft.RefID); err == nil {
			return fmt.Errorf("%w: order %s already exists", models.ErrConflict, draft.RefID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return wrapDB(err)
		}

		// Converting a quotation books it in the same transaction, so a
		// failed booking leaves the quotation untouched.
		if fromQuotation != nil {
			quotation, err := r.Quotations.GetByQuotationID(*fromQuotation)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: quotation %s", models.ErrNotFound, *fromQuotation)
				}
				return wrapDB(err)
			}
			if quotation.Status != models.StatusPending {
				return fmt.Errorf("%w: quotation %s is %s, only pending quotations can be booked",
					models.ErrInvalidTransition, *fromQuotation, quotation.Status)
			}
			if err := r.Quotations.Updates(*fromQuotation, map[string]interface{}{"status": models.StatusBooked}); err != nil {
				return wrapDB(err)
			}
		}

		data, err := s.render(s.renderInput(models.KindBooking, draft.RefID, draft.Party, draft.Items,
			draft.NetRate, draft.YouSave, draft.PromoDiscount, draft.AdditionalDiscount, draft.Total, now))
		if err != nil {
			return err
		}
		path, err := s.artifacts.Write(s.artifacts.FileName(draft.Party.CustomerName, draft.RefID, models.KindBooking), data)
		if err != nil {
			return fmt.Errorf("%w: %v", models.ErrRender, err)
		}
		written = path
		booking.PDFPath = path

		if err := r.Bookings.Create(booking); err != nil {
			return wrapDB(err)
		}
		if err := r.Items.Replace(models.KindBooking, draft.RefID, draft.Items); err != nil {
			return wrapDB(err)
		}
		entries = s.documentEntries(models.KindBooking, draft.RefID, "booking_created", draft.Party, path)
		return r.Outbox.Enqueue(entries)
	})
	if err != nil {
		s.removeOrphan(written)
		return nil, err
	}
	s.dispatch(entries)
	return booking, nil
}

func (s *orderService) GetQuotation(ctx context.Context, quotationID string) (*models.Quotation, []models.LineItem, error) {
	quotation, err := s.quotations.GetByQuotationID(quotationID)
	if err != nil {
		return nil, nil, wrapDB(err)
	}
	items, err := s.items.GetForOrder(models.KindQuotation, quotationID)
	if err != nil {
		return nil, nil, wrapDB(err)
	}
	return quotation, items, nil
}

func (s *orderService) GetBooking(ctx context.Context, orderID string) (*models.Booking, []models.LineItem, error) {
	booking, err := s.bookings.GetByOrderID(orderID)
	if err != nil {
		return nil, nil, wrapDB(err)
	}
	items, err := s.items.GetForOrder(models.KindBooking, orderID)
	if err != nil {
		return nil, nil, wrapDB(err)
	}
	return booking, items, nil
}

func applyMonetary(fields map[string]interface{}, column string, target *float64, patch *float64) bool {
	if patch == nil {
		return false
	}
	fields[column] = *patch
	*target = *patch
	return true
}

// validateMonetary re-checks the post-patch monetary fields against the
// same rules the builder applies on create, so an update cannot persist
// values a create would have rejected.
func validateMonetary(netRate, youSave, promo, additional, total float64) error {
	if !finite(netRate, youSave, promo, additional, total) {
		return fmt.Errorf("%w: monetary fields must be finite numbers", models.ErrValidation)
	}
	if netRate < 0 || youSave < 0 || promo < 0 || additional < 0 {
		return fmt.Errorf("%w: monetary fields must be non-negative", models.ErrValidation)
	}
	if total <= 0 {
		return fmt.Errorf("%w: total must be greater than zero", models.ErrValidation)
	}
	return nil
}

func (s *orderService) UpdateQuotation(ctx context.Context, quotationID string, patch OrderPatch) (*models.Quotation, error) {
	var updated *models.Quotation
	var entries []models.NotificationOutbox
	var written string

	err := s.txm.Do(ctx, func(r repository.Repos) error {
		quotation, err := r.Quotations.GetByQuotationID(quotationID)
		if err != nil {
			return wrapDB(err)
		}

		fields := map[string]interface{}{}

		if patch.Status != nil && *patch.Status != quotation.Status {
			next := *patch.Status
			if !models.ValidStatus(models.KindQuotation, next) {
				return fmt.Errorf("%w: invalid status %q", models.ErrValidation, next)
			}
			// A quotation only becomes booked through the booking that
			// references it, never by a direct status patch.
			if next == models.StatusBooked {
				return fmt.Errorf("%w: quotation %s can only be booked by creating a booking that references it",
					models.ErrInvalidTransition, quotationID)
			}
			if !models.CanTransition(models.KindQuotation, quotation.Status, next) {
				return fmt.Errorf("%w: quotation %s cannot move from %s to %s",
					models.ErrInvalidTransition, quotationID, quotation.Status, next)
			}
			fields["status"] = next
		}

		regen := false
		regen = applyMonetary(fields, "net_rate", &quotation.NetRate, patch.NetRate) || regen
		regen = applyMonetary(fields, "you_save", &quotation.YouSave, patch.YouSave) || regen
		regen = applyMonetary(fields, "promo_discount", &quotation.PromoDiscount, patch.PromoDiscount) || regen
		regen = applyMonetary(fields, "additional_discount", &quotation.AdditionalDiscount, patch.AdditionalDiscount) || regen
		regen = applyMonetary(fields, "total", &quotation.Total, patch.Total) || regen
		if regen {
			if err := validateMonetary(quotation.NetRate, quotation.YouSave, quotation.PromoDiscount,
				quotation.AdditionalDiscount, quotation.Total); err != nil {
				return err
			}
		}

		var items []models.LineItem
		if patch.Items != nil {
			items, err = s.builder.BuildItems(ctx, patch.Items)
			if err != nil {
				return err
			}
			if err := r.Items.Replace(models.KindQuotation, quotationID, items); err != nil {
				return wrapDB(err)
			}
			regen = true
		} else if regen {
			items, err = r.Items.GetForOrder(models.KindQuotation, quotationID)
			if err != nil {
				return wrapDB(err)
			}
		}

		if regen {
			data, err := s.render(s.renderInput(models.KindQuotation, quotationID, quotation.PartySnapshot, items,
				quotation.NetRate, quotation.YouSave, quotation.PromoDiscount, quotation.AdditionalDiscount,
				quotation.Total, quotation.CreatedAt))
			if err != nil {
				return err
			}
			path, err := s.artifacts.Write(s.artifacts.FileName(quotation.CustomerName, quotationID, models.KindQuotation), data)
			if err != nil {
				return fmt.Errorf("%w: %v", models.ErrRender, err)
			}
			written = path
			fields["pdf"] = path
			entries = s.documentEntries(models.KindQuotation, quotationID, "quotation_updated", quotation.PartySnapshot, path)
		}

		if len(fields) > 0 {
			if err := r.Quotations.Updates(quotationID, fields); err != nil {
				return wrapDB(err)
			}
		}
		if err := r.Outbox.Enqueue(entries); err != nil {
			return wrapDB(err)
		}

		updated, err = r.Quotations.GetByQuotationID(quotationID)
		if err != nil {
			return wrapDB(err)
		}
		return nil
	})
	if err != nil {
		s.removeOrphan(written)
		return nil, err
	}
	s.dispatch(entries)
	return updated, nil
}

func (s *orderService) UpdateBooking(ctx context.Context, orderID string, patch BookingPatch) (*models.Booking, error) {
	var updated *models.Booking
	var entries []models.NotificationOutbox
	var written string

	err := s.txm.Do(ctx, func(r repository.Repos) error {
		booking, err := r.Bookings.GetByOrderID(orderID)
		if err != nil {
			return wrapDB(err)
		}

		fields := map[string]interface{}{}

		if patch.PaymentMethod != nil {
			fields["payment_method"] = *patch.PaymentMethod
			booking.PaymentMethod = *patch.PaymentMethod
		}
		if patch.TransactionID != nil {
			fields["transaction_id"] = *patch.TransactionID
			booking.TransactionID = *patch.TransactionID
		}
		if patch.AmountPaid != nil {
			fields["amount_paid"] = *patch.AmountPaid
			booking.AmountPaid = *patch.AmountPaid
		}

		if patch.Status != nil && *patch.Status != booking.Status {
			next := *patch.Status
			if !models.ValidStatus(models.KindBooking, next) {
				return fmt.Errorf("%w: invalid status %q", models.ErrValidation, next)
			}
			if !models.CanTransition(models.KindBooking, booking.Status, next) {
				return fmt.Errorf("%w: order %s cannot move from %s to %s",
					models.ErrInvalidTransition, orderID, booking.Status, next)
			}

			switch next {
			case models.StatusPaid:
				if booking.PaymentMethod == "" {
					return fmt.Errorf("%w: a payment method is required to mark order %s paid",
						models.ErrInvalidTransition, orderID)
				}
				if booking.PaymentMethod == models.PaymentMethodBank {
					if strings.TrimSpace(booking.TransactionID) == "" || booking.AmountPaid <= 0 {
						return fmt.Errorf("%w: bank payments need a transaction id and a positive amount paid",
							models.ErrInvalidTransition)
					}
				}
			case models.StatusDispatched:
				if patch.Transport == nil {
					return fmt.Errorf("%w: transport details are required to dispatch order %s",
						models.ErrInvalidTransition, orderID)
				}
				if patch.Transport.TransportName == "" || patch.Transport.LRNumber == "" {
					return fmt.Errorf("%w: transport name and LR number are required", models.ErrValidation)
				}
				if err := r.Transport.Append(&models.TransportDetail{
					OrderID:          orderID,
					TransportName:    patch.Transport.TransportName,
					LRNumber:         patch.Transport.LRNumber,
					TransportContact: patch.Transport.TransportContact,
				}); err != nil {
					return wrapDB(err)
				}
			}

			fields["status"] = next
			entries = append(entries, s.statusEntries(orderID, next, booking.PartySnapshot)...)
		}

		regen := false
		regen = applyMonetary(fields, "net_rate", &booking.NetRate, patch.NetRate) || regen
		regen = applyMonetary(fields, "you_save", &booking.YouSave, patch.YouSave) || regen
		regen = applyMonetary(fields, "promo_discount", &booking.PromoDiscount, patch.PromoDiscount) || regen
		regen = applyMonetary(fields, "additional_discount", &booking.AdditionalDiscount, patch.AdditionalDiscount) || regen
		regen = applyMonetary(fields, "total", &booking.Total, patch.Total) || regen
		if regen {
			if err := validateMonetary(booking.NetRate, booking.YouSave, booking.PromoDiscount,
				booking.AdditionalDiscount, booking.Total); err != nil {
				return err
			}
		}

		var items []models.LineItem
		if patch.Items != nil {
			items, err = s.builder.BuildItems(ctx, patch.Items)
			if err != nil {
				return err
			}
			if err := r.Items.Replace(models.KindBooking, orderID, items); err != nil {
				return wrapDB(err)
			}
			regen = true
		} else if regen {
			items, err = r.Items.GetForOrder(models.KindBooking, orderID)
			if err != nil {
				return wrapDB(err)
			}
		}

		if regen {
			data, err := s.render(s.renderInput(models.KindBooking, orderID, booking.PartySnapshot, items,
				booking.NetRate, booking.YouSave, booking.PromoDiscount, booking.AdditionalDiscount,
				booking.Total, booking.CreatedAt))
			if err != nil {
				return err
			}
			path, err := s.artifacts.Write(s.artifacts.FileName(booking.CustomerName, orderID, models.KindBooking), data)
			if err != nil {
				return fmt.Errorf("%w: %v", models.ErrRender, err)
			}
			written = path
			fields["pdf"] = path
			entries = append(entries, s.documentEntries(models.KindBooking, orderID, "booking_updated", booking.PartySnapshot, path)...)
		}

		if len(fields) > 0 {
			if err := r.Bookings.Updates(orderID, fields); err != nil {
				return wrapDB(err)
			}
		}
		if err := r.Outbox.Enqueue(entries); err != nil {
			return wrapDB(err)
		}

		updated, err = r.Bookings.GetByOrderID(orderID)
		if err != nil {
			return wrapDB(err)
		}
		return nil
	})
	if err != nil {
		s.removeOrphan(written)
		return nil, err
	}
	s.dispatch(entries)
	return updated, nil
}

func (s *orderService) UpdateBookingByID(ctx context.Context, id uint, patch BookingPatch) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, wrapDB(err)
	}
	return s.UpdateBooking(ctx, booking.OrderID, patch)
}

func (s *orderService) CancelQuotation(ctx context.Context, quotationID string) error {
	return s.txm.Do(ctx, func(r repository.Repos) error {
		quotation, err := r.Quotations.GetByQuotationID(quotationID)
		if err != nil {
			return wrapDB(err)
		}
		if !models.CanTransition(models.KindQuotation, quotation.Status, models.StatusCanceled) {
			return fmt.Errorf("%w: quotation %s cannot be canceled from %s",
				models.ErrInvalidTransition, quotationID, quotation.Status)
		}
		if err := r.Quotations.Updates(quotationID, map[string]interface{}{"status": models.StatusCanceled}); err != nil {
			return wrapDB(err)
		}
		return nil
	})
}

func (s *orderService) CancelBooking(ctx context.Context, orderID string) error {
	var entries []models.NotificationOutbox
	err := s.txm.Do(ctx, func(r repository.Repos) error {
		booking, err := r.Bookings.GetByOrderID(orderID)
		if err != nil {
			return wrapDB(err)
		}
		if !models.CanTransition(models.KindBooking, booking.Status, models.StatusCanceled) {
			return fmt.Errorf("%w: order %s cannot be canceled from %s",
				models.ErrInvalidTransition, orderID, booking.Status)
		}
		if err := r.Bookings.Updates(orderID, map[string]interface{}{"status": models.StatusCanceled}); err != nil {
			return wrapDB(err)
		}
		entries = s.statusEntries(orderID, models.StatusCanceled, booking.PartySnapshot)
		return r.Outbox.Enqueue(entries)
	})
	if err != nil {
		return err
	}
	s.dispatch(entries)
	return nil
}

func (s *orderService) DeleteBooking(ctx context.Context, orderID string) error {
	var orphans []string
	err := s.txm.Do(ctx, func(r repository.Repos) error {
		booking, err := r.Bookings.GetByOrderID(orderID)
		if err != nil {
			return wrapDB(err)
		}

		if err := r.Items.DeleteForOrder(models.KindBooking, orderID); err != nil {
			return wrapDB(err)
		}
		if err := r.Transport.DeleteForOrder(orderID); err != nil {
			return wrapDB(err)
		}
		if err := r.Bookings.Delete(orderID); err != nil {
			return wrapDB(err)
		}
		orphans = append(orphans, booking.PDFPath)

		if booking.QuotationID == nil {
			return nil
		}
		quotation, err := r.Quotations.GetByQuotationID(*booking.QuotationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return wrapDB(err)
		}
		if err := r.Items.DeleteForOrder(models.KindQuotation, quotation.QuotationID); err != nil {
			return wrapDB(err)
		}
		if err := r.Quotations.Delete(quotation.QuotationID); err != nil {
			return wrapDB(err)
		}
		orphans = append(orphans, quotation.PDFPath)
		return nil
	})
	if err != nil {
		return err
	}
	for _, path := range orphans {
		s.removeOrphan(path)
	}
	return nil
}

func (s *orderService) FetchArtifact(ctx context.Context, kind models.OrderKind, refID string) ([]byte, string, error) {
	if kind == models.KindQuotation {
		quotation, err := s.quotations.GetByQuotationID(refID)
		if err != nil {
			return nil, "", wrapDB(err)
		}
		if s.artifacts.Exists(quotation.PDFPath) {
			data, err := s.artifacts.Read(quotation.PDFPath)
			if err == nil {
				return data, filepath.Base(quotation.PDFPath), nil
			}
			s.log.Warn().Err(err).Str("quotation_id", refID).Msg("stored artifact unreadable, regenerating")
		}
		return s.regenerate(kind, refID, quotation.PartySnapshot,
			quotation.NetRate, quotation.YouSave, quotation.PromoDiscount, quotation.AdditionalDiscount,
			quotation.Total, quotation.CreatedAt,
			func(path string) error { return s.quotations.SetPDFPath(refID, path) })
	}

	booking, err := s.bookings.GetByOrderID(refID)
	if err != nil {
		return nil, "", wrapDB(err)
	}
	if s.artifacts.Exists(booking.PDFPath) {
		data, err := s.artifacts.Read(booking.PDFPath)
		if err == nil {
			return data, filepath.Base(booking.PDFPath), nil
		}
		s.log.Warn().Err(err).Str("order_id", refID).Msg("stored artifact unreadable, regenerating")
	}
	return s.regenerate(kind, refID, booking.PartySnapshot,
		booking.NetRate, booking.YouSave, booking.PromoDiscount, booking.AdditionalDiscount,
		booking.Total, booking.CreatedAt,
		func(path string) error { return s.bookings.SetPDFPath(refID, path) })
}

// regenerate rebuilds a missing artifact from order state. Rendering
// with the order's creation time reproduces the original bytes, and the
// path is persisted without touching updated_at, so repeated fetches
// are indistinguishable from the file never having gone missing.
func (s *orderService) regenerate(kind models.OrderKind, refID string, party models.PartySnapshot,
	netRate, youSave, promo, additional, total float64, createdAt time.Time,
	persist func(path string) error) ([]byte, string, error) {

	items, err := s.items.GetForOrder(kind, refID)
	if err != nil {
		return nil, "", wrapDB(err)
	}
	data, err := s.render(s.renderInput(kind, refID, party, items, netRate, youSave, promo, additional, total, createdAt))
	if err != nil {
		return nil, "", err
	}
	name := s.artifacts.FileName(party.CustomerName, refID, kind)
	path, err := s.artifacts.Write(name, data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrRender, err)
	}
	if err := persist(path); err != nil {
		return nil, "", wrapDB(err)
	}
	return data, name, nil
}

func (s *orderService) removeOrphan(path string) {
	if path == "" {
		return
	}
	if err := s.artifacts.Remove(path); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to remove orphaned artifact")
	}
}

func (s *orderService) SearchQuotations(ctx context.Context, customerName, mobileNumber string) ([]models.Quotation, error) {
	quotations, err := s.quotations.Search(customerName, mobileNumber)
	if err != nil {
		return nil, wrapDB(err)
	}
	return quotations, nil
}

func (s *orderService) SearchBookings(ctx context.Context, customerName, mobileNumber string) ([]models.Booking, error) {
	bookings, err := s.bookings.Search(customerName, mobileNumber)
	if err != nil {
		return nil, wrapDB(err)
	}
	return bookings, nil
}

func (s *orderService) ListQuotations(ctx context.Context) ([]models.Quotation, error) {
	quotations, err := s.quotations.GetAll()
	if err != nil {
		return nil, wrapDB(err)
	}
	return quotations, nil
}

func (s *orderService) ListBookings(ctx context.Context, status, customerType string) ([]models.Booking, error) {
	bookings, err := s.bookings.List(status, customerType)
	if err != nil {
		return nil, wrapDB(err)
	}
	return bookings, nil
}

func (s *orderService) ListTracking(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookings.ListByStatuses([]models.OrderStatus{
		models.StatusBooked, models.StatusPaid, models.StatusPacked,
		models.StatusDispatched, models.StatusDelivered,
	})
	if err != nil {
		return nil, wrapDB(err)
	}
	return bookings, nil
}

func (s *orderService) TransportHistory(ctx context.Context, orderID string) ([]models.TransportDetail, error) {
	if _, err := s.bookings.GetByOrderID(orderID); err != nil {
		return nil, wrapDB(err)
	}
	details, err := s.transport.ListByOrderID(orderID)
	if err != nil {
		return nil, wrapDB(err)
	}
	return details, nil
}
