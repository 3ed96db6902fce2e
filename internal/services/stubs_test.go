package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fwc_backend/internal/models"
	"fwc_backend/internal/repository"

	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the database. The tx manager
// below gives it real commit/rollback semantics: mutations run against
// a clone that only replaces the live store when the callback succeeds.
type memStore struct {
	quotations map[string]models.Quotation
	bookings   map[string]models.Booking
	items      map[string][]models.LineItem
	transport  map[string][]models.TransportDetail
	outbox     []models.NotificationOutbox
	bookingSeq uint
}

func newMemStore() *memStore {
	return &memStore{
		quotations: map[string]models.Quotation{},
		bookings:   map[string]models.Booking{},
		items:      map[string][]models.LineItem{},
		transport:  map[string][]models.TransportDetail{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.bookingSeq = s.bookingSeq
	for k, v := range s.quotations {
		c.quotations[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]models.LineItem(nil), v...)
	}
	for k, v := range s.transport {
		c.transport[k] = append([]models.TransportDetail(nil), v...)
	}
	c.outbox = append([]models.NotificationOutbox(nil), s.outbox...)
	return c
}

func itemKey(kind models.OrderKind, ref string) string {
	return string(kind) + "/" + ref
}

func reposFor(s *memStore) repository.Repos {
	return repository.Repos{
		Quotations: &memQuotations{s: s},
		Bookings:   &memBookings{s: s},
		Items:      &memItems{s: s},
		Transport:  &memTransport{s: s},
		Outbox:     &memOutbox{s: s},
	}
}

type memTx struct {
	s *memStore
}

func (m *memTx) Do(ctx context.Context, fn func(r repository.Repos) error) error {
	trial := m.s.clone()
	if err := fn(reposFor(trial)); err != nil {
		return err
	}
	*m.s = *trial
	return nil
}

type memQuotations struct {
	s *memStore
}

func (r *memQuotations) Create(q *models.Quotation) error {
	if q.ID == 0 {
		q.ID = uint(len(r.s.quotations) + 1)
	}
	r.s.quotations[q.QuotationID] = *q
	return nil
}

func (r *memQuotations) GetByQuotationID(id string) (*models.Quotation, error) {
	q, ok := r.s.quotations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (r *memQuotations) Updates(id string, fields map[string]interface{}) error {
	q, ok := r.s.quotations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range fields {
		switch column {
		case "status":
			q.Status = value.(models.OrderStatus)
		case "net_rate":
			q.NetRate = value.(float64)
		case "you_save":
			q.YouSave = value.(float64)
		case "promo_discount":
			q.PromoDiscount = value.(float64)
		case "additional_discount":
			q.AdditionalDiscount = value.(float64)
		case "total":
			q.Total = value.(float64)
		case "pdf":
			q.PDFPath = value.(string)
		default:
			return fmt.Errorf("unexpected column %q", column)
		}
	}
	q.UpdatedAt = time.Now()
	r.s.quotations[id] = q
	return nil
}

func (r *memQuotations) SetPDFPath(id, path string) error {
	q, ok := r.s.quotations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	q.PDFPath = path
	r.s.quotations[id] = q
	return nil
}

func (r *memQuotations) Delete(id string) error {
	delete(r.s.quotations, id)
	return nil
}

func (r *memQuotations) Search(customerName, mobileNumber string) ([]models.Quotation, error) {
	var out []models.Quotation
	for _, q := range r.s.quotations {
		if strings.Contains(strings.ToLower(q.CustomerName), strings.ToLower(customerName)) &&
			strings.Contains(q.MobileNumber, mobileNumber) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *memQuotations) GetAll() ([]models.Quotation, error) {
	var out []models.Quotation
	for _, q := range r.s.quotations {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuotationID < out[j].QuotationID })
	return out, nil
}

type memBookings struct {
	s *memStore
}

func (r *memBookings) Create(b *models.Booking) error {
	if b.ID == 0 {
		r.s.bookingSeq++
		b.ID = r.s.bookingSeq
	}
	r.s.bookings[b.OrderID] = *b
	return nil
}

func (r *memBookings) GetByOrderID(id string) (*models.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (r *memBookings) GetByID(id uint) (*models.Booking, error) {
	for _, b := range r.s.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memBookings) Updates(id string, fields map[string]interface{}) error {
	b, ok := r.s.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range fields {
		switch column {
		case "status":
			b.Status = value.(models.OrderStatus)
		case "net_rate":
			b.NetRate = value.(float64)
		case "you_save":
			b.YouSave = value.(float64)
		case "promo_discount":
			b.PromoDiscount = value.(float64)
		case "additional_discount":
			b.AdditionalDiscount = value.(float64)
		case "total":
			b.Total = value.(float64)
		case "pdf":
			b.PDFPath = value.(string)
		case "payment_method":
			b.PaymentMethod = value.(string)
		case "transaction_id":
			b.TransactionID = value.(string)
		case "amount_paid":
			b.AmountPaid = value.(float64)
		default:
			return fmt.Errorf("unexpected column %q", column)
		}
	}
	b.UpdatedAt = time.Now()
	r.s.bookings[id] = b
	return nil
}

func (r *memBookings) SetPDFPath(id, path string) error {
	b, ok := r.s.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.PDFPath = path
	r.s.bookings[id] = b
	return nil
}

func (r *memBookings) Delete(id string) error {
	delete(r.s.bookings, id)
	return nil
}

func (r *memBookings) Search(customerName, mobileNumber string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.s.bookings {
		if strings.Contains(strings.ToLower(b.CustomerName), strings.ToLower(customerName)) &&
			strings.Contains(b.MobileNumber, mobileNumber) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookings) List(status, customerType string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.s.bookings {
		if status != "" && string(b.Status) != status {
			continue
		}
		if customerType != "" && b.CustomerType != customerType {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memBookings) ListByStatuses(statuses []models.OrderStatus) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.s.bookings {
		for _, status := range statuses {
			if b.Status == status {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

type memItems struct {
	s *memStore
}

func (r *memItems) Replace(kind models.OrderKind, ref string, items []models.LineItem) error {
	stored := make([]models.LineItem, len(items))
	for i, item := range items {
		item.OrderKind = kind
		item.OrderRef = ref
		item.Position = i
		stored[i] = item
	}
	r.s.items[itemKey(kind, ref)] = stored
	return nil
}

func (r *memItems) GetForOrder(kind models.OrderKind, ref string) ([]models.LineItem, error) {
	return append([]models.LineItem(nil), r.s.items[itemKey(kind, ref)]...), nil
}

func (r *memItems) DeleteForOrder(kind models.OrderKind, ref string) error {
	delete(r.s.items, itemKey(kind, ref))
	return nil
}

type memTransport struct {
	s *memStore
}

func (r *memTransport) Append(detail *models.TransportDetail) error {
	detail.ID = uint(len(r.s.transport[detail.OrderID]) + 1)
	detail.CreatedAt = time.Now()
	r.s.transport[detail.OrderID] = append(r.s.transport[detail.OrderID], *detail)
	return nil
}

func (r *memTransport) ListByOrderID(orderID string) ([]models.TransportDetail, error) {
	return append([]models.TransportDetail(nil), r.s.transport[orderID]...), nil
}

func (r *memTransport) DeleteForOrder(orderID string) error {
	delete(r.s.transport, orderID)
	return nil
}

type memOutbox struct {
	s *memStore
}

func (r *memOutbox) Enqueue(entries []models.NotificationOutbox) error {
	r.s.outbox = append(r.s.outbox, entries...)
	return nil
}

func (r *memOutbox) MarkSent(id string) error {
	for i := range r.s.outbox {
		if r.s.outbox[i].ID == id {
			r.s.outbox[i].Status = models.OutboxSent
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memOutbox) MarkFailed(id string, attempts int, lastError string) error {
	for i := range r.s.outbox {
		if r.s.outbox[i].ID == id {
			r.s.outbox[i].Status = models.OutboxFailed
			r.s.outbox[i].Attempts = attempts
			r.s.outbox[i].LastError = lastError
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memOutbox) ListPending(limit int) ([]models.NotificationOutbox, error) {
	var out []models.NotificationOutbox
	for _, entry := range r.s.outbox {
		if entry.Status == models.OutboxPending {
			out = append(out, entry)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// memCustomers backs the party service in builder tests.
type memCustomers struct {
	customers map[uint]models.Customer
}

func (r *memCustomers) Create(c *models.Customer) error {
	if c.ID == 0 {
		c.ID = uint(len(r.customers) + 1)
	}
	r.customers[c.ID] = *c
	return nil
}

func (r *memCustomers) GetByID(id uint) (*models.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *memCustomers) Update(c *models.Customer) error {
	r.customers[c.ID] = *c
	return nil
}

func (r *memCustomers) Delete(id uint) error {
	delete(r.customers, id)
	return nil
}

func (r *memCustomers) List(customerType string) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range r.customers {
		if customerType == "" || c.CustomerType == customerType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCustomers) Agents() ([]models.Customer, error) {
	return r.List(string(models.TypeAgent))
}

// fakeCatalog is a CatalogService with a fixed entry set.
type fakeCatalog struct {
	entries map[string]map[uint]models.CatalogEntry
}

func (f *fakeCatalog) Lookup(ctx context.Context, category string, id uint) (*models.CatalogEntry, error) {
	entry, ok := f.entries[category][id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d of type %s", models.ErrNotFound, id, category)
	}
	return &entry, nil
}

func (f *fakeCatalog) Categories(ctx context.Context) ([]string, error) {
	var out []string
	for category := range f.entries {
		out = append(out, category)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeCatalog) List(ctx context.Context, category string, onlyAvailable bool) ([]models.CatalogEntry, error) {
	var out []models.CatalogEntry
	for _, entries := range f.entries {
		for _, entry := range entries {
			if category != "" && entry.Category != category {
				continue
			}
			if onlyAvailable && entry.Status != "on" {
				continue
			}
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeCatalog) AddEntry(ctx context.Context, entry *models.CatalogEntry) error {
	if f.entries[entry.Category] == nil {
		f.entries[entry.Category] = map[uint]models.CatalogEntry{}
	}
	f.entries[entry.Category][entry.ID] = *entry
	return nil
}

func (f *fakeCatalog) SetAvailability(ctx context.Context, id uint, available bool) error {
	return nil
}

// memArtifacts is an in-memory Artifacts implementation.
type memArtifacts struct {
	files     map[string][]byte
	failWrite bool
}

func newMemArtifacts() *memArtifacts {
	return &memArtifacts{files: map[string][]byte{}}
}

func (a *memArtifacts) FileName(partyName, refID string, kind models.OrderKind) string {
	docType := "invoice"
	if kind == models.KindQuotation {
		docType = "quotation"
	}
	safe := strings.ToLower(strings.ReplaceAll(partyName, " ", "_"))
	return fmt.Sprintf("%s-%s-%s.pdf", safe, refID, docType)
}

func (a *memArtifacts) Write(name string, data []byte) (string, error) {
	if a.failWrite {
		return "", fmt.Errorf("disk full")
	}
	path := "/pdf/" + name
	a.files[path] = data
	return path, nil
}

func (a *memArtifacts) Read(path string) ([]byte, error) {
	data, ok := a.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return data, nil
}

func (a *memArtifacts) Exists(path string) bool {
	_, ok := a.files[path]
	return ok
}

func (a *memArtifacts) Remove(path string) error {
	delete(a.files, path)
	return nil
}
