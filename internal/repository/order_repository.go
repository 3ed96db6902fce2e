package repository

import (
	"fwc_backend/internal/models"

	"gorm.io/gorm"
)

type QuotationRepository interface {
	Create(quotation *models.Quotation) error
	GetByQuotationID(quotationID string) (*models.Quotation, error)
	Updates(quotationID string, fields map[string]interface{}) error
	// SetPDFPath updates the artifact reference without touching
	// updated_at, so lazy regeneration stays invisible to callers.
	SetPDFPath(quotationID, path string) error
	Delete(quotationID string) error
	Search(customerName, mobileNumber string) ([]models.Quotation, error)
	GetAll() ([]models.Quotation, error)
}

type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByOrderID(orderID string) (*models.Booking, error)
	GetByID(id uint) (*models.Booking, error)
	Updates(orderID string, fields map[string]interface{}) error
	SetPDFPath(orderID, path string) error
	Delete(orderID string) error
	Search(customerName, mobileNumber string) ([]models.Booking, error)
	List(status, customerType string) ([]models.Booking, error)
	ListByStatuses(statuses []models.OrderStatus) ([]models.Booking, error)
}

type quotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(quotation *models.Quotation) error {
	return r.db.Create(quotation).Error
}

func (r *quotationRepository) GetByQuotationID(quotationID string) (*models.Quotation, error) {
	var quotation models.Quotation
	err := r.db.Where("quotation_id = ?", quotationID).First(&quotation).Error
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (r *quotationRepository) Updates(quotationID string, fields map[string]interface{}) error {
	return r.db.Model(&models.Quotation{}).Where("quotation_id = ?", quotationID).Updates(fields).Error
}

func (r *quotationRepository) SetPDFPath(quotationID, path string) error {
	return r.db.Model(&models.Quotation{}).Where("quotation_id = ?", quotationID).UpdateColumn("pdf", path).Error
}

func (r *quotationRepository) Delete(quotationID string) error {
	return r.db.Where("quotation_id = ?", quotationID).Delete(&models.Quotation{}).Error
}

func (r *quotationRepository) Search(customerName, mobileNumber string) ([]models.Quotation, error) {
	var quotations []models.Quotation
	err := r.db.
		Where("LOWER(customer_name) LIKE LOWER(?)", "%"+customerName+"%").
		Where("mobile_number LIKE ?", "%"+mobileNumber+"%").
		Order("created_at DESC").
		Find(&quotations).Error
	return quotations, err
}

func (r *quotationRepository) GetAll() ([]models.Quotation, error) {
	var quotations []models.Quotation
	err := r.db.Order("created_at DESC").Find(&quotations).Error
	return quotations, err
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *bookingRepository) GetByOrderID(orderID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Where("order_id = ?", orderID).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Updates(orderID string, fields map[string]interface{}) error {
	return r.db.Model(&models.Booking{}).Where("order_id = ?", orderID).Updates(fields).Error
}

func (r *bookingRepository) SetPDFPath(orderID, path string) error {
	return r.db.Model(&models.Booking{}).Where("order_id = ?", orderID).UpdateColumn("pdf", path).Error
}

func (r *bookingRepository) Delete(orderID string) error {
	return r.db.Where("order_id = ?", orderID).Delete(&models.Booking{}).Error
}

func (r *bookingRepository) Search(customerName, mobileNumber string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Where("LOWER(customer_name) LIKE LOWER(?)", "%"+customerName+"%").
		Where("mobile_number LIKE ?", "%"+mobileNumber+"%").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) List(status, customerType string) ([]models.Booking, error) {
	query := r.db.Model(&models.Booking{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerType != "" {
		query = query.Where("customer_type = ?", customerType)
	}

	var bookings []models.Booking
	err := query.Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListByStatuses(statuses []models.OrderStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("status IN ?", statuses).Find(&bookings).Error
	return bookings, err
}
