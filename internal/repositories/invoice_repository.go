package repositories

import (
	"errors"
	"fmt"
	"time"

	"constru_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
)

type InvoiceRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Invoice, error)
	FindByOrderID(db *gorm.DB, orderID string) (*models.Invoice, error)
	Create(db *gorm.DB, invoice *models.Invoice) error
	UpdateStatus(db *gorm.DB, id string, status models.InvoiceStatus) error
	MarkPaid(db *gorm.DB, id string, paidAt time.Time) error
	FindByUserID(db *gorm.DB, userID string, page, pageSize int) ([]models.Invoice, int64, error)
	NextNumber(db *gorm.DB) (string, error)
}

type invoiceRepository struct{}

func NewInvoiceRepository() InvoiceRepository {
	return &invoiceRepository{}
}

func (r *invoiceRepository) FindByID(db *gorm.DB, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := db.Preload("Order").Preload("Order.Items").First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByOrderID(db *gorm.DB, orderID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := db.First(&invoice, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) Create(db *gorm.DB, invoice *models.Invoice) error {
	return db.Create(invoice).Error
}

func (r *invoiceRepository) UpdateStatus(db *gorm.DB, id string, status models.InvoiceStatus) error {
	result := db.Model(&models.Invoice{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepository) MarkPaid(db *gorm.DB, id string, paidAt time.Time) error {
	result := db.Model(&models.Invoice{}).
		Where("id = ? AND status = ?", id, models.InvoiceStatusIssued).
		Updates(map[string]interface{}{
			"status":  models.InvoiceStatusPaid,
			"paid_at": paidAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepository) FindByUserID(db *gorm.DB, userID string, page, pageSize int) ([]models.Invoice, int64, error) {
	query := db.Model(&models.Invoice{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var invoices []models.Invoice
	err := query.Order("created_at DESC").Find(&invoices).Error
	return invoices, total, err
}

// NextNumber builds a sequential invoice number per year, e.g. INV-2026-000042.
func (r *invoiceRepository) NextNumber(db *gorm.DB) (string, error) {
	year := time.Now().Year()

	var count int64
	err := db.Model(&models.Invoice{}).
		Where("number LIKE ?", fmt.Sprintf("INV-%d-%%", year)).
		Count(&count).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("INV-%d-%06d", year, count+1), nil
}
