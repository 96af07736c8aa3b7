package services

import (
	"context"
	"errors"
	"time"

	"constru_backend/internal/email"
	"constru_backend/internal/logger"
	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// InvoiceService issues and settles invoices. One invoice per order.
type InvoiceService interface {
	Issue(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, req *dto.IssueInvoiceRequest) (*models.Invoice, error)
	GetByID(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string) (*models.Invoice, error)
	List(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) ([]models.Invoice, int64, error)
	MarkPaid(ctx context.Context, db *gorm.DB, id string) (*models.Invoice, error)
	Void(ctx context.Context, db *gorm.DB, id string) error
}

type invoiceService struct {
	invoiceRepo repositories.InvoiceRepository
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
	mail        email.Provider
}

func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepository,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	mail email.Provider,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		mail:        mail,
	}
}

func (s *invoiceService) Issue(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, req *dto.IssueInvoiceRequest) (*models.Invoice, error) {
	order, err := s.orderRepo.FindByID(db, req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if order.UserID != userID && !isAdmin {
		return nil, apperrors.ErrOrderNotFound
	}

	if order.Status == models.OrderStatusPending || order.Status == models.OrderStatusCancelled {
		return nil, apperrors.ErrInvalidOperation("invoices",
			"Invoices can only be issued for confirmed orders")
	}

	// Duplicate check, number generation and insert share one transaction
	// so two concurrent issuances cannot both pass the check.
	var invoice *models.Invoice
	err = db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		invoice, txErr = s.issueTx(tx, order, req.TaxRate)
		return txErr
	})
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	// Notify the customer in the background.
	if user, err := s.userRepo.FindByID(db, order.UserID); err == nil {
		go func(to, number string, amount float64) {
			if err := s.mail.SendInvoiceIssued(to, number, amount); err != nil {
				logger.Error("failed to send invoice email", "invoice", number, "error", err.Error())
			}
		}(user.Email, invoice.Number, invoice.Amount+invoice.TaxAmount)
	}

	logger.CtxInfo(ctx, "invoice issued", "invoice_id", invoice.ID, "number", invoice.Number)
	return invoice, nil
}

// issueTx is the transaction body of Issue: one invoice per order and a
// fresh sequential number, checked and written atomically. A racer that
// committed first is reported as the same conflict the duplicate check
// raises, via the translated unique-violation error.
func (s *invoiceService) issueTx(tx *gorm.DB, order *models.Order, taxRate float64) (*models.Invoice, error) {
	if _, err := s.invoiceRepo.FindByOrderID(tx, order.ID); err == nil {
		return nil, apperrors.ErrInvoiceAlreadyIssued
	} else if !errors.Is(err, repositories.ErrInvoiceNotFound) {
		return nil, err
	}

	number, err := s.invoiceRepo.NextNumber(tx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoice := &models.Invoice{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Number:    number,
		Amount:    order.Total,
		TaxAmount: order.Total * taxRate,
		Status:    models.InvoiceStatusIssued,
		IssuedAt:  &now,
	}
	if err := s.invoiceRepo.Create(tx, invoice); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrInvoiceAlreadyIssued
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) GetByID(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return nil, apperrors.ErrInvoiceNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if invoice.UserID != userID && !isAdmin {
		return nil, apperrors.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *invoiceService) List(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) ([]models.Invoice, int64, error) {
	invoices, total, err := s.invoiceRepo.FindByUserID(db, userID, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return invoices, total, nil
}

// MarkPaid settles an issued invoice. Paying a draft, paid or void invoice
// is a status conflict.
func (s *invoiceService) MarkPaid(ctx context.Context, db *gorm.DB, id string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return nil, apperrors.ErrInvoiceNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.invoiceRepo.MarkPaid(db, id, time.Now()); err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			// The row exists, so the guarded update refused the status.
			return nil, apperrors.ErrInvalidStatus("invoices",
				"Only issued invoices can be marked paid")
		}
		return nil, apperrors.InternalError(err)
	}

	invoice.Status = models.InvoiceStatusPaid
	logger.CtxInfo(ctx, "invoice paid", "invoice_id", id)
	return invoice, nil
}

func (s *invoiceService) Void(ctx context.Context, db *gorm.DB, id string) error {
	invoice, err := s.invoiceRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return apperrors.ErrInvoiceNotFound
		}
		return apperrors.InternalError(err)
	}

	if invoice.Status == models.InvoiceStatusPaid {
		return apperrors.ErrInvalidStatus("invoices", "Paid invoices cannot be voided")
	}

	if err := s.invoiceRepo.UpdateStatus(db, id, models.InvoiceStatusVoid); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "invoice voided", "invoice_id", id)
	return nil
}
