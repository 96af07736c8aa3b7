package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"constru_backend/internal/email"
	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeInvoiceRepo struct {
	repositories.InvoiceRepository

	byID      map[string]*models.Invoice
	byOrder   map[string]*models.Invoice
	createErr error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		byID:    map[string]*models.Invoice{},
		byOrder: map[string]*models.Invoice{},
	}
}

func (f *fakeInvoiceRepo) FindByID(db *gorm.DB, id string) (*models.Invoice, error) {
	if invoice, ok := f.byID[id]; ok {
		return invoice, nil
	}
	return nil, repositories.ErrInvoiceNotFound
}

func (f *fakeInvoiceRepo) FindByOrderID(db *gorm.DB, orderID string) (*models.Invoice, error) {
	if invoice, ok := f.byOrder[orderID]; ok {
		return invoice, nil
	}
	return nil, repositories.ErrInvoiceNotFound
}

func (f *fakeInvoiceRepo) Create(db *gorm.DB, invoice *models.Invoice) error {
	if f.createErr != nil {
		return f.createErr
	}
	if invoice.ID == "" {
		invoice.ID = "inv-" + invoice.OrderID
	}
	f.byID[invoice.ID] = invoice
	f.byOrder[invoice.OrderID] = invoice
	return nil
}

func (f *fakeInvoiceRepo) NextNumber(db *gorm.DB) (string, error) {
	return fmt.Sprintf("INV-%d-%06d", time.Now().Year(), len(f.byID)+1), nil
}

func (f *fakeInvoiceRepo) MarkPaid(db *gorm.DB, id string, paidAt time.Time) error {
	invoice, ok := f.byID[id]
	if !ok || invoice.Status != models.InvoiceStatusIssued {
		return repositories.ErrInvoiceNotFound
	}
	invoice.Status = models.InvoiceStatusPaid
	invoice.PaidAt = &paidAt
	return nil
}

func (f *fakeInvoiceRepo) UpdateStatus(db *gorm.DB, id string, status models.InvoiceStatus) error {
	invoice, ok := f.byID[id]
	if !ok {
		return repositories.ErrInvoiceNotFound
	}
	invoice.Status = status
	return nil
}

type fakeInvoiceOrderRepo struct {
	repositories.OrderRepository

	orders map[string]*models.Order
}

func (f *fakeInvoiceOrderRepo) FindByID(db *gorm.DB, id string) (*models.Order, error) {
	if order, ok := f.orders[id]; ok {
		return order, nil
	}
	return nil, repositories.ErrOrderNotFound
}

func newInvoiceFixture(t *testing.T) (InvoiceService, *fakeInvoiceRepo, *fakeInvoiceOrderRepo) {
	t.Helper()
	setServiceTestConfig(t)

	invoices := newFakeInvoiceRepo()
	orders := &fakeInvoiceOrderRepo{orders: map[string]*models.Order{}}
	users := newFakeUserRepo()
	svc := NewInvoiceService(invoices, orders, users, email.NoopProvider{})
	return svc, invoices, orders
}

func confirmedOrder(orders *fakeInvoiceOrderRepo, id, userID string, total float64) *models.Order {
	order := &models.Order{
		UserID: userID,
		Status: models.OrderStatusConfirmed,
		Total:  total,
	}
	order.ID = id
	orders.orders[id] = order
	return order
}

func TestIssueInvoice(t *testing.T) {
	svc, invoices, orders := newInvoiceFixture(t)
	order := confirmedOrder(orders, "o1", "u1", 250)
	issuer := svc.(*invoiceService)

	invoice, err := issuer.issueTx(nil, order, 0.2)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("INV-%d-000001", time.Now().Year()), invoice.Number)
	assert.Equal(t, models.InvoiceStatusIssued, invoice.Status)
	assert.Equal(t, 250.0, invoice.Amount)
	assert.InDelta(t, 50.0, invoice.TaxAmount, 1e-9)
	require.NotNil(t, invoice.IssuedAt)
	assert.Equal(t, invoice, invoices.byOrder["o1"])
}

func TestIssueInvoiceTwiceConflicts(t *testing.T) {
	svc, _, orders := newInvoiceFixture(t)
	order := confirmedOrder(orders, "o1", "u1", 100)
	issuer := svc.(*invoiceService)

	_, err := issuer.issueTx(nil, order, 0)
	require.NoError(t, err)

	_, err = issuer.issueTx(nil, order, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvoiceAlreadyIssued)
}

func TestIssueInvoiceDuplicateKeyIsConflict(t *testing.T) {
	svc, invoices, orders := newInvoiceFixture(t)
	order := confirmedOrder(orders, "o1", "u1", 100)
	issuer := svc.(*invoiceService)

	// A racer committed between the duplicate check and the insert: the
	// unique index rejects the insert and the caller sees the same
	// conflict as the check itself.
	invoices.createErr = gorm.ErrDuplicatedKey
	_, err := issuer.issueTx(nil, order, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvoiceAlreadyIssued)
}

func TestIssueInvoiceGuards(t *testing.T) {
	svc, _, orders := newInvoiceFixture(t)

	pending := confirmedOrder(orders, "o-pending", "u1", 100)
	pending.Status = models.OrderStatusPending
	confirmedOrder(orders, "o-foreign", "someone-else", 100)

	// Pending orders cannot be invoiced.
	_, err := svc.Issue(context.Background(), nil, "u1", false, &dto.IssueInvoiceRequest{OrderID: "o-pending"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)

	// Foreign orders look missing to non-admins.
	_, err = svc.Issue(context.Background(), nil, "u1", false, &dto.IssueInvoiceRequest{OrderID: "o-foreign"})
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)

	_, err = svc.Issue(context.Background(), nil, "u1", false, &dto.IssueInvoiceRequest{OrderID: "o-missing"})
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
}

func TestMarkPaidOnlyIssued(t *testing.T) {
	svc, invoices, orders := newInvoiceFixture(t)
	order := confirmedOrder(orders, "o1", "u1", 100)
	issuer := svc.(*invoiceService)

	invoice, err := issuer.issueTx(nil, order, 0)
	require.NoError(t, err)

	paid, err := svc.MarkPaid(context.Background(), nil, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paid.Status)

	// Paying twice is a status conflict, not a 500.
	_, err = svc.MarkPaid(context.Background(), nil, invoice.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
	assert.Equal(t, models.InvoiceStatusPaid, invoices.byID[invoice.ID].Status)
}

func TestVoidPaidInvoiceRefused(t *testing.T) {
	svc, _, orders := newInvoiceFixture(t)
	order := confirmedOrder(orders, "o1", "u1", 100)
	issuer := svc.(*invoiceService)

	invoice, err := issuer.issueTx(nil, order, 0)
	require.NoError(t, err)

	_, err = svc.MarkPaid(context.Background(), nil, invoice.ID)
	require.NoError(t, err)

	err = svc.Void(context.Background(), nil, invoice.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}
