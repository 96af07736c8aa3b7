package services

import (
	"context"
	"errors"
	"fmt"

	"constru_backend/internal/logger"
	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// orderTransitions is the order status machine. Delivered and cancelled
// are terminal.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

func orderTransitionAllowed(from, to models.OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// OrderService places and tracks material orders. Stock is reserved at
// placement and returned on cancellation, both inside the same transaction
// as the status write.
type OrderService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateOrderRequest) (*models.Order, error)
	GetByID(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string) (*models.Order, error)
	List(ctx context.Context, db *gorm.DB, userID string, query *dto.OrderListQuery, page, pageSize int) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo    repositories.OrderRepository
	materialRepo repositories.MaterialRepository
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	materialRepo repositories.MaterialRepository,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		materialRepo: materialRepo,
	}
}

func (s *orderService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.ErrEmptyOrder
	}

	var order *models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		items := make([]models.OrderItem, 0, len(req.Items))
		var total float64

		for _, item := range req.Items {
			material, err := s.materialRepo.FindByID(tx, item.MaterialID)
			if err != nil {
				if errors.Is(err, repositories.ErrMaterialNotFound) {
					return apperrors.ErrMaterialNotFound
				}
				return err
			}
			if !material.Active {
				return apperrors.ErrMaterialInactive
			}

			// The material exists, so a zero-row update means the stock
			// guard rejected the delta.
			if err := s.materialRepo.AdjustStock(tx, material.ID, -item.Quantity); err != nil {
				if errors.Is(err, repositories.ErrMaterialNotFound) {
					return apperrors.ErrInsufficientStock
				}
				return err
			}

			subtotal := material.Price * float64(item.Quantity)
			total += subtotal
			items = append(items, models.OrderItem{
				MaterialID: material.ID,
				Quantity:   item.Quantity,
				UnitPrice:  material.Price,
				Subtotal:   subtotal,
			})
		}

		order = &models.Order{
			UserID:          userID,
			Status:          models.OrderStatusPending,
			Total:           total,
			ShippingAddress: req.ShippingAddress,
			Notes:           req.Notes,
			Items:           items,
		}
		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "order placed", "order_id", order.ID, "items", len(order.Items), "total", order.Total)
	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if order.UserID != userID && !isAdmin {
		return nil, apperrors.ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, db *gorm.DB, userID string, query *dto.OrderListQuery, page, pageSize int) ([]models.Order, int64, error) {
	filter := repositories.OrderFilter{
		UserID:   userID,
		Status:   models.OrderStatus(query.Status),
		Page:     page,
		PageSize: pageSize,
	}
	orders, total, err := s.orderRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return orders, total, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string, status models.OrderStatus) (*models.Order, error) {
	order, err := s.GetByID(ctx, db, userID, isAdmin, id)
	if err != nil {
		return nil, err
	}

	// Customers may only cancel their own orders; every other move is an
	// admin operation.
	if !isAdmin && status != models.OrderStatusCancelled {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if !orderTransitionAllowed(order.Status, status) {
		return nil, apperrors.ErrInvalidStatus("orders",
			fmt.Sprintf("Cannot change order from '%s' to '%s'", order.Status, status))
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.UpdateStatus(tx, id, status); err != nil {
			return err
		}
		// Cancellation returns the reserved stock.
		if status == models.OrderStatusCancelled {
			for _, item := range order.Items {
				if err := s.materialRepo.AdjustStock(tx, item.MaterialID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	order.Status = status
	logger.CtxInfo(ctx, "order status changed", "order_id", id, "status", status)
	return order, nil
}
