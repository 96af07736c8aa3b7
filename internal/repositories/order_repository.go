package repositories

import (
	"errors"

	"constru_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

type OrderFilter struct {
	UserID   string
	Status   models.OrderStatus
	Page     int
	PageSize int
}

type OrderRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Order, error)
	Create(db *gorm.DB, order *models.Order) error
	UpdateStatus(db *gorm.DB, id string, status models.OrderStatus) error
	FindWithFilter(db *gorm.DB, filter OrderFilter) ([]models.Order, int64, error)

	// TopMaterialsForUser aggregates order items within the window,
	// feeding the behavior-pattern analysis.
	TopMaterialsForUser(db *gorm.DB, userID string, days, limit int) ([]MaterialFrequency, error)
}

// MaterialFrequency is one row of the frequent-materials aggregate.
type MaterialFrequency struct {
	MaterialID string `json:"materialId"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
	Count      int64  `json:"count"`
}

type orderRepository struct{}

func NewOrderRepository() OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) FindByID(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").Preload("Items.Material").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(db *gorm.DB, order *models.Order) error {
	return db.Create(order).Error
}

func (r *orderRepository) UpdateStatus(db *gorm.DB, id string, status models.OrderStatus) error {
	result := db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) FindWithFilter(db *gorm.DB, filter OrderFilter) ([]models.Order, int64, error) {
	query := db.Model(&models.Order{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var orders []models.Order
	err := query.Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) TopMaterialsForUser(db *gorm.DB, userID string, days, limit int) ([]MaterialFrequency, error) {
	var rows []MaterialFrequency
	err := db.Raw(`
		SELECT oi.material_id, m.name, m.category_id, COUNT(*) AS count
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN materials m ON m.id = oi.material_id
		WHERE o.user_id = ?
		  AND o.status <> 'cancelled'
		  AND o.created_at > NOW() - make_interval(days => ?)
		GROUP BY oi.material_id, m.name, m.category_id
		ORDER BY count DESC
		LIMIT ?
	`, userID, days, limit).Scan(&rows).Error
	return rows, err
}
