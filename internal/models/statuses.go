package models

type UserStatus string
type UserRole string
type OrderStatus string
type InvoiceStatus string
type BudgetStatus string
type ProjectStatus string
type PhaseStatus string
type TaskStatus string
type RecommendationType string
type RecommendationStatus string
type InteractionType string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleCustomer UserRole = "customer"
	UserRoleSupplier UserRole = "supplier"
	UserRoleAdmin    UserRole = "admin"

	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"

	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"

	BudgetStatusDraft    BudgetStatus = "draft"
	BudgetStatusApproved BudgetStatus = "approved"
	BudgetStatusRejected BudgetStatus = "rejected"

	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"

	PhaseStatusPending    PhaseStatus = "pending"
	PhaseStatusInProgress PhaseStatus = "in_progress"
	PhaseStatusDone       PhaseStatus = "done"

	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"

	RecommendationTypeMaterial    RecommendationType = "material"
	RecommendationTypeCategory    RecommendationType = "category"
	RecommendationTypeProjectType RecommendationType = "project_type"
	RecommendationTypeSupplier    RecommendationType = "supplier"

	RecommendationStatusActive    RecommendationStatus = "active"
	RecommendationStatusDismissed RecommendationStatus = "dismissed"
	RecommendationStatusConverted RecommendationStatus = "converted"
	RecommendationStatusExpired   RecommendationStatus = "expired"

	InteractionTypeView    InteractionType = "view"
	InteractionTypeClick   InteractionType = "click"
	InteractionTypeConvert InteractionType = "convert"
	InteractionTypeDismiss InteractionType = "dismiss"
)
