package services

import (
	"testing"

	"constru_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusShipped, false},
		{models.OrderStatusPending, models.OrderStatusDelivered, false},
		{models.OrderStatusConfirmed, models.OrderStatusShipped, true},
		{models.OrderStatusConfirmed, models.OrderStatusCancelled, true},
		{models.OrderStatusConfirmed, models.OrderStatusPending, false},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
		{models.OrderStatusPending, models.OrderStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, orderTransitionAllowed(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestBudgetTransitions(t *testing.T) {
	cases := []struct {
		from, to models.BudgetStatus
		ok       bool
	}{
		{models.BudgetStatusDraft, models.BudgetStatusApproved, true},
		{models.BudgetStatusDraft, models.BudgetStatusRejected, true},
		{models.BudgetStatusRejected, models.BudgetStatusDraft, true},
		{models.BudgetStatusApproved, models.BudgetStatusDraft, false},
		{models.BudgetStatusApproved, models.BudgetStatusRejected, false},
		{models.BudgetStatusRejected, models.BudgetStatusApproved, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, budgetTransitionAllowed(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
