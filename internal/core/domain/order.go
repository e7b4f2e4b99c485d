package domain

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusAuthorized OrderStatus = "AUTHORIZED"
	OrderStatusCaptured   OrderStatus = "CAPTURED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	// OrderStatusCriticalInconsistency marks an order whose payment was
	// captured but whose commerce order could not be marked paid. Money has
	// moved, so the order must never be cancelled automatically; resolution
	// is a manual refund/repair workflow.
	OrderStatusCriticalInconsistency OrderStatus = "CRITICAL_INCONSISTENCY"
)

// legalTransitions is the complete set of allowed status edges.
// Everything else is rejected, including any edge back to PENDING.
var legalTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusAuthorized, OrderStatusCancelled},
	OrderStatusAuthorized: {OrderStatusCaptured, OrderStatusCancelled, OrderStatusCriticalInconsistency},
	OrderStatusCaptured:   {OrderStatusCriticalInconsistency},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no automated transition may leave this status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusCriticalInconsistency
}

// Order is the aggregate root of one checkout attempt. The cart snapshot is
// immutable after validation; gateway identifiers are set exactly once.
type Order struct {
	ID     string
	UserID string
	Status OrderStatus
	Cart   Cart

	PaymentOrderID         string
	PaymentAuthorizationID string
	CommerceOrderID        string
	CommerceOrderNumber    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
