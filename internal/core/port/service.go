package port

import (
	"context"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
)

type OpenResult struct {
	Order       *domain.Order
	ApprovalURL string
}

type ProcessResult struct {
	Status  domain.OrderStatus
	Message string
}

// CheckoutService drives one checkout attempt through its state machine.
type CheckoutService interface {
	// Open validates the cart, persists a PENDING order and requests a
	// payment authorization order, returning the approval redirect target.
	Open(ctx context.Context, userID string, cart domain.Cart) (*OpenResult, error)

	// FinalizeAuthorization handles the approval callback: confirms the
	// authorization, creates the commerce order and moves the order to
	// AUTHORIZED. Idempotent for already-authorized orders.
	FinalizeAuthorization(ctx context.Context, paymentOrderID string) (*domain.Order, error)

	// Process is the settlement step: stock re-check, capture, commerce
	// mark-paid. Idempotent for already-captured orders.
	Process(ctx context.Context, orderID string) (*ProcessResult, error)

	// Cancel compensates a PENDING or AUTHORIZED order and marks it
	// CANCELLED. Idempotent for already-cancelled orders.
	Cancel(ctx context.Context, paymentOrderID string, reason string) (*domain.Order, error)
}
