package port

import (
	"context"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
)

// OrderRepository owns persistence of the Order aggregate. It never
// originates business decisions; TransitionStatus is the only mutation path
// for Order.Status and is atomic with the expected-status check.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ReadOrderByPaymentOrder(ctx context.Context, paymentOrderID string) (*domain.Order, error)

	// Set-once identifier writes. Writing a different value over an already
	// assigned identifier returns domain.ErrConflictingData; rewriting the
	// same value is a no-op.
	SetPaymentOrder(ctx context.Context, orderID string, paymentOrderID string) error
	SetAuthorization(ctx context.Context, orderID string, authorizationID string) error
	SetCommerceOrder(ctx context.Context, orderID string, commerceOrderID string, commerceOrderNumber string) error

	// TransitionStatus performs a compare-and-set: the order moves to next
	// only if its current status equals expected. A lost race returns
	// domain.ErrOrderStateConflict.
	TransitionStatus(ctx context.Context, orderID string, expected domain.OrderStatus, next domain.OrderStatus) error
}
