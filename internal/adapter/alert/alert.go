// Package alert is the operator-facing channel for conditions that must not
// be absorbed into a normal failure response. Today that is exactly one
// condition: a captured payment whose commerce order could not be updated.
package alert

import (
	"context"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"go.uber.org/zap"
)

type Sink struct {
	logger *zap.Logger
}

func NewSink(log *zap.Logger) *Sink {
	return &Sink{logger: log}
}

func (s *Sink) CriticalInconsistency(ctx context.Context, order *domain.Order, cause error) {
	s.logger.Error("CRITICAL INCONSISTENCY: payment captured, commerce order not updated; manual refund or fulfillment repair required",
		zap.String("severity", "critical"),
		zap.String("order", order.ID),
		zap.String("payment_authorization", order.PaymentAuthorizationID),
		zap.String("commerce_order", order.CommerceOrderID),
		zap.String("commerce_order_number", order.CommerceOrderNumber),
		zap.String("amount", order.Cart.Amount.String()),
		zap.String("currency", order.Cart.Currency),
		zap.Error(cause))
}

var _ port.AlertSink = (*Sink)(nil)
