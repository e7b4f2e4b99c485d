package service

import (
	"context"
	"fmt"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"go.uber.org/zap"
)

// compensationStep is one corrective action reversing an already-succeeded
// saga step. Steps run in order inside isolated error boundaries: one step
// failing (or panicking) never skips the rest.
type compensationStep struct {
	name string
	skip bool
	run  func(context.Context) error
}

// compensate unwinds a PENDING or AUTHORIZED order: void the payment
// authorization if one exists, cancel the commerce order if one exists, mark
// the order CANCELLED, notify the customer. Sub-step failures are aggregated
// into a single logged report and never re-raised to the caller.
func (o *CheckoutOrchestrator) compensate(ctx context.Context, order *domain.Order, reason string) {
	expected := order.Status

	steps := []compensationStep{
		{
			name: "void_authorization",
			skip: order.PaymentAuthorizationID == "",
			run: func(ctx context.Context) error {
				return o.payments.Void(ctx, order.PaymentAuthorizationID)
			},
		},
		{
			name: "cancel_commerce_order",
			skip: order.CommerceOrderID == "",
			run: func(ctx context.Context) error {
				return o.commerce.CancelOrder(ctx, order.CommerceOrderID, reason)
			},
		},
		{
			name: "mark_cancelled",
			run: func(ctx context.Context) error {
				return o.repo.TransitionStatus(ctx, order.ID, expected, domain.OrderStatusCancelled)
			},
		},
		{
			name: "notify_customer",
			run: func(ctx context.Context) error {
				return o.notifier.NotifyCancellation(ctx, order, reason)
			},
		},
	}

	failures := make([]error, 0)
	for _, step := range steps {
		if step.skip {
			continue
		}
		if err := runIsolated(ctx, step); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", step.name, err))
		}
	}

	if len(failures) > 0 {
		o.logger.Error("compensation finished with failures",
			zap.String("order", order.ID),
			zap.String("reason", reason),
			zap.Errors("failures", failures))
	} else {
		o.logger.Info("compensation finished",
			zap.String("order", order.ID),
			zap.String("reason", reason))
	}

	o.metrics.RecordCancelled()
}

func runIsolated(ctx context.Context, step compensationStep) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return step.run(ctx)
}
