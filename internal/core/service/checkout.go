package service

import (
	"context"
	"errors"
	"time"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"github.com/MikeRez0/dropship-checkout/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cancellation reason codes passed to the customer notification.
const (
	ReasonStockUnavailable  = "stock_unavailable"
	ReasonPaymentFailed     = "payment_failed"
	ReasonCustomerCancelled = "customer_cancelled"
)

// CheckoutOrchestrator drives one Order through
// PENDING → AUTHORIZED → CAPTURED, compensating on partial failure. It is
// the exclusive owner of status transitions; every transition goes through
// the repository's compare-and-set primitive, which also rejects duplicate
// webhook/client invocations racing each other.
type CheckoutOrchestrator struct {
	repo      port.OrderRepository
	payments  port.PaymentGateway
	commerce  port.CommerceGateway
	validator *InventoryValidator
	audit     port.AuditSink
	notifier  port.Notifier
	alerts    port.AlertSink
	metrics   *metrics.SagaMetrics
	redirects port.RedirectTargets
	logger    *zap.Logger
}

func NewCheckoutOrchestrator(
	repo port.OrderRepository,
	payments port.PaymentGateway,
	commerce port.CommerceGateway,
	validator *InventoryValidator,
	audit port.AuditSink,
	notifier port.Notifier,
	alerts port.AlertSink,
	sagaMetrics *metrics.SagaMetrics,
	redirects port.RedirectTargets,
	logger *zap.Logger,
) (*CheckoutOrchestrator, error) {
	return &CheckoutOrchestrator{
		repo:      repo,
		payments:  payments,
		commerce:  commerce,
		validator: validator,
		audit:     audit,
		notifier:  notifier,
		alerts:    alerts,
		metrics:   sagaMetrics,
		redirects: redirects,
		logger:    logger,
	}, nil
}

// Open validates the cart and opens the saga. Validation failures surface
// before any row is persisted or any payment call is made. If the payment
// gateway call fails after the row is created, the order stays PENDING and
// is reconcilable by a later explicit cancel.
func (o *CheckoutOrchestrator) Open(ctx context.Context, userID string, cart domain.Cart) (*port.OpenResult, error) {
	validated, err := o.validator.ValidateCart(ctx, cart)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    domain.OrderStatusPending,
		Cart:      validated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	order, err = o.repo.CreateOrder(ctx, order)
	if err != nil {
		o.logger.Error("create order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	paymentOrder, err := o.payments.CreateAuthorizationOrder(o.detach(ctx), validated.Amount,
		validated.Currency, o.redirects, validated.ShippingAddress)
	if err != nil {
		o.logger.Error("create payment authorization order",
			zap.String("order", order.ID), zap.Error(err))
		return nil, err
	}

	if err := o.repo.SetPaymentOrder(ctx, order.ID, paymentOrder.OrderID); err != nil {
		o.logger.Error("persist payment order id",
			zap.String("order", order.ID), zap.Error(err))
		return nil, domain.ErrInternal
	}
	order.PaymentOrderID = paymentOrder.OrderID

	o.metrics.RecordOpened()
	o.logger.Info("checkout opened",
		zap.String("order", order.ID),
		zap.String("payment_order", paymentOrder.OrderID),
		zap.String("amount", validated.Amount.String()))

	return &port.OpenResult{Order: order, ApprovalURL: paymentOrder.ApprovalLink}, nil
}

// FinalizeAuthorization confirms the approved authorization and creates the
// matching commerce order. The order advances to AUTHORIZED only after both
// gateway identifiers are captured; any earlier failure leaves it PENDING
// and recoverable (retry or explicit cancel).
func (o *CheckoutOrchestrator) FinalizeAuthorization(ctx context.Context, paymentOrderID string) (*domain.Order, error) {
	order, err := o.repo.ReadOrderByPaymentOrder(ctx, paymentOrderID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case domain.OrderStatusAuthorized, domain.OrderStatusCaptured:
		// Duplicate callback after the transition already happened.
		return order, nil
	case domain.OrderStatusPending:
	default:
		return nil, domain.ErrOrderStateConflict
	}

	gctx := o.detach(ctx)

	authorization, err := o.payments.FinalizeAuthorization(gctx, paymentOrderID)
	if err != nil {
		o.logger.Error("finalize authorization",
			zap.String("order", order.ID), zap.Error(err))
		return nil, err
	}
	// Persist the authorization id immediately so an explicit cancel can
	// void it even if the commerce call below fails.
	if err := o.repo.SetAuthorization(ctx, order.ID, authorization.ID); err != nil {
		o.logger.Error("persist authorization id",
			zap.String("order", order.ID), zap.Error(err))
		return nil, domain.ErrInternal
	}
	order.PaymentAuthorizationID = authorization.ID

	commerceOrder, err := o.commerce.CreateOrder(gctx, order.Cart, paymentOrderID)
	if err != nil {
		o.logger.Error("create commerce order",
			zap.String("order", order.ID), zap.Error(err))
		return nil, err
	}
	if err := o.repo.SetCommerceOrder(ctx, order.ID, commerceOrder.ID, commerceOrder.Number); err != nil {
		o.logger.Error("persist commerce order ids",
			zap.String("order", order.ID), zap.Error(err))
		return nil, domain.ErrInternal
	}
	order.CommerceOrderID = commerceOrder.ID
	order.CommerceOrderNumber = commerceOrder.Number

	if err := o.repo.TransitionStatus(ctx, order.ID, domain.OrderStatusPending, domain.OrderStatusAuthorized); err != nil {
		if errors.Is(err, domain.ErrOrderStateConflict) {
			// A racing duplicate won; report the stored state.
			return o.repo.ReadOrder(ctx, order.ID)
		}
		return nil, err
	}
	order.Status = domain.OrderStatusAuthorized

	o.writeAudit(ctx, order, authorization.Raw, commerceOrder.Raw)

	o.metrics.RecordAuthorized()
	o.logger.Info("authorization finalized",
		zap.String("order", order.ID),
		zap.String("authorization", authorization.ID),
		zap.String("commerce_order", commerceOrder.Number))

	return order, nil
}

// Process is the settlement step: stock re-check, capture, commerce
// mark-paid, strictly in that sequence. Invoking it twice for an order that
// is already CAPTURED performs zero gateway calls and returns the same
// result.
func (o *CheckoutOrchestrator) Process(ctx context.Context, orderID string) (*port.ProcessResult, error) {
	order, err := o.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case domain.OrderStatusCaptured:
		return &port.ProcessResult{
			Status:  domain.OrderStatusCaptured,
			Message: "payment already captured",
		}, nil
	case domain.OrderStatusAuthorized:
	default:
		return nil, domain.ErrOrderStateConflict
	}

	gctx := o.detach(ctx)

	if err := o.validator.CheckStock(gctx, order.Cart); err != nil {
		o.logger.Warn("stock re-check failed, compensating",
			zap.String("order", order.ID), zap.Error(err))
		o.compensate(gctx, order, ReasonStockUnavailable)
		return nil, domain.ErrOrderCancelled
	}

	capture, err := o.payments.Capture(gctx, order.PaymentAuthorizationID)
	if err != nil {
		o.logger.Error("capture failed, compensating",
			zap.String("order", order.ID), zap.Error(err))
		o.compensate(gctx, order, ReasonPaymentFailed)
		return nil, domain.ErrOrderCancelled
	}

	if err := o.commerce.MarkOrderPaid(gctx, order.CommerceOrderID, capture.Amount,
		capture.Currency, capture.ID); err != nil {
		// Funds already moved. Voiding or cancelling here would be wrong,
		// so the order parks in a distinct terminal state for manual repair.
		if terr := o.repo.TransitionStatus(ctx, order.ID,
			domain.OrderStatusAuthorized, domain.OrderStatusCriticalInconsistency); terr != nil {
			o.logger.Error("transition to critical inconsistency",
				zap.String("order", order.ID), zap.Error(terr))
		}
		o.metrics.RecordCriticalInconsistency()
		o.alerts.CriticalInconsistency(ctx, order, err)
		return nil, domain.ErrCriticalInconsistency
	}

	if err := o.repo.TransitionStatus(ctx, order.ID,
		domain.OrderStatusAuthorized, domain.OrderStatusCaptured); err != nil {
		return nil, err
	}

	o.metrics.RecordCaptured()
	o.logger.Info("payment captured",
		zap.String("order", order.ID),
		zap.String("capture", capture.ID),
		zap.String("amount", capture.Amount.String()))

	return &port.ProcessResult{
		Status:  domain.OrderStatusCaptured,
		Message: "payment captured and commerce order marked paid",
	}, nil
}

// Cancel handles an explicit cancellation of a PENDING or AUTHORIZED order,
// including orders orphaned by an earlier gateway failure.
func (o *CheckoutOrchestrator) Cancel(ctx context.Context, paymentOrderID string, reason string) (*domain.Order, error) {
	order, err := o.repo.ReadOrderByPaymentOrder(ctx, paymentOrderID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case domain.OrderStatusCancelled:
		return order, nil
	case domain.OrderStatusPending, domain.OrderStatusAuthorized:
	default:
		return nil, domain.ErrOrderStateConflict
	}

	o.compensate(o.detach(ctx), order, reason)
	order.Status = domain.OrderStatusCancelled
	return order, nil
}

// writeAudit stores the cross-system snapshot keyed by the commerce order
// number. Best effort: failures are logged and never fail the saga.
func (o *CheckoutOrchestrator) writeAudit(ctx context.Context, order *domain.Order,
	paymentPayload, commercePayload []byte) {
	record := &port.AuditRecord{
		Order:           order,
		PaymentPayload:  paymentPayload,
		CommercePayload: commercePayload,
		RecordedAt:      time.Now().UTC(),
	}
	if err := o.audit.Put(o.detach(ctx), order.CommerceOrderNumber, record); err != nil {
		o.logger.Warn("audit write failed",
			zap.String("order", order.ID),
			zap.String("commerce_order", order.CommerceOrderNumber),
			zap.Error(err))
	}
}

// detach strips caller cancellation so a dispatched gateway call runs to
// completion (or its own timeout) and its outcome is recorded even when the
// client disconnects mid-step.
func (o *CheckoutOrchestrator) detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

var _ port.CheckoutService = (*CheckoutOrchestrator)(nil)
