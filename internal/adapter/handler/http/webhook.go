package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"github.com/MikeRez0/dropship-checkout/internal/core/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Payment gateway event types that drive saga transitions. Everything else
// is acknowledged and ignored.
const (
	eventOrderApproved = "CHECKOUT.ORDER.APPROVED"
	eventOrderDeclined = "PAYMENT.AUTHORIZATION.DENIED"
)

type WebhookHandler struct {
	Handler
	service  port.CheckoutService
	payments port.PaymentGateway
}

func NewWebhookHandler(svc port.CheckoutService, payments port.PaymentGateway, logger *zap.Logger) (*WebhookHandler, error) {
	return &WebhookHandler{
		Handler:  *NewHandler(logger),
		service:  svc,
		payments: payments,
	}, nil
}

// webhookEvent is the gateway's delivery envelope. For order events the
// resource is the checkout order itself; for authorization events the
// resource is the authorization, and the order id it belongs to rides in
// supplementary data.
type webhookEvent struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Resource  struct {
		ID                string `json:"id"`
		SupplementaryData struct {
			RelatedIDs struct {
				OrderID string `json:"order_id"`
			} `json:"related_ids"`
		} `json:"supplementary_data"`
	} `json:"resource"`
}

func (e *webhookEvent) paymentOrderID() string {
	if e.Resource.SupplementaryData.RelatedIDs.OrderID != "" {
		return e.Resource.SupplementaryData.RelatedIDs.OrderID
	}
	return e.Resource.ID
}

// Handle verifies the sender signature with the payment gateway before
// trusting the payload, then drives the matching saga transition. Invalid or
// unverifiable deliveries get a non-2xx so the sender retries; transitions
// that already happened are acknowledged idempotently.
func (wh *WebhookHandler) Handle(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		wh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	defer func() { _ = ctx.Request.Body.Close() }()

	sig := port.WebhookSignature{
		TransmissionID:   ctx.GetHeader("Paypal-Transmission-Id"),
		TransmissionTime: ctx.GetHeader("Paypal-Transmission-Time"),
		TransmissionSig:  ctx.GetHeader("Paypal-Transmission-Sig"),
		CertURL:          ctx.GetHeader("Paypal-Cert-Url"),
		AuthAlgo:         ctx.GetHeader("Paypal-Auth-Algo"),
	}

	verified, err := wh.payments.VerifyWebhookSignature(ctx, sig, body)
	if err != nil {
		wh.logger.Error("webhook verification call failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "verification unavailable"})
		return
	}
	if !verified {
		wh.logger.Warn("rejected webhook with invalid signature",
			zap.String("transmission", sig.TransmissionID))
		wh.handleError(ctx, domain.ErrWebhookNotVerified)
		return
	}

	event := webhookEvent{}
	if err := json.Unmarshal(body, &event); err != nil {
		wh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	switch event.EventType {
	case eventOrderApproved:
		_, err = wh.service.FinalizeAuthorization(ctx, event.Resource.ID)
	case eventOrderDeclined:
		_, err = wh.service.Cancel(ctx, event.paymentOrderID(), service.ReasonPaymentFailed)
	default:
		wh.logger.Debug("ignoring webhook event",
			zap.String("event", event.ID), zap.String("type", event.EventType))
		ctx.Status(http.StatusOK)
		return
	}

	if err != nil {
		// A transition that already happened is a duplicate delivery: ack it
		// so the sender stops retrying.
		if errors.Is(err, domain.ErrOrderStateConflict) {
			ctx.Status(http.StatusOK)
			return
		}
		wh.logger.Error("webhook event processing failed",
			zap.String("event", event.ID), zap.String("type", event.EventType), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "event processing failed"})
		return
	}

	ctx.Status(http.StatusOK)
}
