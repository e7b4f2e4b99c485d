package http

import (
	"fmt"
	"net/http"

	"github.com/MikeRez0/dropship-checkout/internal/adapter/config"
	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"github.com/MikeRez0/dropship-checkout/internal/core/service"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	Handler
	service  port.CheckoutService
	frontend *config.HTTP
}

func NewCheckoutHandler(svc port.CheckoutService, conf *config.HTTP, logger *zap.Logger) (*CheckoutHandler, error) {
	return &CheckoutHandler{
		Handler:  *NewHandler(logger),
		service:  svc,
		frontend: conf,
	}, nil
}

type lineItemRequest struct {
	VariantID string  `json:"variant_id" binding:"required"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
}

type checkoutRequest struct {
	UserID          string                 `json:"user_id" binding:"required"`
	Currency        string                 `json:"currency" binding:"required,len=3"`
	LineItems       []lineItemRequest      `json:"line_items" binding:"required,min=1,dive"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address" binding:"required"`
	Customer        domain.Customer        `json:"customer"`
}

type checkoutResponse struct {
	OrderID     string `json:"order_id"`
	ApprovalURL string `json:"approval_url"`
}

// CreateCheckout handles POST /api/checkout: cart revalidation, PENDING
// order creation and the payment authorization order. The client total is
// never trusted; the amount is recomputed server-side.
func (ch *CheckoutHandler) CreateCheckout(ctx *gin.Context) {
	req := checkoutRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	cart, err := cartFromRequest(&req)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	result, err := ch.service.Open(ctx, req.UserID, cart)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, checkoutResponse{
		OrderID:     result.Order.ID,
		ApprovalURL: result.ApprovalURL,
	})
}

// Return handles the buyer coming back from the payment gateway approval
// page: GET /api/checkout/return?token=<payment_order_id>.
func (ch *CheckoutHandler) Return(ctx *gin.Context) {
	paymentOrderID := ctx.Query("token")
	if paymentOrderID == "" {
		ch.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := ch.service.FinalizeAuthorization(ctx, paymentOrderID)
	if err != nil {
		ch.logger.Error("finalize on return redirect", zap.Error(err))
		ctx.Redirect(http.StatusFound, ch.frontend.FrontendFailureURL)
		return
	}

	ctx.Redirect(http.StatusFound, fmt.Sprintf("%s/%s", ch.frontend.FrontendSuccessURL, order.ID))
}

// Cancel handles the buyer abandoning payment:
// GET /api/checkout/cancel?token=<payment_order_id>.
func (ch *CheckoutHandler) Cancel(ctx *gin.Context) {
	paymentOrderID := ctx.Query("token")
	if paymentOrderID != "" {
		if _, err := ch.service.Cancel(ctx, paymentOrderID, service.ReasonCustomerCancelled); err != nil {
			ch.logger.Error("cancel on redirect", zap.Error(err))
		}
	}

	ctx.Redirect(http.StatusFound, ch.frontend.FrontendCancelURL)
}

type processResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Process handles POST /api/orders/:id/process, the operator-triggered
// settlement step.
func (ch *CheckoutHandler) Process(ctx *gin.Context) {
	orderID := ctx.Param("id")

	result, err := ch.service.Process(ctx, orderID)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, processResponse{
		Status:  string(result.Status),
		Message: result.Message,
	})
}

func cartFromRequest(req *checkoutRequest) (domain.Cart, error) {
	items := make([]domain.LineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		price, err := decimal.NewFromFloat64(item.UnitPrice)
		if err != nil {
			return domain.Cart{}, domain.ErrBadRequest
		}
		items = append(items, domain.LineItem{
			VariantID: item.VariantID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}

	return domain.Cart{
		Items:           items,
		Currency:        req.Currency,
		ShippingAddress: req.ShippingAddress,
		Customer:        req.Customer,
	}, nil
}
