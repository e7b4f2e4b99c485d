package port

import (
	"context"
	"encoding/json"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/govalues/decimal"
)

// RedirectTargets are the customer-facing URLs the payment gateway sends the
// buyer to after approving or abandoning the authorization.
type RedirectTargets struct {
	ReturnURL string
	CancelURL string
}

// PaymentOrder is the gateway's escrow order: an approval redirect target and
// the gateway-issued order identifier. Raw keeps the gateway payload for the
// audit record.
type PaymentOrder struct {
	OrderID      string
	ApprovalLink string
	Raw          json.RawMessage
}

type Authorization struct {
	ID  string
	Raw json.RawMessage
}

type Capture struct {
	ID       string
	Amount   decimal.Decimal
	Currency string
	Raw      json.RawMessage
}

// WebhookSignature carries the transmission headers the payment gateway
// attaches to webhook deliveries.
type WebhookSignature struct {
	TransmissionID   string
	TransmissionTime string
	TransmissionSig  string
	CertURL          string
	AuthAlgo         string
}

// PaymentGateway wraps the payment-authorization API. Authorization is a hold
// on funds, capture transfers them, void releases an un-captured hold.
type PaymentGateway interface {
	CreateAuthorizationOrder(ctx context.Context, amount decimal.Decimal, currency string,
		redirects RedirectTargets, shipping domain.ShippingAddress) (*PaymentOrder, error)
	FinalizeAuthorization(ctx context.Context, paymentOrderID string) (*Authorization, error)
	Capture(ctx context.Context, authorizationID string) (*Capture, error)
	Void(ctx context.Context, authorizationID string) error
	VerifyWebhookSignature(ctx context.Context, sig WebhookSignature, event json.RawMessage) (bool, error)
}

type CommerceOrder struct {
	ID     string
	Number string
	Raw    json.RawMessage
}

type Variant struct {
	ID                string
	Price             decimal.Decimal
	AvailableQuantity int
}

// CommerceGateway wraps the storefront order API: the system of record for
// the fulfillment-side sales order and for live variant price/stock data.
type CommerceGateway interface {
	CreateOrder(ctx context.Context, cart domain.Cart, paymentOrderID string) (*CommerceOrder, error)
	CancelOrder(ctx context.Context, commerceOrderID string, reason string) error
	MarkOrderPaid(ctx context.Context, commerceOrderID string, amount decimal.Decimal,
		currency string, captureID string) error
	GetVariant(ctx context.Context, variantID string) (*Variant, error)
}
