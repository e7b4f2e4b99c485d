// Package commerce is the typed adapter over the Shopify-shaped storefront
// Admin REST API: sales order creation/cancellation, financial-status
// transactions and live variant price/stock lookups.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MikeRez0/dropship-checkout/internal/adapter/client/httpx"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/config"
	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

const gatewayName = "commerce"

type Client struct {
	logger  *zap.Logger
	baseURL string
	token   string
	http    *http.Client
	retry   httpx.RetryConfig
}

func NewClient(cfg *config.Commerce, log *zap.Logger) (*Client, error) {
	return &Client{
		logger:  log,
		baseURL: fmt.Sprintf("https://%s.myshopify.com/admin/api/%s", cfg.StoreName, cfg.APIVersion),
		token:   cfg.AccessToken,
		http:    &http.Client{Timeout: cfg.Timeout},
		retry:   httpx.DefaultRetryConfig(),
	}, nil
}

type orderEnvelope struct {
	Order struct {
		ID          json.Number `json:"id"`
		OrderNumber json.Number `json:"order_number"`
		Name        string      `json:"name"`
	} `json:"order"`
}

func (c *Client) CreateOrder(ctx context.Context, cart domain.Cart, paymentOrderID string) (*port.CommerceOrder, error) {
	lineItems := make([]map[string]any, 0, len(cart.Items))
	for _, item := range cart.Items {
		lineItems = append(lineItems, map[string]any{
			"variant_id": item.VariantID,
			"quantity":   item.Quantity,
			"price":      item.UnitPrice.String(),
		})
	}

	payload := map[string]any{
		"order": map[string]any{
			"line_items":       lineItems,
			"customer":         cart.Customer,
			"shipping_address": cart.ShippingAddress,
			"currency":         cart.Currency,
			"financial_status": "authorized",
			"gateway":          "paypal",
			"transactions": []map[string]any{{
				"kind":          "authorization",
				"status":        "success",
				"gateway":       "paypal",
				"amount":        cart.Amount.String(),
				"currency":      cart.Currency,
				"authorization": paymentOrderID,
			}},
		},
	}

	raw, err := c.request(ctx, "create_order", http.MethodPost, "/orders.json", payload,
		http.StatusCreated, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var envelope orderEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("error on order response decode: %w", err)
	}
	if envelope.Order.ID.String() == "" {
		return nil, fmt.Errorf("order response misses order id")
	}

	number := envelope.Order.Name
	if number == "" {
		number = envelope.Order.OrderNumber.String()
	}

	return &port.CommerceOrder{
		ID:     envelope.Order.ID.String(),
		Number: number,
		Raw:    raw,
	}, nil
}

func (c *Client) CancelOrder(ctx context.Context, commerceOrderID string, reason string) error {
	payload := map[string]any{"reason": cancelReason(reason)}
	_, err := c.request(ctx, "cancel_order", http.MethodPost,
		"/orders/"+commerceOrderID+"/cancel.json", payload, http.StatusOK)
	return err
}

// cancelReason maps internal reason codes onto the fixed vocabulary the
// storefront accepts.
func cancelReason(reason string) string {
	switch reason {
	case "stock_unavailable":
		return "inventory"
	case "payment_failed":
		return "declined"
	case "customer_cancelled":
		return "customer"
	default:
		return "other"
	}
}

func (c *Client) MarkOrderPaid(ctx context.Context, commerceOrderID string, amount decimal.Decimal,
	currency string, captureID string) error {

	payload := map[string]any{
		"transaction": map[string]any{
			"kind":          "capture",
			"status":        "success",
			"amount":        amount.String(),
			"currency":      currency,
			"authorization": captureID,
		},
	}
	_, err := c.request(ctx, "mark_order_paid", http.MethodPost,
		"/orders/"+commerceOrderID+"/transactions.json", payload,
		http.StatusCreated, http.StatusOK)
	return err
}

type variantEnvelope struct {
	Variant struct {
		ID                json.Number `json:"id"`
		Price             string      `json:"price"`
		InventoryQuantity int         `json:"inventory_quantity"`
	} `json:"variant"`
}

func (c *Client) GetVariant(ctx context.Context, variantID string) (*port.Variant, error) {
	raw, err := c.request(ctx, "get_variant", http.MethodGet,
		"/variants/"+variantID+".json", nil, http.StatusOK)
	if err != nil {
		var gwErr *domain.GatewayError
		if errors.As(err, &gwErr) && gwErr.StatusCode == http.StatusNotFound {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	var envelope variantEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("error on variant response decode: %w", err)
	}

	price, err := decimal.Parse(envelope.Variant.Price)
	if err != nil {
		return nil, fmt.Errorf("error on variant price decode: %w", err)
	}

	return &port.Variant{
		ID:                envelope.Variant.ID.String(),
		Price:             price,
		AvailableQuantity: envelope.Variant.InventoryQuantity,
	}, nil
}

func (c *Client) request(ctx context.Context, op, method, path string, payload any, okStatuses ...int) (json.RawMessage, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}

	resp, err := httpx.Do(ctx, c.http, c.retry, c.logger, func(ctx context.Context) (*http.Request, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Shopify-Access-Token", c.token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	})
	if err != nil {
		return nil, &domain.GatewayError{Gateway: gatewayName, Op: op, Retriable: true, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	for _, status := range okStatuses {
		if resp.StatusCode == status {
			raw, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("error reading %s response: %w", op, err)
			}
			return raw, nil
		}
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return nil, &domain.GatewayError{
		Gateway:    gatewayName,
		Op:         op,
		StatusCode: resp.StatusCode,
		Retriable:  resp.StatusCode >= 500,
		Body:       string(raw),
	}
}

var _ port.CommerceGateway = (*Client)(nil)
