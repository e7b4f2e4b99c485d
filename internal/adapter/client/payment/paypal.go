// Package payment is the typed adapter over the PayPal-shaped
// payment-authorization REST API: create an order with an AUTHORIZE intent,
// finalize the authorization after buyer approval, capture or void it, and
// verify webhook transmissions.
package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MikeRez0/dropship-checkout/internal/adapter/client/httpx"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/config"
	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

const gatewayName = "payment"

type Client struct {
	logger    *zap.Logger
	baseURL   string
	clientID  string
	secret    string
	webhookID string
	brandName string
	http      *http.Client
	retry     httpx.RetryConfig

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewClient(cfg *config.Payment, log *zap.Logger) (*Client, error) {
	return &Client{
		logger:    log,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		clientID:  cfg.ClientID,
		secret:    cfg.ClientSecret,
		webhookID: cfg.WebhookID,
		brandName: cfg.BrandName,
		http:      &http.Client{Timeout: cfg.Timeout},
		retry:     httpx.DefaultRetryConfig(),
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a cached OAuth2 client-credentials token, refreshing
// it shortly before expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp) {
		return c.token, nil
	}

	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.secret))
	resp, err := httpx.Do(ctx, c.http, c.retry, c.logger, func(ctx context.Context) (*http.Request, error) {
		body := strings.NewReader(url.Values{"grant_type": {"client_credentials"}}.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Basic "+basic)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return "", &domain.GatewayError{Gateway: gatewayName, Op: "token", Retriable: true, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", classify("token", resp)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("error on token response decode: %w", err)
	}

	c.token = token.AccessToken
	c.tokenExp = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - 30*time.Second)
	return c.token, nil
}

type orderLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type orderResponse struct {
	ID    string      `json:"id"`
	Links []orderLink `json:"links"`
}

func (c *Client) CreateAuthorizationOrder(ctx context.Context, amount decimal.Decimal, currency string,
	redirects port.RedirectTargets, shipping domain.ShippingAddress) (*port.PaymentOrder, error) {

	payload := map[string]any{
		"intent": "AUTHORIZE",
		"purchase_units": []map[string]any{{
			"amount": map[string]any{
				"currency_code": currency,
				"value":         amount.String(),
			},
			"shipping": map[string]any{
				"name": map[string]any{
					"full_name": strings.TrimSpace(shipping.FirstName + " " + shipping.LastName),
				},
				"address": map[string]any{
					"address_line_1": shipping.Address1,
					"admin_area_2":   shipping.City,
					"admin_area_1":   shipping.Province,
					"postal_code":    shipping.Zip,
					"country_code":   shipping.CountryCode,
				},
			},
		}},
		"application_context": map[string]any{
			"return_url":          redirects.ReturnURL,
			"cancel_url":          redirects.CancelURL,
			"brand_name":          c.brandName,
			"shipping_preference": "SET_PROVIDED_ADDRESS",
		},
	}

	raw, err := c.post(ctx, "create_order", "/v2/checkout/orders", payload, http.StatusCreated, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var order orderResponse
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("error on order response decode: %w", err)
	}

	approval := ""
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approval = link.Href
			break
		}
	}
	if order.ID == "" || approval == "" {
		return nil, fmt.Errorf("order response misses id or approval link")
	}

	return &port.PaymentOrder{OrderID: order.ID, ApprovalLink: approval, Raw: raw}, nil
}

type authorizeResponse struct {
	PurchaseUnits []struct {
		Payments struct {
			Authorizations []struct {
				ID string `json:"id"`
			} `json:"authorizations"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

func (c *Client) FinalizeAuthorization(ctx context.Context, paymentOrderID string) (*port.Authorization, error) {
	raw, err := c.post(ctx, "authorize",
		"/v2/checkout/orders/"+paymentOrderID+"/authorize", map[string]any{},
		http.StatusCreated, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var authorized authorizeResponse
	if err := json.Unmarshal(raw, &authorized); err != nil {
		return nil, fmt.Errorf("error on authorize response decode: %w", err)
	}
	if len(authorized.PurchaseUnits) == 0 ||
		len(authorized.PurchaseUnits[0].Payments.Authorizations) == 0 {
		return nil, fmt.Errorf("authorize response misses authorization id")
	}

	return &port.Authorization{
		ID:  authorized.PurchaseUnits[0].Payments.Authorizations[0].ID,
		Raw: raw,
	}, nil
}

type captureResponse struct {
	ID     string `json:"id"`
	Amount struct {
		CurrencyCode string `json:"currency_code"`
		Value        string `json:"value"`
	} `json:"amount"`
}

func (c *Client) Capture(ctx context.Context, authorizationID string) (*port.Capture, error) {
	raw, err := c.post(ctx, "capture",
		"/v2/payments/authorizations/"+authorizationID+"/capture", map[string]any{},
		http.StatusCreated, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var captured captureResponse
	if err := json.Unmarshal(raw, &captured); err != nil {
		return nil, fmt.Errorf("error on capture response decode: %w", err)
	}

	amount, err := decimal.Parse(captured.Amount.Value)
	if err != nil {
		return nil, fmt.Errorf("error on capture amount decode: %w", err)
	}

	return &port.Capture{
		ID:       captured.ID,
		Amount:   amount,
		Currency: captured.Amount.CurrencyCode,
		Raw:      raw,
	}, nil
}

func (c *Client) Void(ctx context.Context, authorizationID string) error {
	_, err := c.post(ctx, "void",
		"/v2/payments/authorizations/"+authorizationID+"/void", map[string]any{},
		http.StatusNoContent, http.StatusOK)
	return err
}

type verifyResponse struct {
	VerificationStatus string `json:"verification_status"`
}

// VerifyWebhookSignature asks the gateway to verify the delivery headers
// against the stored webhook id. Transport failures return an error;
// a completed check returns the gateway's verdict.
func (c *Client) VerifyWebhookSignature(ctx context.Context, sig port.WebhookSignature,
	event json.RawMessage) (bool, error) {

	payload := map[string]any{
		"auth_algo":         sig.AuthAlgo,
		"cert_url":          sig.CertURL,
		"transmission_id":   sig.TransmissionID,
		"transmission_sig":  sig.TransmissionSig,
		"transmission_time": sig.TransmissionTime,
		"webhook_id":        c.webhookID,
		"webhook_event":     event,
	}

	raw, err := c.post(ctx, "verify_webhook",
		"/v1/notifications/verify-webhook-signature", payload, http.StatusOK)
	if err != nil {
		return false, err
	}

	var verdict verifyResponse
	if err := json.Unmarshal(raw, &verdict); err != nil {
		return false, fmt.Errorf("error on verification response decode: %w", err)
	}
	return verdict.VerificationStatus == "SUCCESS", nil
}

// post sends an authenticated JSON request and returns the raw body for
// payloads the caller wants to keep (audit records).
func (c *Client) post(ctx context.Context, op, path string, payload any, okStatuses ...int) (json.RawMessage, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := httpx.Do(ctx, c.http, c.retry, c.logger, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
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
	return nil, classify(op, resp)
}

func classify(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &domain.GatewayError{
		Gateway:    gatewayName,
		Op:         op,
		StatusCode: resp.StatusCode,
		Retriable:  resp.StatusCode >= 500,
		Body:       string(body),
	}
}

var _ port.PaymentGateway = (*Client)(nil)
