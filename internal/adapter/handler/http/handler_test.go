package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MikeRez0/dropship-checkout/internal/adapter/config"
	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"github.com/MikeRez0/dropship-checkout/internal/core/port/mock"
	"github.com/MikeRez0/dropship-checkout/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type routerMocks struct {
	service  *mock.MockCheckoutService
	payments *mock.MockPaymentGateway
	tokens   *mock.MockTokenService
}

func newTestRouter(t *testing.T, mockCtrl *gomock.Controller) (*Router, *routerMocks) {
	t.Helper()
	mocks := &routerMocks{
		service:  mock.NewMockCheckoutService(mockCtrl),
		payments: mock.NewMockPaymentGateway(mockCtrl),
		tokens:   mock.NewMockTokenService(mockCtrl),
	}

	conf := &config.HTTP{
		FrontendSuccessURL: "https://shop.example/thanks",
		FrontendFailureURL: "https://shop.example/oops",
		FrontendCancelURL:  "https://shop.example/cart",
	}

	logger := zap.NewNop()
	checkoutHandler, err := NewCheckoutHandler(mocks.service, conf, logger)
	require.NoError(t, err)
	webhookHandler, err := NewWebhookHandler(mocks.service, mocks.payments, logger)
	require.NoError(t, err)

	router, err := NewRouter(conf, mocks.tokens, checkoutHandler, webhookHandler,
		metrics.NewSagaMetrics().Handler(), nil, logger)
	require.NoError(t, err)
	return router, mocks
}

func checkoutBody() []byte {
	return []byte(`{
		"user_id": "user-1",
		"currency": "USD",
		"line_items": [
			{"variant_id": "V1", "title": "Widget", "quantity": 2, "unit_price": 9.99}
		],
		"shipping_address": {
			"first_name": "Ada", "last_name": "Lovelace",
			"address1": "1 Main St", "city": "London",
			"province": "", "zip": "E1 6AN", "country": "GB"
		},
		"customer": {"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com"}
	}`)
}

func TestCreateCheckout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("valid cart returns order id and approval url", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.service.EXPECT().Open(gomock.Any(), "user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, cart domain.Cart) (*port.OpenResult, error) {
				assert.Equal(t, "USD", cart.Currency)
				require.Len(t, cart.Items, 1)
				assert.Equal(t, "V1", cart.Items[0].VariantID)
				return &port.OpenResult{
					Order:       &domain.Order{ID: "ord-1", Status: domain.OrderStatusPending},
					ApprovalURL: "https://gateway/approve/PAY-1",
				}, nil
			})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(checkoutBody()))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := checkoutResponse{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ord-1", resp.OrderID)
		assert.Equal(t, "https://gateway/approve/PAY-1", resp.ApprovalURL)
	})

	t.Run("catalog issues are itemized with status 400", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.service.EXPECT().Open(gomock.Any(), "user-1", gomock.Any()).
			Return(nil, &domain.CatalogError{Issues: []domain.ItemIssue{
				{VariantID: "V1", Reason: "item V1: requested 2 but only 1 available"},
			}})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(checkoutBody()))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := issuesResponse{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"item V1: requested 2 but only 1 available"}, resp.Errors)
	})

	t.Run("malformed body is rejected before the service is called", func(t *testing.T) {
		router, _ := newTestRouter(t, mockCtrl)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout",
			bytes.NewReader([]byte(`{"user_id": "user-1"}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("gateway failure maps to a generic 500", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.service.EXPECT().Open(gomock.Any(), "user-1", gomock.Any()).
			Return(nil, &domain.GatewayError{Gateway: "payment", Op: "create order", StatusCode: 503})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(checkoutBody()))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := errorResponse{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "checkout failed", resp.Error)
	})
}

func TestReturnRedirect(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("successful finalize redirects to the success page", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.service.EXPECT().FinalizeAuthorization(gomock.Any(), "PAY-1").
			Return(&domain.Order{ID: "ord-1", Status: domain.OrderStatusAuthorized}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/checkout/return?token=PAY-1", nil)
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://shop.example/thanks/ord-1", rec.Header().Get("Location"))
	})

	t.Run("finalize failure redirects to the failure page", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.service.EXPECT().FinalizeAuthorization(gomock.Any(), "PAY-1").
			Return(nil, errors.New("gateway down"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/checkout/return?token=PAY-1", nil)
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://shop.example/oops", rec.Header().Get("Location"))
	})

	t.Run("missing token is a bad request", func(t *testing.T) {
		router, _ := newTestRouter(t, mockCtrl)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/checkout/return", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCancelRedirect(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	router, mocks := newTestRouter(t, mockCtrl)

	mocks.service.EXPECT().Cancel(gomock.Any(), "PAY-1", "customer_cancelled").
		Return(&domain.Order{ID: "ord-1", Status: domain.OrderStatusCancelled}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/checkout/cancel?token=PAY-1", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://shop.example/cart", rec.Header().Get("Location"))
}

func TestProcessEndpoint(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("missing token is unauthorized and never reaches the service", func(t *testing.T) {
		router, _ := newTestRouter(t, mockCtrl)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders/ord-1/process", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.tokens.EXPECT().VerifyToken("bad-token").
			Return(nil, domain.ErrInvalidToken)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders/ord-1/process", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("verified operator triggers settlement", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.tokens.EXPECT().VerifyToken("good-token").
			Return(&port.TokenPayload{Subject: "operator"}, nil)
		mocks.service.EXPECT().Process(gomock.Any(), "ord-1").
			Return(&port.ProcessResult{
				Status:  domain.OrderStatusCaptured,
				Message: "payment captured and commerce order marked paid",
			}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders/ord-1/process", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := processResponse{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, string(domain.OrderStatusCaptured), resp.Status)
	})

	t.Run("settlement conflict surfaces as 409", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.tokens.EXPECT().VerifyToken("good-token").
			Return(&port.TokenPayload{Subject: "operator"}, nil)
		mocks.service.EXPECT().Process(gomock.Any(), "ord-1").
			Return(nil, domain.ErrOrderStateConflict)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders/ord-1/process", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestWebhook(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	approvedEvent := []byte(`{
		"id": "WH-1",
		"event_type": "CHECKOUT.ORDER.APPROVED",
		"resource": {"id": "PAY-1"}
	}`)

	postWebhook := func(router *Router, body []byte) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Paypal-Transmission-Id", "tx-1")
		req.Header.Set("Paypal-Transmission-Sig", "sig-1")
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("invalid signature is rejected without touching the saga", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.payments.EXPECT().VerifyWebhookSignature(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)

		rec := postWebhook(router, approvedEvent)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("verification outage returns 500 so the sender retries", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.payments.EXPECT().VerifyWebhookSignature(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, errors.New("gateway unavailable"))

		rec := postWebhook(router, approvedEvent)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("approved event finalizes the authorization", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.payments.EXPECT().VerifyWebhookSignature(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sig port.WebhookSignature, body json.RawMessage) (bool, error) {
				assert.Equal(t, "tx-1", sig.TransmissionID)
				assert.JSONEq(t, string(approvedEvent), string(body))
				return true, nil
			})
		mocks.service.EXPECT().FinalizeAuthorization(gomock.Any(), "PAY-1").
			Return(&domain.Order{ID: "ord-1", Status: domain.OrderStatusAuthorized}, nil)

		rec := postWebhook(router, approvedEvent)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("declined event cancels the order", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		declinedEvent := []byte(`{
			"id": "WH-2",
			"event_type": "PAYMENT.AUTHORIZATION.DENIED",
			"resource": {"id": "PAY-1"}
		}`)
		mocks.payments.EXPECT().VerifyWebhookSignature(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)
		mocks.service.EXPECT().Cancel(gomock.Any(), "PAY-1", "payment_failed").
			Return(&domain.Order{ID: "ord-1", Status: domain.OrderStatusCancelled}, nil)

		rec := postWebhook(router, declinedEvent)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("declined authorization resource resolves the order via supplementary data", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		declinedEvent := []byte(`{
			"id": "WH-4",
			"event_type": "PAYMENT.AUTHORIZATION.DENIED",
			"resource": {
				"id": "AUTH-1",
				"supplementary_data": {"related_ids": {"order_id": "PAY-1"}}
			}
		}`)
		mocks.payments.EXPECT().VerifyWebhookSignature(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)
		mocks.service.EXPECT().Cancel(gomock.Any(), "PAY-1", "payment_failed").
			Return(&domain.Order{ID: "ord-1", Status: domain.OrderStatusCancelled}, nil)

		rec := postWebhook(router, declinedEvent)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("duplicate delivery is acknowledged", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		mocks.payments.EXPECT().VerifyWebhookSignature(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)
		mocks.service.EXPECT().FinalizeAuthorization(gomock.Any(), "PAY-1").
			Return(nil, domain.ErrOrderStateConflict)

		rec := postWebhook(router, approvedEvent)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown event type is acknowledged and ignored", func(t *testing.T) {
		router, mocks := newTestRouter(t, mockCtrl)

		unknownEvent := []byte(`{
			"id": "WH-3",
			"event_type": "PAYMENT.CAPTURE.REFUNDED",
			"resource": {"id": "PAY-1"}
		}`)
		mocks.payments.EXPECT().VerifyWebhookSignature(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)

		rec := postWebhook(router, unknownEvent)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
