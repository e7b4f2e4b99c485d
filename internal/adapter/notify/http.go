// Package notify delivers customer-facing cancellation messages to the
// external notification collaborator over HTTP.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MikeRez0/dropship-checkout/internal/adapter/config"
	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"go.uber.org/zap"
)

type Service struct {
	logger *zap.Logger
	url    string
	http   *http.Client
}

func NewService(cfg *config.Notify, log *zap.Logger) (*Service, error) {
	return &Service{
		logger: log,
		url:    cfg.URL,
		http:   &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type cancellationMessage struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number,omitempty"`
	UserID      string `json:"user_id"`
	Email       string `json:"email,omitempty"`
	Reason      string `json:"reason"`
}

func (s *Service) NotifyCancellation(ctx context.Context, order *domain.Order, reason string) error {
	if s.url == "" {
		// Notification channel not configured; log so the message is not
		// silently dropped.
		s.logger.Info("order cancellation (notification channel disabled)",
			zap.String("order", order.ID), zap.String("reason", reason))
		return nil
	}

	message := cancellationMessage{
		OrderID:     order.ID,
		OrderNumber: order.CommerceOrderNumber,
		UserID:      order.UserID,
		Email:       order.Cart.Customer.Email,
		Reason:      reason,
	}
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("cancellation notification for %s: %w", order.ID, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("cancellation notification for %s: unexpected status %d", order.ID, resp.StatusCode)
	}
	return nil
}

var _ port.Notifier = (*Service)(nil)
