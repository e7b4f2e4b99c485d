package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")

	// * Saga errors.
	ErrOrderStateConflict    = errors.New("order status conflicts with requested transition")
	ErrOrderCancelled        = errors.New("order cancelled")
	ErrCriticalInconsistency = errors.New("payment captured but commerce order update failed")
	ErrWebhookNotVerified    = errors.New("webhook signature could not be verified")
)

// ItemIssue is one per-item validation failure found while checking a cart
// against live catalog data.
type ItemIssue struct {
	VariantID string `json:"variant_id"`
	Reason    string `json:"reason"`
}

// CatalogError rejects a whole checkout: a non-empty ordered list of
// per-item issues. No partial carts.
type CatalogError struct {
	Issues []ItemIssue
}

func (e *CatalogError) Error() string {
	reasons := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		reasons = append(reasons, issue.Reason)
	}
	return "cart validation failed: " + strings.Join(reasons, "; ")
}

// GatewayError wraps a failed call to the payment or commerce gateway.
// 4xx responses are not retriable; 5xx and timeouts are retried by the
// client's policy before this error surfaces to the saga.
type GatewayError struct {
	Gateway    string
	Op         string
	StatusCode int
	Retriable  bool
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Gateway, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Gateway, e.Op, e.StatusCode, e.Body)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
