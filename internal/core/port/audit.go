package port

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
)

// AuditRecord is a point-in-time union of the local order and both gateway
// payloads, keyed by the human-facing commerce order number. Pure sink for
// later diagnosis; the orchestrator never reads it back.
type AuditRecord struct {
	Order           *domain.Order
	PaymentPayload  json.RawMessage
	CommercePayload json.RawMessage
	RecordedAt      time.Time
}

// AuditSink is best-effort: a failed Put is logged by the caller and never
// fails the saga.
type AuditSink interface {
	Put(ctx context.Context, orderNumber string, record *AuditRecord) error
}
