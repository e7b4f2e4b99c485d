package port

import (
	"context"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
)

// Notifier sends customer-facing cancellation messages. External
// collaborator; failures are isolated inside compensation.
type Notifier interface {
	NotifyCancellation(ctx context.Context, order *domain.Order, reason string) error
}

// AlertSink is the operator-facing alerting channel. Critical inconsistencies
// (captured payment, failed commerce update) are the only error class that
// must reach it instead of being absorbed into a normal cancellation.
type AlertSink interface {
	CriticalInconsistency(ctx context.Context, order *domain.Order, cause error)
}
