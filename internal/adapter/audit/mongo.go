// Package audit stores cross-system transaction snapshots in a document
// database, keyed by the human-facing commerce order number. Write-once-
// then-overwrite; nothing in the saga ever reads it back.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MikeRez0/dropship-checkout/internal/adapter/config"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Sink struct {
	logger     *zap.Logger
	collection *mongo.Collection
}

func NewSink(ctx context.Context, cfg *config.Audit, log *zap.Logger) (*Sink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping audit store: %w", err)
	}

	return &Sink{
		logger:     log,
		collection: client.Database(cfg.MongoDB).Collection(cfg.Collection),
	}, nil
}

type document struct {
	OrderNumber string         `bson:"_id"`
	Order       orderDocument  `bson:"order"`
	Payment     map[string]any `bson:"payment_payload,omitempty"`
	Commerce    map[string]any `bson:"commerce_payload,omitempty"`
	RecordedAt  time.Time      `bson:"recorded_at"`
}

type orderDocument struct {
	ID                     string    `bson:"id"`
	UserID                 string    `bson:"user_id"`
	Status                 string    `bson:"status"`
	Amount                 string    `bson:"amount"`
	Currency               string    `bson:"currency"`
	PaymentOrderID         string    `bson:"payment_order_id"`
	PaymentAuthorizationID string    `bson:"payment_authorization_id"`
	CommerceOrderID        string    `bson:"commerce_order_id"`
	CreatedAt              time.Time `bson:"created_at"`
}

func (s *Sink) Put(ctx context.Context, orderNumber string, record *port.AuditRecord) error {
	doc := document{
		OrderNumber: orderNumber,
		Order: orderDocument{
			ID:                     record.Order.ID,
			UserID:                 record.Order.UserID,
			Status:                 string(record.Order.Status),
			Amount:                 record.Order.Cart.Amount.String(),
			Currency:               record.Order.Cart.Currency,
			PaymentOrderID:         record.Order.PaymentOrderID,
			PaymentAuthorizationID: record.Order.PaymentAuthorizationID,
			CommerceOrderID:        record.Order.CommerceOrderID,
			CreatedAt:              record.Order.CreatedAt,
		},
		Payment:    decodePayload(record.PaymentPayload),
		Commerce:   decodePayload(record.CommercePayload),
		RecordedAt: record.RecordedAt,
	}

	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": orderNumber}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store audit record %s: %w", orderNumber, err)
	}
	return nil
}

// decodePayload best-effort converts a raw gateway payload into a queryable
// document. Undecodable payloads are kept as a string.
func decodePayload(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	payload := make(map[string]any)
	if err := json.Unmarshal(raw, &payload); err != nil {
		return map[string]any{"raw": string(raw)}
	}
	return payload
}

var _ port.AuditSink = (*Sink)(nil)
