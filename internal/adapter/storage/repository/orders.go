package repository

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/storage"
	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const ordersTable = "orders"

var orderColumns = []string{
	"id", "user_id", "status", "cart",
	"payment_order_id", "payment_authorization_id",
	"commerce_order_id", "commerce_order_number",
	"created_at", "updated_at",
}

type OrderRepository struct {
	db *storage.DB
}

func NewOrderRepository(db *storage.DB) (*OrderRepository, error) {
	return &OrderRepository{db: db}, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	cart, err := json.Marshal(order.Cart)
	if err != nil {
		return nil, err
	}

	statement := r.db.QueryBuilder.Insert(ordersTable).
		Columns("id", "user_id", "status", "cart", "amount", "currency", "created_at", "updated_at").
		Values(order.ID, order.UserID, order.Status, cart,
			order.Cart.Amount, order.Cart.Currency, order.CreatedAt, order.UpdatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) ReadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return r.readOne(ctx, sq.Eq{"id": orderID})
}

func (r *OrderRepository) ReadOrderByPaymentOrder(ctx context.Context, paymentOrderID string) (*domain.Order, error) {
	return r.readOne(ctx, sq.Eq{"payment_order_id": paymentOrderID})
}

func (r *OrderRepository) readOne(ctx context.Context, where sq.Eq) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From(ordersTable).
		Where(where)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}
	var cart []byte
	var paymentOrderID, authorizationID, commerceOrderID, commerceOrderNumber *string

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&cart,
		&paymentOrderID,
		&authorizationID,
		&commerceOrderID,
		&commerceOrderNumber,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(cart, &order.Cart); err != nil {
		return nil, err
	}
	if paymentOrderID != nil {
		order.PaymentOrderID = *paymentOrderID
	}
	if authorizationID != nil {
		order.PaymentAuthorizationID = *authorizationID
	}
	if commerceOrderID != nil {
		order.CommerceOrderID = *commerceOrderID
	}
	if commerceOrderNumber != nil {
		order.CommerceOrderNumber = *commerceOrderNumber
	}

	return &order, nil
}

func (r *OrderRepository) SetPaymentOrder(ctx context.Context, orderID string, paymentOrderID string) error {
	return r.setOnce(ctx, orderID, map[string]any{"payment_order_id": paymentOrderID},
		func(order *domain.Order) bool { return order.PaymentOrderID == paymentOrderID })
}

func (r *OrderRepository) SetAuthorization(ctx context.Context, orderID string, authorizationID string) error {
	return r.setOnce(ctx, orderID, map[string]any{"payment_authorization_id": authorizationID},
		func(order *domain.Order) bool { return order.PaymentAuthorizationID == authorizationID })
}

func (r *OrderRepository) SetCommerceOrder(ctx context.Context, orderID string,
	commerceOrderID string, commerceOrderNumber string) error {
	return r.setOnce(ctx, orderID, map[string]any{
		"commerce_order_id":     commerceOrderID,
		"commerce_order_number": commerceOrderNumber,
	}, func(order *domain.Order) bool { return order.CommerceOrderID == commerceOrderID })
}

// setOnce assigns gateway identifiers guarded by IS NULL so an identifier is
// never reassigned. Re-writing the identical value (a retried step) is
// accepted as a no-op; anything else is a conflict.
func (r *OrderRepository) setOnce(ctx context.Context, orderID string,
	values map[string]any, same func(*domain.Order) bool) error {

	statement := r.db.QueryBuilder.Update(ordersTable).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": orderID})
	for column, value := range values {
		statement = statement.Set(column, value).Where(column + " IS NULL")
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrConflictingData
		}
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	order, err := r.ReadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if same(order) {
		return nil
	}
	return domain.ErrConflictingData
}

// TransitionStatus is the compare-and-set primitive: the status moves only
// when the current value matches the caller's expectation, which serializes
// duplicate saga invocations racing over the same order.
func (r *OrderRepository) TransitionStatus(ctx context.Context, orderID string,
	expected domain.OrderStatus, next domain.OrderStatus) error {

	if !expected.CanTransitionTo(next) {
		return domain.ErrOrderStateConflict
	}

	statement := r.db.QueryBuilder.Update(ordersTable).
		Set("status", next).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": orderID, "status": expected})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderStateConflict
	}
	return nil
}

var _ port.OrderRepository = (*OrderRepository)(nil)
