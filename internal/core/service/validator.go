package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// priceTolerance is the relative tolerance between the submitted price and
// the live gateway price. Anything above it rejects the whole checkout.
const priceTolerance = 1e-5

// InventoryValidator revalidates a submitted cart against live catalog data
// before any money moves. It guards against client-side price tampering and
// stale stock. Its only side effects are read calls to the commerce gateway.
type InventoryValidator struct {
	commerce port.CommerceGateway
	logger   *zap.Logger
}

func NewInventoryValidator(commerce port.CommerceGateway, logger *zap.Logger) *InventoryValidator {
	return &InventoryValidator{commerce: commerce, logger: logger}
}

// ValidateCart checks every line item, accumulating issues instead of
// failing fast. A non-empty issue list voids the checkout entirely. On
// success it returns a cart whose prices are the gateway's canonical prices
// and whose amount is the recomputed total rounded to 2 decimals.
func (v *InventoryValidator) ValidateCart(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if len(cart.Items) == 0 {
		return domain.Cart{}, fmt.Errorf("%w: cart is empty", domain.ErrBadRequest)
	}

	issues := make([]domain.ItemIssue, 0)
	validated := cart
	validated.Items = make([]domain.LineItem, 0, len(cart.Items))
	total := decimal.Zero

	for _, item := range cart.Items {
		variant, err := v.commerce.GetVariant(ctx, item.VariantID)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				issues = append(issues, domain.ItemIssue{
					VariantID: item.VariantID,
					Reason:    fmt.Sprintf("item %s is no longer available", item.VariantID),
				})
				continue
			}
			return domain.Cart{}, fmt.Errorf("variant lookup for %s: %w", item.VariantID, err)
		}

		if item.Quantity > variant.AvailableQuantity {
			issues = append(issues, domain.ItemIssue{
				VariantID: item.VariantID,
				Reason: fmt.Sprintf("item %s: requested %d but only %d available",
					item.VariantID, item.Quantity, variant.AvailableQuantity),
			})
			continue
		}

		drifted, err := priceDrifted(item.UnitPrice, variant.Price)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("price check for %s: %w", item.VariantID, err)
		}
		if drifted {
			issues = append(issues, domain.ItemIssue{
				VariantID: item.VariantID,
				Reason: fmt.Sprintf("item %s: price changed from %s to %s",
					item.VariantID, item.UnitPrice, variant.Price),
			})
			continue
		}

		canonical := item
		canonical.UnitPrice = variant.Price
		validated.Items = append(validated.Items, canonical)

		line, err := lineTotal(variant.Price, item.Quantity)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("amount for %s: %w", item.VariantID, err)
		}
		total, err = total.Add(line)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("amount for %s: %w", item.VariantID, err)
		}
	}

	if len(issues) > 0 {
		return domain.Cart{}, &domain.CatalogError{Issues: issues}
	}

	validated.Amount = total.Round(2)
	return validated, nil
}

// CheckStock re-runs the availability check only. Used by the settlement
// step, where prices are already locked into the cart snapshot but variant
// quantities may have drifted since authorization.
func (v *InventoryValidator) CheckStock(ctx context.Context, cart domain.Cart) error {
	issues := make([]domain.ItemIssue, 0)
	for _, item := range cart.Items {
		variant, err := v.commerce.GetVariant(ctx, item.VariantID)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				issues = append(issues, domain.ItemIssue{
					VariantID: item.VariantID,
					Reason:    fmt.Sprintf("item %s is no longer available", item.VariantID),
				})
				continue
			}
			return fmt.Errorf("variant lookup for %s: %w", item.VariantID, err)
		}
		if item.Quantity > variant.AvailableQuantity {
			issues = append(issues, domain.ItemIssue{
				VariantID: item.VariantID,
				Reason: fmt.Sprintf("item %s: requested %d but only %d available",
					item.VariantID, item.Quantity, variant.AvailableQuantity),
			})
		}
	}
	if len(issues) > 0 {
		return &domain.CatalogError{Issues: issues}
	}
	return nil
}

func priceDrifted(submitted, live decimal.Decimal) (bool, error) {
	diff, err := live.Sub(submitted)
	if err != nil {
		return false, err
	}
	tolerance, err := decimal.NewFromFloat64(priceTolerance)
	if err != nil {
		return false, err
	}
	threshold, err := live.Abs().Mul(tolerance)
	if err != nil {
		return false, err
	}
	return diff.Abs().Cmp(threshold) > 0, nil
}

func lineTotal(price decimal.Decimal, quantity int) (decimal.Decimal, error) {
	qty, err := decimal.New(int64(quantity), 0)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return price.Mul(qty)
}
