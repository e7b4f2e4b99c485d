package service_test

import (
	"context"
	"testing"

	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"github.com/MikeRez0/dropship-checkout/internal/core/port/mock"
	"github.com/MikeRez0/dropship-checkout/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dec(t *testing.T, value float64) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromFloat64(value)
	require.NoError(t, err)
	return d
}

func cartV1(t *testing.T, quantity int, price float64) domain.Cart {
	t.Helper()
	return domain.Cart{
		Currency: "USD",
		Items: []domain.LineItem{
			{VariantID: "V1", Quantity: quantity, UnitPrice: dec(t, price)},
		},
	}
}

func TestInventoryValidator_ValidateCart(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	type validateTest struct {
		name       string
		cart       domain.Cart
		mock       func(commerce *mock.MockCommerceGateway)
		expAmount  string
		expReasons []string
	}

	tests := []validateTest{
		{
			name: "single item accepted with recomputed amount",
			cart: cartV1(t, 2, 9.99),
			mock: func(commerce *mock.MockCommerceGateway) {
				commerce.EXPECT().GetVariant(gomock.Any(), "V1").
					Return(&port.Variant{ID: "V1", Price: dec(t, 9.99), AvailableQuantity: 10}, nil)
			},
			expAmount: "19.98",
		},
		{
			name: "insufficient stock names item and available count",
			cart: cartV1(t, 2, 9.99),
			mock: func(commerce *mock.MockCommerceGateway) {
				commerce.EXPECT().GetVariant(gomock.Any(), "V1").
					Return(&port.Variant{ID: "V1", Price: dec(t, 9.99), AvailableQuantity: 1}, nil)
			},
			expReasons: []string{"item V1: requested 2 but only 1 available"},
		},
		{
			name: "price drift names old and new price",
			cart: cartV1(t, 1, 9.99),
			mock: func(commerce *mock.MockCommerceGateway) {
				commerce.EXPECT().GetVariant(gomock.Any(), "V1").
					Return(&port.Variant{ID: "V1", Price: dec(t, 10.99), AvailableQuantity: 10}, nil)
			},
			expReasons: []string{"item V1: price changed from 9.99 to 10.99"},
		},
		{
			name: "missing variant reported as no longer available",
			cart: cartV1(t, 1, 9.99),
			mock: func(commerce *mock.MockCommerceGateway) {
				commerce.EXPECT().GetVariant(gomock.Any(), "V1").
					Return(nil, domain.ErrDataNotFound)
			},
			expReasons: []string{"item V1 is no longer available"},
		},
		{
			name: "issues accumulate across all items in order",
			cart: domain.Cart{
				Currency: "USD",
				Items: []domain.LineItem{
					{VariantID: "V1", Quantity: 5, UnitPrice: dec(t, 9.99)},
					{VariantID: "V2", Quantity: 1, UnitPrice: dec(t, 4.50)},
				},
			},
			mock: func(commerce *mock.MockCommerceGateway) {
				commerce.EXPECT().GetVariant(gomock.Any(), "V1").
					Return(&port.Variant{ID: "V1", Price: dec(t, 9.99), AvailableQuantity: 3}, nil)
				commerce.EXPECT().GetVariant(gomock.Any(), "V2").
					Return(nil, domain.ErrDataNotFound)
			},
			expReasons: []string{
				"item V1: requested 5 but only 3 available",
				"item V2 is no longer available",
			},
		},
		{
			name: "sub-tolerance price difference accepted",
			cart: cartV1(t, 1, 9.9900000001),
			mock: func(commerce *mock.MockCommerceGateway) {
				commerce.EXPECT().GetVariant(gomock.Any(), "V1").
					Return(&port.Variant{ID: "V1", Price: dec(t, 9.99), AvailableQuantity: 10}, nil)
			},
			expAmount: "9.99",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			commerce := mock.NewMockCommerceGateway(mockCtrl)
			test.mock(commerce)

			validator := service.NewInventoryValidator(commerce, zap.NewNop())
			validated, err := validator.ValidateCart(context.Background(), test.cart)

			if len(test.expReasons) > 0 {
				var catalogErr *domain.CatalogError
				require.ErrorAs(t, err, &catalogErr)
				reasons := make([]string, 0, len(catalogErr.Issues))
				for _, issue := range catalogErr.Issues {
					reasons = append(reasons, issue.Reason)
				}
				assert.Equal(t, test.expReasons, reasons)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expAmount, validated.Amount.String())
		})
	}
}

func TestInventoryValidator_ValidateCart_CanonicalPrices(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	commerce := mock.NewMockCommerceGateway(mockCtrl)
	// Live price differs only below the tolerance; the validated cart must
	// carry the gateway price, not the submitted one.
	commerce.EXPECT().GetVariant(gomock.Any(), "V1").
		Return(&port.Variant{ID: "V1", Price: dec(t, 9.99), AvailableQuantity: 10}, nil)

	validator := service.NewInventoryValidator(commerce, zap.NewNop())
	validated, err := validator.ValidateCart(context.Background(), cartV1(t, 1, 9.9900000001))

	require.NoError(t, err)
	assert.Equal(t, "9.99", validated.Items[0].UnitPrice.String())
}

func TestInventoryValidator_CheckStock(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	commerce := mock.NewMockCommerceGateway(mockCtrl)
	commerce.EXPECT().GetVariant(gomock.Any(), "V1").
		Return(&port.Variant{ID: "V1", Price: dec(t, 9.99), AvailableQuantity: 0}, nil)

	validator := service.NewInventoryValidator(commerce, zap.NewNop())
	err := validator.CheckStock(context.Background(), cartV1(t, 2, 9.99))

	var catalogErr *domain.CatalogError
	require.ErrorAs(t, err, &catalogErr)
	assert.Contains(t, catalogErr.Issues[0].Reason, "only 0 available")
}

func TestInventoryValidator_EmptyCartRejected(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	commerce := mock.NewMockCommerceGateway(mockCtrl)

	validator := service.NewInventoryValidator(commerce, zap.NewNop())
	_, err := validator.ValidateCart(context.Background(), domain.Cart{Currency: "USD"})

	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
