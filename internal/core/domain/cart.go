package domain

import (
	"github.com/govalues/decimal"
)

type LineItem struct {
	VariantID string          `json:"variant_id"`
	Title     string          `json:"title,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type ShippingAddress struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	Province    string `json:"province"`
	Zip         string `json:"zip"`
	CountryCode string `json:"country"`
}

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Cart is the validated snapshot stored on an Order. Amount is always the
// server-computed total over canonical gateway prices, never the
// client-submitted total.
type Cart struct {
	Items           []LineItem      `json:"line_items"`
	Currency        string          `json:"currency"`
	Amount          decimal.Decimal `json:"amount"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Customer        Customer        `json:"customer"`
}
