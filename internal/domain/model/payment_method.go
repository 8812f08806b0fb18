package model

import "github.com/shopspring/decimal"

// PaymentMethod is one gateway entry returned by the InitiatePayment
// endpoint. The struct is created fresh per catalog fetch and is never
// mutated after categorization, except for the GatewayData enrichment.
type PaymentMethod struct {
	PaymentMethodID     int             `json:"PaymentMethodId"`
	PaymentMethodAr     string          `json:"PaymentMethodAr"`
	PaymentMethodEn     string          `json:"PaymentMethodEn"`
	PaymentMethodCode   string          `json:"PaymentMethodCode"`
	IsDirectPayment     bool            `json:"IsDirectPayment"`
	IsEmbeddedSupported bool            `json:"IsEmbeddedSupported"`
	ServiceCharge       decimal.Decimal `json:"ServiceCharge"`
	TotalAmount         decimal.Decimal `json:"TotalAmount"`
	CurrencyIso         string          `json:"CurrencyIso"`
	PaymentCurrencyIso  string          `json:"PaymentCurrencyIso"`
	ImageURL            string          `json:"ImageUrl"`

	// GatewayData is filled by the currency normalization engine.
	GatewayData *GatewayData `json:"GatewayData,omitempty"`
}

// GatewayData is the computed "you will pay X" amount in the currency the
// gateway actually settles in.
type GatewayData struct {
	GatewayTotalAmount string `json:"GatewayTotalAmount"` // fixed two decimal places
	GatewayCurrency    string `json:"GatewayCurrency"`
	CurrencyLabelEn    string `json:"GatewayCurrencyLabelEn"`
	CurrencyLabelAr    string `json:"GatewayCurrencyLabelAr"`
}

// CheckoutGateways partitions a catalog into the buckets the checkout page
// renders. Every method appears in All at most once and in at most one of
// Cards/Form; wallet codes follow the dedicated slot rules.
type CheckoutGateways struct {
	All       []*PaymentMethod `json:"all"`
	Cards     []*PaymentMethod `json:"cards"`
	Form      []*PaymentMethod `json:"form"`
	ApplePay  []*PaymentMethod `json:"ap"`
	GooglePay *PaymentMethod   `json:"gp,omitempty"`
}

// CurrencyRate maps an ISO currency code to its conversion rate toward the
// merchant account's base currency. The base currency has rate exactly 1.
type CurrencyRate struct {
	Code string          `json:"Text"`
	Rate decimal.Decimal `json:"Value"`
}

// EmbeddedSession carries the data needed to render an embedded payment form.
type EmbeddedSession struct {
	SessionID   string `json:"SessionId"`
	CountryCode string `json:"CountryCode"`
}
