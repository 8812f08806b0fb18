package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"myfatoorah-checkout/internal/domain/model"
)

// GatewayAPI is the hex port for the upstream payment gateway REST API.
// Every call is a single attempt; retry policy, if any, belongs to callers.
type GatewayAPI interface {
	// InitiatePayment lists the payment methods available for the given
	// invoice amount and currency. A zero amount enumerates methods without
	// charging context.
	InitiatePayment(ctx context.Context, amount decimal.Decimal, currencyISO string) ([]*model.PaymentMethod, error)

	// CurrencyRates returns the account's exchange-rate table in upstream order.
	CurrencyRates(ctx context.Context) ([]model.CurrencyRate, error)

	// SendPayment creates an invoice link (the gateway-agnostic path).
	SendPayment(ctx context.Context, req *model.InvoiceRequest) (*model.PaymentLink, error)

	// ExecutePayment charges through a specific gateway (PaymentMethodId) or
	// an embedded session (SessionId), whichever the request carries.
	ExecutePayment(ctx context.Context, req *model.InvoiceRequest) (*model.PaymentLink, error)

	// InitiateSession opens an embedded-form session for a customer.
	InitiateSession(ctx context.Context, customerIdentifier string) (*model.EmbeddedSession, error)

	// RegisterApplePayDomain registers the site host for the wallet
	// domain-verification flow.
	RegisterApplePayDomain(ctx context.Context, siteURL string) error
}
