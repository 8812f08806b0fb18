//go:build !integration

package web_test

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"myfatoorah-checkout/internal/domain/model"
	"myfatoorah-checkout/internal/usecase"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type MockCheckoutUC struct {
	GatewaysFunc func(ctx context.Context, amount decimal.Decimal, currencyISO string) (*model.CheckoutGateways, error)
}

var _ usecase.CheckoutUseCase = (*MockCheckoutUC)(nil)

func (m *MockCheckoutUC) Gateways(ctx context.Context, amount decimal.Decimal, currencyISO string) (*model.CheckoutGateways, error) {
	return m.GatewaysFunc(ctx, amount, currencyISO)
}

type MockRateUC struct {
	RatesFunc func(ctx context.Context) ([]model.CurrencyRate, error)
}

var _ usecase.RateUseCase = (*MockRateUC)(nil)

func (m *MockRateUC) Rates(ctx context.Context) ([]model.CurrencyRate, error) {
	return m.RatesFunc(ctx)
}

func (m *MockRateUC) Rate(ctx context.Context, code string) (decimal.Decimal, error) {
	return decimal.Decimal{}, nil
}

func (m *MockRateUC) Base(ctx context.Context) (string, error) { return "KWD", nil }

type MockInvoiceUC struct {
	CreateInvoiceFunc func(ctx context.Context, req *model.InvoiceRequest, gateway string) (*model.PaymentLink, error)
}

var _ usecase.InvoiceUseCase = (*MockInvoiceUC)(nil)

func (m *MockInvoiceUC) CreateInvoice(ctx context.Context, req *model.InvoiceRequest, gateway string) (*model.PaymentLink, error) {
	return m.CreateInvoiceFunc(ctx, req, gateway)
}
