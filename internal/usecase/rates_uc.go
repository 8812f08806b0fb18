package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"myfatoorah-checkout/internal/domain"
	"myfatoorah-checkout/internal/domain/model"
	"myfatoorah-checkout/internal/domain/ports/adapter"
)

// RateUseCase exposes the account's exchange-rate table.
type RateUseCase interface {
	// Rates returns the full table in upstream order.
	Rates(ctx context.Context) ([]model.CurrencyRate, error)

	// Rate returns the stored rate for an exact currency code match.
	// Returns domain.ErrUnsupportedCurrency when the code is absent; there is
	// no case folding and no fallback.
	Rate(ctx context.Context, code string) (decimal.Decimal, error)

	// Base returns the account's base currency, the entry whose rate is
	// exactly 1.
	Base(ctx context.Context) (string, error)
}

var _ RateUseCase = (*rateUC)(nil)

type rateUC struct {
	api adapter.GatewayAPI
	log *zerolog.Logger
}

func NewRateUseCase(api adapter.GatewayAPI, logger *zerolog.Logger) RateUseCase {
	return &rateUC{api: api, log: logger}
}

func (r *rateUC) Rates(ctx context.Context) ([]model.CurrencyRate, error) {
	return r.api.CurrencyRates(ctx)
}

func (r *rateUC) Rate(ctx context.Context, code string) (decimal.Decimal, error) {
	rates, err := r.api.CurrencyRates(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	for _, cr := range rates {
		if cr.Code == code {
			return cr.Rate, nil
		}
	}
	return decimal.Decimal{}, domain.ErrUnsupportedCurrency
}

func (r *rateUC) Base(ctx context.Context) (string, error) {
	rates, err := r.api.CurrencyRates(ctx)
	if err != nil {
		return "", err
	}
	if base := baseCurrency(rates); base != "" {
		return base, nil
	}
	return "", domain.ErrNotFound
}

// baseCurrency is the first entry whose rate equals exactly 1, or "".
func baseCurrency(rates []model.CurrencyRate) string {
	for _, cr := range rates {
		if cr.Rate.Equal(decimalOne) {
			return cr.Code
		}
	}
	return ""
}

var decimalOne = decimal.NewFromInt(1)
