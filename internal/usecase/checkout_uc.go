package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"myfatoorah-checkout/internal/domain/model"
)

// CheckoutUseCase builds the bucketed, amount-enriched gateway list the
// checkout page renders.
type CheckoutUseCase interface {
	Gateways(ctx context.Context, amount decimal.Decimal, currencyISO string) (*model.CheckoutGateways, error)
}

var _ CheckoutUseCase = (*checkoutUC)(nil)

type checkoutUC struct {
	catalog         CatalogUseCase
	rates           RateUseCase
	walletDomainReg bool
	log             *zerolog.Logger
}

// NewCheckoutUseCase constructs the use case. walletDomainRegistered reflects
// whether the merchant completed the Apple Pay domain-verification flow; it
// flips the wallet entries between their dedicated slots and the cards bucket.
func NewCheckoutUseCase(catalog CatalogUseCase, rates RateUseCase, walletDomainRegistered bool, logger *zerolog.Logger) CheckoutUseCase {
	return &checkoutUC{
		catalog:         catalog,
		rates:           rates,
		walletDomainReg: walletDomainRegistered,
		log:             logger,
	}
}

func (c *checkoutUC) Gateways(ctx context.Context, amount decimal.Decimal, currencyISO string) (*model.CheckoutGateways, error) {
	methods, err := c.catalog.List(ctx, amount, currencyISO, false)
	if err != nil {
		return nil, err
	}
	rates, err := c.rates.Rates(ctx)
	if err != nil {
		return nil, err
	}
	buckets := Categorize(methods, c.walletDomainReg, currencyISO, rates)
	c.log.Debug().
		Int("methods", len(methods)).
		Int("cards", len(buckets.Cards)).
		Int("form", len(buckets.Form)).
		Str("currency", currencyISO).
		Msg("checkout gateways built")
	return buckets, nil
}

// Categorize partitions methods into checkout buckets and enriches each with
// its computed settlement amount. Classification priority: "gp" takes the
// dedicated Google Pay slot; "ap" goes to the Apple Pay list when the wallet
// domain is registered, else to cards; "stc" goes to cards; everything else
// goes to form when it supports embedding, to cards when it is not
// direct-payment, and is dropped otherwise.
func Categorize(methods []*model.PaymentMethod, walletDomainRegistered bool, displayCurrency string, rates []model.CurrencyRate) *model.CheckoutGateways {
	out := &model.CheckoutGateways{
		All:      []*model.PaymentMethod{},
		Cards:    []*model.PaymentMethod{},
		Form:     []*model.PaymentMethod{},
		ApplePay: []*model.PaymentMethod{},
	}
	var applePay, googlePay []*model.PaymentMethod

	for _, m := range methods {
		m.GatewayData = DisplayAmount(m, rates)

		switch m.PaymentMethodCode {
		case "gp":
			googlePay = append(googlePay, m)
			out.All = append(out.All, m)
		case "ap":
			if walletDomainRegistered {
				applePay = append(applePay, m)
			} else {
				out.Cards = append(out.Cards, m)
			}
			out.All = append(out.All, m)
		case "stc":
			out.Cards = append(out.Cards, m)
			out.All = append(out.All, m)
		default:
			if m.IsEmbeddedSupported {
				out.Form = append(out.Form, m)
				out.All = append(out.All, m)
			} else if !m.IsDirectPayment {
				out.Cards = append(out.Cards, m)
				out.All = append(out.All, m)
			}
			// direct-only, non-embeddable methods never reach a generic
			// checkout list
		}
	}

	if walletDomainRegistered {
		if one := PickOne(applePay, displayCurrency, rates); one != nil {
			out.ApplePay = append(out.ApplePay, one)
		}
	}
	switch {
	case len(googlePay) == 0:
	case walletDomainRegistered && len(googlePay) > 1:
		out.GooglePay = PickOne(googlePay, displayCurrency, rates)
	default:
		out.GooglePay = googlePay[len(googlePay)-1]
	}
	return out
}

// PickOne resolves a multi-entry wallet bucket to a single gateway: prefer
// the candidate settling in the display currency, then the one settling in
// the account's base currency, then the first in original order. Nil when
// there are no candidates.
func PickOne(candidates []*model.PaymentMethod, displayCurrency string, rates []model.CurrencyRate) *model.PaymentMethod {
	if len(candidates) == 0 {
		return nil
	}
	for _, m := range candidates {
		if m.PaymentCurrencyIso == displayCurrency {
			return m
		}
	}
	if base := baseCurrency(rates); base != "" {
		for _, m := range candidates {
			if m.PaymentCurrencyIso == base {
				return m
			}
		}
	}
	return candidates[0]
}

// DisplayAmount computes the "you will pay X" figure in the gateway's
// settlement currency. The upstream gateway rounds at each conversion stage,
// so the sequence below is load-bearing: truncate the invoice total to 3
// decimals, convert to the base currency (round to 3, ceil to 2), then
// multiply by the settlement rate and ceil to 2 again. A naive single-step
// conversion drifts from the settled amount by fractions of a unit.
//
// When either currency is missing from the rate table the amount is passed
// through unconverted and labeled with the invoice currency.
func DisplayAmount(m *model.PaymentMethod, rates []model.CurrencyRate) *model.GatewayData {
	total := m.TotalAmount.Truncate(3)

	if m.PaymentCurrencyIso == m.CurrencyIso {
		return gatewayData(ceilTo(total, 2), m.PaymentCurrencyIso)
	}

	invoiceRate, okInv := rateOf(rates, m.CurrencyIso)
	settleRate, okSet := rateOf(rates, m.PaymentCurrencyIso)
	if !okInv || !okSet {
		return gatewayData(ceilTo(total, 2), m.CurrencyIso)
	}

	base := total
	if !invoiceRate.Equal(decimalOne) {
		base = total.Div(invoiceRate).Round(3)
	}
	base = ceilTo(base, 2)

	if settleRate.Equal(decimalOne) {
		return gatewayData(base, m.PaymentCurrencyIso)
	}
	return gatewayData(ceilTo(base.Mul(settleRate), 2), m.PaymentCurrencyIso)
}

func gatewayData(amount decimal.Decimal, currency string) *model.GatewayData {
	en, ar := CurrencyLabel(currency)
	return &model.GatewayData{
		GatewayTotalAmount: amount.StringFixed(2),
		GatewayCurrency:    currency,
		CurrencyLabelEn:    en,
		CurrencyLabelAr:    ar,
	}
}

func rateOf(rates []model.CurrencyRate, code string) (decimal.Decimal, bool) {
	for _, cr := range rates {
		if cr.Code == code {
			return cr.Rate, true
		}
	}
	return decimal.Decimal{}, false
}

// ceilTo rounds d up (toward positive infinity) at the given decimal place.
func ceilTo(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Ceil().Shift(-places)
}

var currencyLabels = map[string][2]string{
	"KWD": {"KD", "د.ك"},
	"SAR": {"SR", "ر.س"},
	"BHD": {"BD", "د.ب"},
	"EGP": {"LE", "ج.م"},
	"QAR": {"QR", "ر.ق"},
	"OMR": {"OR", "ر.ع"},
	"JOD": {"JD", "د.أ"},
	"AED": {"AED", "د.إ"},
	"USD": {"$", "$"},
	"EUR": {"€", "€"},
}

// CurrencyLabel returns the short English and native-script labels for the
// ten known settlement currencies; unknown codes map to empty labels.
func CurrencyLabel(code string) (en, ar string) {
	l, ok := currencyLabels[code]
	if !ok {
		return "", ""
	}
	return l[0], l[1]
}
