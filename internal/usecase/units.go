package usecase

import (
	"strings"

	"myfatoorah-checkout/internal/domain"
)

// weightRates converts a shipping weight unit to kilograms, the account
// default. Arabic spellings match what merchants type in the portal.
var weightRates = map[string]float64{
	"kg":        1,
	"kgs":       1,
	"كج":        1,
	"كلغ":       1,
	"كيلو جرام": 1,
	"كيلو غرام": 1,
	"g":         0.001,
	"جرام":      0.001,
	"غرام":      0.001,
	"جم":        0.001,
	"lbs":       0.453592,
	"lb":        0.453592,
	"رطل":       0.453592,
	"باوند":     0.453592,
	"oz":        0.0283495,
	"اوقية":     0.0283495,
	"أوقية":     0.0283495,
}

// dimensionRates converts a package dimension unit to centimeters.
var dimensionRates = map[string]float64{
	"cm":   1,
	"سم":   1,
	"m":    100,
	"متر":  100,
	"م":    100,
	"mm":   0.1,
	"مم":   0.1,
	"in":   2.54,
	"انش":  2.54,
	"إنش":  2.54,
	"بوصه": 2.54,
	"بوصة": 2.54,
	"yd":   91.44,
	"يارده": 91.44,
	"ياردة": 91.44,
}

// WeightRate returns the factor converting unit to kilograms.
func WeightRate(unit string) (float64, error) {
	if rate, ok := weightRates[strings.ToLower(unit)]; ok {
		return rate, nil
	}
	return 0, domain.ErrUnsupportedWeightUnit
}

// DimensionRate returns the factor converting unit to centimeters.
func DimensionRate(unit string) (float64, error) {
	if rate, ok := dimensionRates[strings.ToLower(unit)]; ok {
		return rate, nil
	}
	return 0, domain.ErrUnsupportedDimension
}
