package model

import "github.com/shopspring/decimal"

func init() {
	// The gateway API encodes money as plain JSON numbers, never as quoted
	// strings or scientific notation.
	decimal.MarshalJSONWithoutQuotes = true
}
