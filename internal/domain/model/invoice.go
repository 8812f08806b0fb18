package model

import "github.com/shopspring/decimal"

// InvoiceRequest is the payment-creation payload. Free-text fields are
// sanitized in place before transmission; CustomerEmail stays nil when
// absent because the upstream API treats "" as a malformed address.
type InvoiceRequest struct {
	InvoiceValue       decimal.Decimal `json:"InvoiceValue"`
	DisplayCurrencyIso string          `json:"DisplayCurrencyIso,omitempty"`
	CustomerName       string          `json:"CustomerName,omitempty"`
	CustomerEmail      *string         `json:"CustomerEmail"`
	MobileCountryCode  string          `json:"MobileCountryCode,omitempty"`
	CustomerMobile     string          `json:"CustomerMobile,omitempty"`
	CustomerReference  string          `json:"CustomerReference,omitempty"`
	CustomerCivilID    string          `json:"CustomerCivilId,omitempty"`
	Language           string          `json:"Language,omitempty"`
	CallBackURL        string          `json:"CallBackUrl,omitempty"`
	ErrorURL           string          `json:"ErrorUrl,omitempty"`
	UserDefinedField   string          `json:"UserDefinedField,omitempty"`
	SourceInfo         string          `json:"SourceInfo,omitempty"`
	NotificationOption string          `json:"NotificationOption,omitempty"`
	SessionID          string          `json:"SessionId,omitempty"`
	PaymentMethodID    int             `json:"PaymentMethodId,omitempty"`
	InvoiceItems       []*InvoiceItem  `json:"InvoiceItems,omitempty"`
}

// InvoiceItem is a single line item. Weight and dimensions are expressed in
// the account defaults (kg / cm).
type InvoiceItem struct {
	ItemName  string          `json:"ItemName"`
	Quantity  int             `json:"Quantity"`
	UnitPrice decimal.Decimal `json:"UnitPrice"`
	Weight    float64         `json:"Weight,omitempty"`
	Width     float64         `json:"Width,omitempty"`
	Height    float64         `json:"Height,omitempty"`
	Depth     float64         `json:"Depth,omitempty"`
}

// PaymentLink is the normalized result of any of the three invoice-creation
// endpoints. The upstream variants name the URL field differently
// (PaymentURL vs InvoiceURL); that naming never leaks past the builder.
type PaymentLink struct {
	InvoiceURL string `json:"invoiceURL"`
	InvoiceID  int64  `json:"invoiceId"`
}
