// File: internal/infra/mfapi/endpoints.go
package mfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"myfatoorah-checkout/internal/domain/model"
	"myfatoorah-checkout/internal/domain/ports/adapter"
)

var _ adapter.GatewayAPI = (*Client)(nil)

func (c *Client) InitiatePayment(ctx context.Context, amount decimal.Decimal, currencyISO string) ([]*model.PaymentMethod, error) {
	body := struct {
		InvoiceAmount decimal.Decimal `json:"InvoiceAmount"`
		CurrencyIso   string          `json:"CurrencyIso"`
	}{amount, currencyISO}

	raw, err := c.Call(ctx, "Initiate Payment", "/v2/InitiatePayment", body)
	if err != nil {
		return nil, err
	}

	var out struct {
		Data struct {
			PaymentMethods []*model.PaymentMethod `json:"PaymentMethods"`
		} `json:"Data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode initiate payment: %w", err)
	}
	return out.Data.PaymentMethods, nil
}

func (c *Client) CurrencyRates(ctx context.Context) ([]model.CurrencyRate, error) {
	raw, err := c.Call(ctx, "Get Currencies Exchange List", "/v2/GetCurrenciesExchangeList", nil)
	if err != nil {
		return nil, err
	}

	var rates []model.CurrencyRate
	if err := json.Unmarshal(raw, &rates); err != nil {
		return nil, fmt.Errorf("decode currency rates: %w", err)
	}
	return rates, nil
}

func (c *Client) SendPayment(ctx context.Context, req *model.InvoiceRequest) (*model.PaymentLink, error) {
	raw, err := c.Call(ctx, "Send Payment", "/v2/SendPayment", req)
	if err != nil {
		return nil, err
	}

	var out struct {
		Data struct {
			InvoiceURL string `json:"InvoiceURL"`
			InvoiceID  int64  `json:"InvoiceId"`
		} `json:"Data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode send payment: %w", err)
	}
	return &model.PaymentLink{InvoiceURL: out.Data.InvoiceURL, InvoiceID: out.Data.InvoiceID}, nil
}

func (c *Client) ExecutePayment(ctx context.Context, req *model.InvoiceRequest) (*model.PaymentLink, error) {
	raw, err := c.Call(ctx, "Execute Payment", "/v2/ExecutePayment", req)
	if err != nil {
		return nil, err
	}

	var out struct {
		Data struct {
			PaymentURL string `json:"PaymentURL"`
			InvoiceID  int64  `json:"InvoiceId"`
		} `json:"Data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode execute payment: %w", err)
	}
	return &model.PaymentLink{InvoiceURL: out.Data.PaymentURL, InvoiceID: out.Data.InvoiceID}, nil
}

func (c *Client) InitiateSession(ctx context.Context, customerIdentifier string) (*model.EmbeddedSession, error) {
	body := struct {
		CustomerIdentifier string `json:"CustomerIdentifier"`
	}{customerIdentifier}

	raw, err := c.Call(ctx, "Initiate Session", "/v2/InitiateSession", body)
	if err != nil {
		return nil, err
	}

	var out struct {
		Data model.EmbeddedSession `json:"Data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode initiate session: %w", err)
	}
	return &out.Data, nil
}

func (c *Client) RegisterApplePayDomain(ctx context.Context, siteURL string) error {
	u, err := url.Parse(siteURL)
	if err != nil {
		return fmt.Errorf("parse site url: %w", err)
	}
	body := struct {
		DomainName string `json:"DomainName"`
	}{u.Hostname()}

	_, err = c.Call(ctx, "Register Apple Pay Domain", "/v2/RegisterApplePayDomain", body)
	return err
}
