//go:build !integration

package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"myfatoorah-checkout/internal/config"
	"myfatoorah-checkout/internal/domain/model"
	"myfatoorah-checkout/internal/infra/web"
	"myfatoorah-checkout/internal/usecase"
)

func newTestServer(checkoutUC usecase.CheckoutUseCase, rateUC usecase.RateUseCase, invoiceUC usecase.InvoiceUseCase) *httptest.Server {
	cfg := &config.ServerConfig{
		AdminAPIKey:   "admin-key",
		SessionSecret: "session-secret",
		SessionTTL:    time.Minute,
		WebhookSecret: "mykey",
	}
	srv := web.NewServer(checkoutUC, rateUC, invoiceUC, usecase.NewWebhookUseCase(cfg.WebhookSecret, testLogger()), cfg, false, testLogger())
	return httptest.NewServer(srv.Router())
}

func defaultMocks() (*MockCheckoutUC, *MockRateUC, *MockInvoiceUC) {
	checkoutUC := &MockCheckoutUC{
		GatewaysFunc: func(_ context.Context, amount decimal.Decimal, currencyISO string) (*model.CheckoutGateways, error) {
			return &model.CheckoutGateways{All: []*model.PaymentMethod{}}, nil
		},
	}
	rateUC := &MockRateUC{
		RatesFunc: func(_ context.Context) ([]model.CurrencyRate, error) {
			return []model.CurrencyRate{{Code: "KWD", Rate: decimal.NewFromInt(1)}}, nil
		},
	}
	invoiceUC := &MockInvoiceUC{
		CreateInvoiceFunc: func(_ context.Context, req *model.InvoiceRequest, gateway string) (*model.PaymentLink, error) {
			return &model.PaymentLink{InvoiceURL: "https://pay/1", InvoiceID: 1}, nil
		},
	}
	return checkoutUC, rateUC, invoiceUC
}

func TestHealth(t *testing.T) {
	ts := newTestServer(defaultMocks())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestServer(defaultMocks())
	defer ts.Close()
	client := ts.Client()

	// No credentials.
	resp, _ := client.Get(ts.URL + "/api/v1/currencies")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Wrong key.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/currencies", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("wrong key: status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Raw admin key as bearer token.
	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/api/v1/currencies", nil)
	req.Header.Set("Authorization", "Bearer admin-key")
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin key: status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLoginIssuesSession(t *testing.T) {
	ts := newTestServer(defaultMocks())
	defer ts.Close()
	client := ts.Client()

	resp, err := client.Post(ts.URL+"/api/v1/auth/login", "application/json",
		strings.NewReader(`{"api_key":"admin-key"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status = %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Token == "" {
		t.Fatalf("login: token missing (%v)", err)
	}

	// The minted JWT admits API calls.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/currencies", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	resp2, err2 := client.Do(req)
	if err2 != nil {
		t.Fatalf("jwt: %v", err2)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("jwt: status = %d", resp2.StatusCode)
	}

	// Wrong api key is rejected.
	resp3, err3 := client.Post(ts.URL+"/api/v1/auth/login", "application/json",
		strings.NewReader(`{"api_key":"nope"}`))
	if err3 != nil {
		t.Fatalf("bad login: %v", err3)
	}
	defer resp3.Body.Close()
	if resp3.StatusCode != http.StatusForbidden {
		t.Fatalf("bad login: status = %d", resp3.StatusCode)
	}
}

func TestGatewaysEndpoint(t *testing.T) {
	checkoutUC, rateUC, invoiceUC := defaultMocks()
	var gotAmount decimal.Decimal
	var gotCurrency string
	checkoutUC.GatewaysFunc = func(_ context.Context, amount decimal.Decimal, currencyISO string) (*model.CheckoutGateways, error) {
		gotAmount, gotCurrency = amount, currencyISO
		return &model.CheckoutGateways{}, nil
	}
	ts := newTestServer(checkoutUC, rateUC, invoiceUC)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/checkout/gateways?amount=21.5&currency=KWD", nil)
	req.Header.Set("Authorization", "Bearer admin-key")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("gateways: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !gotAmount.Equal(decimal.RequireFromString("21.5")) || gotCurrency != "KWD" {
		t.Fatalf("forwarded %s %s", gotAmount, gotCurrency)
	}

	// Unparsable amount.
	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/api/v1/checkout/gateways?amount=abc", nil)
	req.Header.Set("Authorization", "Bearer admin-key")
	resp2, err2 := ts.Client().Do(req)
	if err2 != nil {
		t.Fatalf("bad amount: %v", err2)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad amount: status = %d", resp2.StatusCode)
	}
}

func TestWebhookEndpoint(t *testing.T) {
	ts := newTestServer(defaultMocks())
	defer ts.Close()
	client := ts.Client()

	// Signature precomputed for canonical "A=1,b=2" with secret "mykey".
	body := `{"EventType":1,"Event":"TransactionsStatusChanged","Data":{"A":"1","b":"2"}}`
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/webhook/myfatoorah", strings.NewReader(body))
	req.Header.Set("MyFatoorah-Signature", "jkEYi+gmXmvZqoEdJz+c2B/hBAhdBDund0JaNuSYhig=")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("webhook: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("valid signature: status = %d", resp.StatusCode)
	}

	// Tampered signature.
	req, _ = http.NewRequest(http.MethodPost, ts.URL+"/webhook/myfatoorah", strings.NewReader(body))
	req.Header.Set("MyFatoorah-Signature", "xkEYi+gmXmvZqoEdJz+c2B/hBAhdBDund0JaNuSYhig=")
	resp2, err2 := client.Do(req)
	if err2 != nil {
		t.Fatalf("tampered signature: %v", err2)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Fatalf("tampered signature: status = %d", resp2.StatusCode)
	}

	// Malformed body.
	req, _ = http.NewRequest(http.MethodPost, ts.URL+"/webhook/myfatoorah", strings.NewReader("{not json"))
	resp3, err3 := client.Do(req)
	if err3 != nil {
		t.Fatalf("malformed body: %v", err3)
	}
	defer resp3.Body.Close()
	if resp3.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed body: status = %d", resp3.StatusCode)
	}
}

func TestInvoicesEndpoint(t *testing.T) {
	checkoutUC, rateUC, invoiceUC := defaultMocks()
	var gotGateway string
	invoiceUC.CreateInvoiceFunc = func(_ context.Context, req *model.InvoiceRequest, gateway string) (*model.PaymentLink, error) {
		gotGateway = gateway
		return &model.PaymentLink{InvoiceURL: "https://pay/7", InvoiceID: 7}, nil
	}
	ts := newTestServer(checkoutUC, rateUC, invoiceUC)
	defer ts.Close()

	body := `{"InvoiceValue":21.5,"CustomerName":"Ahmed","Gateway":"2"}`
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/invoices", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer admin-key")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("invoices: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if gotGateway != "2" {
		t.Fatalf("gateway = %q", gotGateway)
	}
	var link model.PaymentLink
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil || link.InvoiceID != 7 {
		t.Fatalf("link = %+v (%v)", link, err)
	}

	// Non-positive amount is rejected before any upstream call.
	req, _ = http.NewRequest(http.MethodPost, ts.URL+"/api/v1/invoices", strings.NewReader(`{"InvoiceValue":0}`))
	req.Header.Set("Authorization", "Bearer admin-key")
	resp2, err2 := ts.Client().Do(req)
	if err2 != nil {
		t.Fatalf("zero amount: %v", err2)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("zero amount: status = %d", resp2.StatusCode)
	}
}
