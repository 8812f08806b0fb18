//go:build !integration

package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"myfatoorah-checkout/internal/domain"
	"myfatoorah-checkout/internal/domain/model"
	"myfatoorah-checkout/internal/domain/ports/adapter"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// =============================
// Adapters
// =============================

// ---- Mock GatewayAPI ----

// MockGatewayAPI records calls and delegates to overridable Func fields.
type MockGatewayAPI struct {
	mu    sync.Mutex
	Calls []string

	InitiatePaymentFunc        func(ctx context.Context, amount decimal.Decimal, currencyISO string) ([]*model.PaymentMethod, error)
	CurrencyRatesFunc          func(ctx context.Context) ([]model.CurrencyRate, error)
	SendPaymentFunc            func(ctx context.Context, req *model.InvoiceRequest) (*model.PaymentLink, error)
	ExecutePaymentFunc         func(ctx context.Context, req *model.InvoiceRequest) (*model.PaymentLink, error)
	InitiateSessionFunc        func(ctx context.Context, customerIdentifier string) (*model.EmbeddedSession, error)
	RegisterApplePayDomainFunc func(ctx context.Context, siteURL string) error
}

var _ adapter.GatewayAPI = (*MockGatewayAPI)(nil)

func (m *MockGatewayAPI) record(name string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, name)
	m.mu.Unlock()
}

func (m *MockGatewayAPI) InitiatePayment(ctx context.Context, amount decimal.Decimal, currencyISO string) ([]*model.PaymentMethod, error) {
	m.record("InitiatePayment")
	if m.InitiatePaymentFunc != nil {
		return m.InitiatePaymentFunc(ctx, amount, currencyISO)
	}
	return nil, nil
}

func (m *MockGatewayAPI) CurrencyRates(ctx context.Context) ([]model.CurrencyRate, error) {
	m.record("CurrencyRates")
	if m.CurrencyRatesFunc != nil {
		return m.CurrencyRatesFunc(ctx)
	}
	return nil, nil
}

func (m *MockGatewayAPI) SendPayment(ctx context.Context, req *model.InvoiceRequest) (*model.PaymentLink, error) {
	m.record("SendPayment")
	if m.SendPaymentFunc != nil {
		return m.SendPaymentFunc(ctx, req)
	}
	return &model.PaymentLink{}, nil
}

func (m *MockGatewayAPI) ExecutePayment(ctx context.Context, req *model.InvoiceRequest) (*model.PaymentLink, error) {
	m.record("ExecutePayment")
	if m.ExecutePaymentFunc != nil {
		return m.ExecutePaymentFunc(ctx, req)
	}
	return &model.PaymentLink{}, nil
}

func (m *MockGatewayAPI) InitiateSession(ctx context.Context, customerIdentifier string) (*model.EmbeddedSession, error) {
	m.record("InitiateSession")
	if m.InitiateSessionFunc != nil {
		return m.InitiateSessionFunc(ctx, customerIdentifier)
	}
	return &model.EmbeddedSession{}, nil
}

func (m *MockGatewayAPI) RegisterApplePayDomain(ctx context.Context, siteURL string) error {
	m.record("RegisterApplePayDomain")
	if m.RegisterApplePayDomainFunc != nil {
		return m.RegisterApplePayDomainFunc(ctx, siteURL)
	}
	return nil
}

// ---- Mock CacheStore ----

// MockCacheStore is an in-memory single-slot store with a settable ModTime so
// tests control staleness directly.
type MockCacheStore struct {
	mu      sync.Mutex
	Blobs   map[string][]byte
	ModTime map[string]time.Time
	Writes  int
}

var _ adapter.CacheStore = (*MockCacheStore)(nil)

func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		Blobs:   map[string][]byte{},
		ModTime: map[string]time.Time{},
	}
}

func (m *MockCacheStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Blobs[key]
	return ok, nil
}

func (m *MockCacheStore) ReadAll(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.Blobs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return blob, nil
}

func (m *MockCacheStore) WriteAll(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Blobs[key] = blob
	m.ModTime[key] = time.Now()
	m.Writes++
	return nil
}

func (m *MockCacheStore) LastModified(_ context.Context, key string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.ModTime[key]
	if !ok {
		return time.Time{}, domain.ErrNotFound
	}
	return t, nil
}

// =============================
// Shared fixtures
// =============================

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// testRates marks KWD as the account base currency.
func testRates() []model.CurrencyRate {
	return []model.CurrencyRate{
		{Code: "KWD", Rate: dec("1")},
		{Code: "SAR", Rate: dec("12.502")},
		{Code: "USD", Rate: dec("3.314")},
		{Code: "EGP", Rate: dec("50.982")},
	}
}

func method(id int, code, invoiceCur, settleCur string, total string, embedded, direct bool) *model.PaymentMethod {
	return &model.PaymentMethod{
		PaymentMethodID:     id,
		PaymentMethodCode:   code,
		PaymentMethodEn:     code,
		IsEmbeddedSupported: embedded,
		IsDirectPayment:     direct,
		TotalAmount:         dec(total),
		CurrencyIso:         invoiceCur,
		PaymentCurrencyIso:  settleCur,
	}
}
