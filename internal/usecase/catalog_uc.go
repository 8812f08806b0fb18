package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"myfatoorah-checkout/internal/domain"
	"myfatoorah-checkout/internal/domain/model"
	"myfatoorah-checkout/internal/domain/ports/adapter"
	"myfatoorah-checkout/internal/infra/metrics"
)

// methodsCacheKey is the single global slot for the raw gateway list. There is
// no per-currency partitioning; callers needing amount-specific totals must
// bypass the cache.
const methodsCacheKey = "mf:methods"

// CatalogUseCase fetches and caches the account's enabled payment methods.
type CatalogUseCase interface {
	// List calls the initiate-payment endpoint. A zero amount enumerates
	// methods without charging context. When cache is true the raw list is
	// written through to the shared slot (best effort, last writer wins).
	List(ctx context.Context, amount decimal.Decimal, currencyISO string, cache bool) ([]*model.PaymentMethod, error)

	// Cached serves the shared slot while it is fresher than the configured
	// TTL, else triggers a fetch-and-cache with a zero amount.
	Cached(ctx context.Context) ([]*model.PaymentMethod, error)

	// One resolves a single method by numeric id or by code. Returns
	// domain.ErrPaymentMethodNotFound when the account has no such method
	// enabled.
	One(ctx context.Context, gateway string, amount decimal.Decimal, currencyISO string) (*model.PaymentMethod, error)

	// RegisterApplePayDomain registers the site host for the wallet
	// domain-verification flow.
	RegisterApplePayDomain(ctx context.Context, siteURL string) error

	// EmbeddedSession opens an embedded-form session for a customer.
	EmbeddedSession(ctx context.Context, customerIdentifier string) (*model.EmbeddedSession, error)
}

var _ CatalogUseCase = (*catalogUC)(nil)

type catalogUC struct {
	api   adapter.GatewayAPI
	store adapter.CacheStore
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewCatalogUseCase(api adapter.GatewayAPI, store adapter.CacheStore, ttl time.Duration, logger *zerolog.Logger) CatalogUseCase {
	return &catalogUC{api: api, store: store, ttl: ttl, log: logger}
}

func (c *catalogUC) List(ctx context.Context, amount decimal.Decimal, currencyISO string, cache bool) ([]*model.PaymentMethod, error) {
	methods, err := c.api.InitiatePayment(ctx, amount, currencyISO)
	if err != nil {
		return nil, err
	}
	if cache && len(methods) > 0 {
		if blob, mErr := json.Marshal(methods); mErr == nil {
			if wErr := c.store.WriteAll(ctx, methodsCacheKey, blob); wErr != nil {
				c.log.Warn().Err(wErr).Msg("gateway list cache write failed")
			}
		}
	}
	return methods, nil
}

func (c *catalogUC) Cached(ctx context.Context) ([]*model.PaymentMethod, error) {
	mod, err := c.store.LastModified(ctx, methodsCacheKey)
	if err == nil && time.Since(mod) <= c.ttl {
		blob, rErr := c.store.ReadAll(ctx, methodsCacheKey)
		if rErr == nil {
			var methods []*model.PaymentMethod
			uErr := json.Unmarshal(blob, &methods)
			if uErr == nil {
				metrics.IncCacheRequest("methods", "hit")
				return methods, nil
			}
			c.log.Warn().Err(uErr).Msg("gateway list cache blob unreadable, refetching")
		}
	}
	metrics.IncCacheRequest("methods", "miss")
	return c.List(ctx, decimal.Zero, "", true)
}

func (c *catalogUC) One(ctx context.Context, gateway string, amount decimal.Decimal, currencyISO string) (*model.PaymentMethod, error) {
	methods, err := c.List(ctx, amount, currencyISO, false)
	if err != nil {
		return nil, err
	}
	id, idErr := strconv.Atoi(gateway)
	for _, pm := range methods {
		if (idErr == nil && pm.PaymentMethodID == id) || pm.PaymentMethodCode == gateway {
			return pm, nil
		}
	}
	return nil, domain.ErrPaymentMethodNotFound
}

func (c *catalogUC) RegisterApplePayDomain(ctx context.Context, siteURL string) error {
	return c.api.RegisterApplePayDomain(ctx, siteURL)
}

func (c *catalogUC) EmbeddedSession(ctx context.Context, customerIdentifier string) (*model.EmbeddedSession, error) {
	return c.api.InitiateSession(ctx, customerIdentifier)
}
