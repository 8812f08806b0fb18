// File: internal/infra/mfapi/countries.go
package mfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"myfatoorah-checkout/internal/domain"
	"myfatoorah-checkout/internal/domain/ports/adapter"
)

const (
	portalConfigURL   = "https://portal.myfatoorah.com/Files/API/mf-config.json"
	countriesCacheKey = "mf:countries"

	liveFallbackURL = "https://api.myfatoorah.com"
	testFallbackURL = "https://apitest.myfatoorah.com"
)

type countryEndpoints struct {
	Portal string `json:"portal"`
	V2     string `json:"v2"`
	TestV2 string `json:"testv2"`
}

// CountryResolver maps a country mode to its regional API base URL using the
// periodically refreshed portal config. The config is held in the shared
// cache store; a refresh failure serves the stale copy.
type CountryResolver struct {
	store adapter.CacheStore
	httpc *http.Client
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewCountryResolver(store adapter.CacheStore, timeout, ttl time.Duration, logger *zerolog.Logger) *CountryResolver {
	l := logger.With().Str("component", "countries").Logger()
	return &CountryResolver{
		store: store,
		httpc: &http.Client{Timeout: timeout},
		ttl:   ttl,
		log:   &l,
	}
}

// BaseURL resolves the API host for a country mode; unknown codes fall back
// to the global live/test hosts.
func (r *CountryResolver) BaseURL(ctx context.Context, countryMode string, isTest bool) string {
	countries := r.countries(ctx)
	if c, ok := countries[strings.ToUpper(countryMode)]; ok {
		if isTest && c.TestV2 != "" {
			return c.TestV2
		}
		if !isTest && c.V2 != "" {
			return c.V2
		}
	}
	if isTest {
		return testFallbackURL
	}
	return liveFallbackURL
}

// Refresh unconditionally re-fetches the portal config into the cache.
func (r *CountryResolver) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, portalConfigURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpc.Do(req)
	if err != nil {
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("portal config fetch: status %d", resp.StatusCode)
	}
	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.TransportError{Err: err}
	}

	var sanity map[string]countryEndpoints
	if err := json.Unmarshal(blob, &sanity); err != nil {
		return fmt.Errorf("portal config parse: %w", err)
	}
	return r.store.WriteAll(ctx, countriesCacheKey, blob)
}

func (r *CountryResolver) countries(ctx context.Context) map[string]countryEndpoints {
	if mod, err := r.store.LastModified(ctx, countriesCacheKey); err != nil || time.Since(mod) > r.ttl {
		if err := r.Refresh(ctx); err != nil {
			r.log.Warn().Err(err).Msg("country config refresh failed, serving stale copy")
		}
	}

	blob, err := r.store.ReadAll(ctx, countriesCacheKey)
	if err != nil {
		return nil
	}
	var countries map[string]countryEndpoints
	if err := json.Unmarshal(blob, &countries); err != nil {
		r.log.Warn().Err(err).Msg("country config cache corrupted")
		return nil
	}
	return countries
}
