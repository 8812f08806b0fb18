package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"myfatoorah-checkout/internal/infra/mfapi"
	"myfatoorah-checkout/internal/usecase"
)

// RefreshWorker keeps the two shared cache slots warm: the raw gateway list
// and the country endpoint config. A failed refresh leaves the previous blob
// in place, so the worker only logs and waits for the next tick.
type RefreshWorker struct {
	interval  time.Duration
	catalogUC usecase.CatalogUseCase
	countries *mfapi.CountryResolver
	log       *zerolog.Logger
}

func NewRefreshWorker(interval time.Duration, catalogUC usecase.CatalogUseCase, countries *mfapi.CountryResolver, logger *zerolog.Logger) *RefreshWorker {
	compLog := logger.With().Str("component", "RefreshWorker").Logger()
	return &RefreshWorker{
		interval:  interval,
		catalogUC: catalogUC,
		countries: countries,
		log:       &compLog,
	}
}

func (w *RefreshWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting refresh worker")
	// Warm both slots once on startup, then on every tick
	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping refresh worker")
			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	if _, err := w.catalogUC.List(ctx, decimal.Zero, "", true); err != nil {
		w.log.Error().Err(err).Msg("gateway list refresh failed")
	}
	if err := w.countries.Refresh(ctx); err != nil {
		w.log.Error().Err(err).Msg("country config refresh failed")
	}
}
