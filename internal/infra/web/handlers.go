package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"myfatoorah-checkout/internal/domain"
	"myfatoorah-checkout/internal/domain/model"
	"myfatoorah-checkout/internal/infra/metrics"
	"myfatoorah-checkout/internal/usecase"
)

// signatureHeader carries the webhook HMAC set by the upstream sender.
const signatureHeader = "MyFatoorah-Signature"

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type loginRequest struct {
	APIKey string `json:"api_key"`
}

// loginHandler exchanges the admin API key for a short-lived session cookie.
func loginHandler(auth *AuthManager, apiKey string, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if apiKey == "" || req.APIKey != apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		token, err := auth.Mint(w)
		if err != nil {
			log.Error().Err(err).Msg("session mint failed")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

// gatewaysHandler serves the bucketed checkout list for an invoice amount.
// Both query parameters are optional; a zero amount enumerates methods
// without charging context.
func gatewaysHandler(checkoutUC usecase.CheckoutUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		amount := decimal.Zero
		if raw := r.URL.Query().Get("amount"); raw != "" {
			var err error
			if amount, err = decimal.NewFromString(raw); err != nil {
				http.Error(w, "Invalid amount", http.StatusBadRequest)
				return
			}
		}
		currency := r.URL.Query().Get("currency")

		buckets, err := checkoutUC.Gateways(ctx, amount, currency)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, buckets)
	}
}

func currenciesHandler(rateUC usecase.RateUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rates, err := rateUC.Rates(r.Context())
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		response := struct {
			Data []model.CurrencyRate `json:"data"`
		}{Data: rates}
		writeJSON(w, http.StatusOK, response)
	}
}

type invoiceCreateRequest struct {
	model.InvoiceRequest
	Gateway string `json:"Gateway"`
}

func invoicesHandler(invoiceUC usecase.InvoiceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req invoiceCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.InvoiceValue.LessThanOrEqual(decimal.Zero) {
			http.Error(w, "InvoiceValue must be positive", http.StatusBadRequest)
			return
		}

		link, err := invoiceUC.CreateInvoice(ctx, &req.InvoiceRequest, req.Gateway)
		if err != nil {
			if errors.Is(err, domain.ErrPaymentMethodNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, link)
	}
}

// webhookHandler authenticates inbound deliveries through their signature;
// there is no other caller identity to check.
func webhookHandler(webhookUC usecase.WebhookUseCase, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deliveryID := uuid.NewString()
		l := log.With().Str("delivery_id", deliveryID).Logger()

		var event model.WebhookEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			metrics.IncWebhookVerification("malformed")
			l.Warn().Err(err).Msg("malformed webhook body")
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if !webhookUC.Verify(&event, r.Header.Get(signatureHeader)) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		l.Info().Int("event_type", event.EventType).Str("event", event.Event).Msg("webhook accepted")
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeUpstreamError maps the error taxonomy onto HTTP statuses: caller
// mistakes are 4xx, anything the gateway rejected or lost is 502.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *domain.APIError
	var transportErr *domain.TransportError
	switch {
	case errors.Is(err, domain.ErrUnsupportedCurrency), errors.Is(err, domain.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &apiErr):
		http.Error(w, apiErr.Message, http.StatusBadGateway)
	case errors.As(err, &transportErr):
		http.Error(w, "Upstream gateway unreachable", http.StatusBadGateway)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
