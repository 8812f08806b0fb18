package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"myfatoorah-checkout/internal/config"
	"myfatoorah-checkout/internal/infra/logging"
	"myfatoorah-checkout/internal/usecase"
)

type Server struct {
	checkoutUC usecase.CheckoutUseCase
	rateUC     usecase.RateUseCase
	invoiceUC  usecase.InvoiceUseCase
	webhookUC  usecase.WebhookUseCase
	auth       *AuthManager
	apiKey     string
	log        *zerolog.Logger
}

func NewServer(
	checkoutUC usecase.CheckoutUseCase,
	rateUC usecase.RateUseCase,
	invoiceUC usecase.InvoiceUseCase,
	webhookUC usecase.WebhookUseCase,
	cfg *config.ServerConfig,
	secureCookies bool,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		checkoutUC: checkoutUC,
		rateUC:     rateUC,
		invoiceUC:  invoiceUC,
		webhookUC:  webhookUC,
		auth:       NewAuthManager(cfg.SessionSecret, secureCookies, cfg.SessionTTL),
		apiKey:     cfg.AdminAPIKey,
		log:        logger,
	}
}

// Router wires the public surface: health and metrics are open, the webhook
// authenticates itself through its signature, everything under /api/v1 except
// login sits behind the admin auth middleware.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", healthHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/webhook/myfatoorah", webhookHandler(s.webhookUC, s.log))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", loginHandler(s.auth, s.apiKey, s.log))
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/checkout/gateways", gatewaysHandler(s.checkoutUC))
			r.Get("/currencies", currenciesHandler(s.rateUC))
			r.Post("/invoices", invoicesHandler(s.invoiceUC))
		})
	})
	return r
}

// authMiddleware admits either a valid session JWT or the raw admin API key
// as a bearer token.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("Admin API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		if _, err := s.auth.ParseFromRequest(r); err == nil {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			http.Error(w, "Unauthorized: Malformed token", http.StatusUnauthorized)
			return
		}
		if tokenParts[1] != s.apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r = r.WithContext(logging.WithTraceID(r.Context(), middleware.GetReqID(r.Context())))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}
