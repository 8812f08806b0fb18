// File: internal/infra/mfapi/client.go
package mfapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"myfatoorah-checkout/internal/domain"
	"myfatoorah-checkout/internal/infra/logging"
	"myfatoorah-checkout/internal/infra/metrics"
)

// genericConfigError is returned when the upstream answers with a body that
// cannot be interpreted at all, which in practice means a misconfigured
// account or token.
const genericConfigError = "Kindly, review your MyFatoorah admin configuration due to a wrong entry."

var (
	tagRe = regexp.MustCompile(`<[^>]*>`)
	wsRe  = regexp.MustCompile(`\s+`)
)

// Client issues signed JSON calls against the gateway REST API and unifies
// failure semantics: transport failures surface as *domain.TransportError,
// anything the upstream flags or implies as an error surfaces as
// *domain.APIError. Single attempt, no retry, no backoff.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     *zerolog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zerolog.Logger) *Client {
	l := logger.With().Str("component", "mfapi").Logger()
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		httpc:   &http.Client{Timeout: timeout},
		log:     &l,
	}
}

// Call performs one API request. A nil body issues a GET, anything else is
// POSTed as JSON. The raw response body is returned on success.
func (c *Client) Call(ctx context.Context, operation, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, operation, path, body, false)
}

// CallSensitive behaves like Call but never logs request or response bodies;
// only metadata. Used for calls carrying raw card data.
func (c *Client) CallSensitive(ctx context.Context, operation, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, operation, path, body, true)
}

func (c *Client) do(ctx context.Context, operation, path string, body any, sensitive bool) (json.RawMessage, error) {
	log := logging.With(ctx, c.log)
	url := c.baseURL + path
	method := http.MethodGet

	var reqBody io.Reader
	var fields []byte
	if body != nil {
		method = http.MethodPost
		var err error
		fields, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(fields)
	}

	if sensitive {
		log.Info().Str("operation", operation).Str("method", method).Str("url", url).Msg("request (body withheld)")
	} else {
		log.Info().Str("operation", operation).Str("method", method).Str("url", url).RawJSON("request", orNull(fields)).Msg("request")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	latency := int(time.Since(start).Milliseconds())
	if err != nil {
		metrics.ObserveAPICall(operation, "transport_error", latency)
		log.Error().Str("operation", operation).Err(err).Msg("transport failure")
		return nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveAPICall(operation, "transport_error", latency)
		log.Error().Str("operation", operation).Err(err).Msg("read response failure")
		return nil, &domain.TransportError{Err: err}
	}

	if sensitive {
		log.Info().Str("operation", operation).Int("status", resp.StatusCode).Int("bytes", len(raw)).Msg("response (body withheld)")
	} else {
		log.Info().Str("operation", operation).Int("status", resp.StatusCode).Str("response", string(raw)).Msg("response")
	}

	if msg := classifyError(raw); msg != "" {
		metrics.ObserveAPICall(operation, "api_error", latency)
		log.Error().Str("operation", operation).Str("error", msg).Msg("api error")
		return nil, &domain.APIError{Message: msg}
	}

	metrics.ObserveAPICall(operation, "ok", latency)
	return raw, nil
}

type fieldError struct {
	Name  string `json:"Name"`
	Error string `json:"Error"`
}

type envelope struct {
	IsSuccess        *bool           `json:"IsSuccess"`
	Message          string          `json:"Message"`
	ValidationErrors []fieldError    `json:"ValidationErrors"`
	FieldsErrors     []fieldError    `json:"FieldsErrors"`
	Data             json.RawMessage `json:"Data"`
}

// classifyError extracts a human-readable error message from a response body,
// or "" when the body is a success. The evaluation order is fixed and mirrors
// the upstream contract exactly; see the package tests for the full matrix.
func classifyError(raw []byte) string {
	var v any
	parsed := json.Unmarshal(raw, &v) == nil && v != nil

	// Explicit success flag short-circuits everything else.
	obj, isObj := v.(map[string]any)
	if isObj {
		if ok, has := obj["IsSuccess"].(bool); has && ok {
			return ""
		}
	}

	// Fronting proxies answer HTML error pages (e.g. "403 Forbidden" from an
	// application gateway). A body that changes under tag stripping is markup.
	s := string(raw)
	if stripped := tagRe.ReplaceAllString(s, ""); stripped != s {
		return strings.TrimSpace(wsRe.ReplaceAllString(stripped, " "))
	}

	if isObj {
		var env envelope
		if json.Unmarshal(raw, &env) == nil {
			if msg := joinFieldErrors(env); msg != "" {
				return msg
			}
			if len(env.Data) > 0 {
				var d struct {
					ErrorMessage string `json:"ErrorMessage"`
				}
				if json.Unmarshal(env.Data, &d) == nil && d.ErrorMessage != "" {
					return d.ErrorMessage
				}
			}
			// Some errors carry only a Message, e.g. routing failures or
			// ValidationErrors rows with a null Error value.
			if env.Message != "" {
				return env.Message
			}
		}
	}

	if !parsed {
		if len(bytes.TrimSpace(raw)) > 0 {
			return s
		}
		return genericConfigError
	}

	if str, ok := v.(string); ok {
		if str != "" {
			return str
		}
		return genericConfigError
	}

	// Arrays, numbers and objects without error markers are successes.
	return ""
}

func joinFieldErrors(env envelope) string {
	fes := env.ValidationErrors
	if len(fes) == 0 {
		fes = env.FieldsErrors
	}
	if len(fes) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(fes))
	for _, fe := range fes {
		pairs = append(pairs, fmt.Sprintf("%s: %s", fe.Name, fe.Error))
	}
	return strings.Join(pairs, ", ")
}

func orNull(b []byte) []byte {
	if len(b) == 0 {
		return []byte("null")
	}
	return b
}
