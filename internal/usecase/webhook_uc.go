package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"myfatoorah-checkout/internal/domain/model"
	"myfatoorah-checkout/internal/infra/metrics"
)

// transactionStatusChanged is the event class whose canonical form omits the
// GatewayReference field.
const transactionStatusChanged = 2

// WebhookUseCase authenticates inbound webhook deliveries.
type WebhookUseCase interface {
	// Verify reports whether signature matches the HMAC-SHA256 of the
	// event's canonical form under the configured secret.
	Verify(event *model.WebhookEvent, signature string) bool
}

var _ WebhookUseCase = (*webhookUC)(nil)

type webhookUC struct {
	secret string
	log    *zerolog.Logger
}

func NewWebhookUseCase(secret string, logger *zerolog.Logger) WebhookUseCase {
	return &webhookUC{secret: secret, log: logger}
}

func (w *webhookUC) Verify(event *model.WebhookEvent, signature string) bool {
	if w.secret == "" || signature == "" {
		metrics.IncWebhookVerification("invalid")
		return false
	}
	canonical := Canonical(event.Data, event.EventType)

	mac := hmac.New(sha256.New, []byte(w.secret))
	mac.Write([]byte(canonical))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(want), []byte(signature)) {
		w.log.Warn().Int("event_type", event.EventType).Msg("webhook signature mismatch")
		metrics.IncWebhookVerification("invalid")
		return false
	}
	metrics.IncWebhookVerification("valid")
	return true
}

// Canonical serializes webhook fields the way the sender signs them:
// "k=v" pairs joined with commas, keys sorted case-insensitively while
// keeping their original casing. Any deviation here breaks interoperability,
// so the form has no implementation freedom.
func Canonical(fields map[string]string, eventType int) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if eventType == transactionStatusChanged && k == "GatewayReference" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := strings.ToLower(keys[i]), strings.ToLower(keys[j])
		if li != lj {
			return li < lj
		}
		return keys[i] < keys[j]
	})

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
	}
	return b.String()
}
