package usecase

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"myfatoorah-checkout/internal/domain"
	"myfatoorah-checkout/internal/domain/model"
	"myfatoorah-checkout/internal/domain/ports/adapter"
	"myfatoorah-checkout/internal/infra/logging"
	"myfatoorah-checkout/internal/infra/metrics"
)

// sourceInfoMarker identifies this integration in the merchant portal's
// invoice audit trail.
const sourceInfoMarker = "myfatoorah-checkout v2"

// gatewaySentinel selects the link-based flow, same as an empty gateway.
const gatewaySentinel = "myfatoorah"

var (
	customerNameRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	markupRe       = regexp.MustCompile(`<[^>]*>`)
)

// InvoiceUseCase assembles and submits payment-creation requests.
type InvoiceUseCase interface {
	// CreateInvoice sanitizes req in place and dispatches it to exactly one
	// of the three creation endpoints: a non-empty SessionId wins, then an
	// empty/"myfatoorah" gateway selects the link flow, and anything else
	// must be a numeric gateway id for direct execution.
	CreateInvoice(ctx context.Context, req *model.InvoiceRequest, gateway string) (*model.PaymentLink, error)
}

var _ InvoiceUseCase = (*invoiceUC)(nil)

type invoiceUC struct {
	api adapter.GatewayAPI
	log *zerolog.Logger
}

func NewInvoiceUseCase(api adapter.GatewayAPI, logger *zerolog.Logger) InvoiceUseCase {
	return &invoiceUC{api: api, log: logger}
}

// PrepareInvoice sanitizes the request in place before transmission.
// CustomerReference doubles as the log-correlation id, so an absent one is
// replaced with a fresh ULID. An empty CustomerEmail becomes nil: the
// upstream API rejects "" as a malformed address instead of treating it as
// absent.
func PrepareInvoice(req *model.InvoiceRequest) {
	if req.CustomerReference == "" {
		req.CustomerReference = ulid.Make().String()
	}
	if req.SourceInfo == "" {
		req.SourceInfo = sourceInfoMarker
	}
	req.CustomerName = customerNameRe.ReplaceAllString(req.CustomerName, "")
	for _, item := range req.InvoiceItems {
		item.ItemName = markupRe.ReplaceAllString(item.ItemName, "")
	}
	if req.CustomerEmail != nil && *req.CustomerEmail == "" {
		req.CustomerEmail = nil
	}
}

func (u *invoiceUC) CreateInvoice(ctx context.Context, req *model.InvoiceRequest, gateway string) (*model.PaymentLink, error) {
	PrepareInvoice(req)
	ctx = logging.WithOrderRef(ctx, req.CustomerReference)
	log := logging.With(ctx, u.log)

	link, err := u.dispatch(ctx, req, gateway)
	if err != nil {
		metrics.IncInvoice("create", "error")
		return nil, err
	}
	metrics.IncInvoice("create", "ok")
	amount, _ := req.InvoiceValue.Float64()
	metrics.AddInvoiceAmount(req.DisplayCurrencyIso, amount)
	log.Info().Int64("invoice_id", link.InvoiceID).Msg("invoice created")
	return link, nil
}

func (u *invoiceUC) dispatch(ctx context.Context, req *model.InvoiceRequest, gateway string) (*model.PaymentLink, error) {
	switch {
	case req.SessionID != "":
		return u.api.ExecutePayment(ctx, req)
	case gateway == "" || strings.EqualFold(gateway, gatewaySentinel):
		if req.NotificationOption == "" {
			req.NotificationOption = "Lnk"
		}
		return u.api.SendPayment(ctx, req)
	default:
		id, err := strconv.Atoi(gateway)
		if err != nil {
			return nil, domain.ErrPaymentMethodNotFound
		}
		req.PaymentMethodID = id
		return u.api.ExecutePayment(ctx, req)
	}
}
