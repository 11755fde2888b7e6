package payment

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/pawhaven/pawhaven/pkg/httpclient"
	"github.com/pawhaven/pawhaven/pkg/metrics"
)

const stripeAPIBase = "https://api.stripe.com"

// Stripe is the production Gateway. It speaks the form-encoded Stripe REST
// API directly through the shared HTTP client.
type Stripe struct {
	secretKey string
	baseURL   string
}

// NewStripe builds a Stripe gateway with the given secret key.
func NewStripe(secretKey string) *Stripe {
	return &Stripe{secretKey: secretKey, baseURL: stripeAPIBase}
}

// NewStripeWithBase is used by tests to point at a stub server.
func NewStripeWithBase(secretKey, baseURL string) *Stripe {
	return &Stripe{secretKey: secretKey, baseURL: baseURL}
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// CreateIntent asks Stripe for a card payment intent and returns its
// client secret.
func (s *Stripe) CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (string, error) {
	form := url.Values{
		"amount":                 {strconv.FormatInt(amountMinorUnits, 10)},
		"currency":               {currency},
		"payment_method_types[]": {"card"},
	}

	resp, err := httpclient.Post(s.baseURL+"/v1/payment_intents").
		Bearer(s.secretKey).
		Form(form).
		Timeout(15 * time.Second).
		WithContext(ctx).
		Send()
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if err := resp.Throw(); err != nil {
		metrics.PaymentIntents.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	var out intentResponse
	if err := resp.JSON(&out); err != nil {
		metrics.PaymentIntents.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if out.ClientSecret == "" {
		metrics.PaymentIntents.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: empty client secret", ErrGateway)
	}

	metrics.PaymentIntents.WithLabelValues("ok").Inc()
	return out.ClientSecret, nil
}

var _ Gateway = (*Stripe)(nil)
