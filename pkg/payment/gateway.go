// Package payment talks to the external payment gateway. The core only
// ever asks for a payment intent: the opaque client secret goes back to
// the front end, which completes the charge on its own; charge status is
// never polled here.
package payment

import (
	"context"
	"errors"
	"math"
)

// ErrGateway wraps any upstream failure from the payment provider.
var ErrGateway = errors.New("payment: gateway error")

// Gateway creates payment intents. Amounts are integer minor currency
// units (cents).
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (clientSecret string, err error)
}

// MinorUnits converts a decimal amount into integer minor units,
// e.g. 10.00 → 1000. Rounded to the nearest cent.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
