package payment_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pawhaven/pawhaven/pkg/payment"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{10, 1000},
		{10.00, 1000},
		{0.5, 50},
		{19.99, 1999},
		{0.1, 10},
		{12.34, 1234},
	}
	for _, c := range cases {
		if got := payment.MinorUnits(c.amount); got != c.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", c.amount, got, c.want)
		}
	}
}

func TestStripeCreateIntent(t *testing.T) {
	var gotAuth, gotAmount, gotCurrency, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/payment_intents" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotAuth = r.Header.Get("Authorization")
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")
		gotMethod = r.PostForm.Get("payment_method_types[]")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_456"}`))
	}))
	defer srv.Close()

	gw := payment.NewStripeWithBase("sk_test_abc", srv.URL)
	secret, err := gw.CreateIntent(context.Background(), payment.MinorUnits(10.00), "usd")
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}

	if secret != "pi_123_secret_456" {
		t.Errorf("unexpected client secret %q", secret)
	}
	if gotAuth != "Bearer sk_test_abc" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotAmount != "1000" {
		t.Errorf("10.00 should be sent as 1000 cents, got %q", gotAmount)
	}
	if gotCurrency != "usd" {
		t.Errorf("unexpected currency %q", gotCurrency)
	}
	if gotMethod != "card" {
		t.Errorf("unexpected payment method %q", gotMethod)
	}
}

func TestStripeCreateIntentUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	gw := payment.NewStripeWithBase("sk_test_abc", srv.URL)
	_, err := gw.CreateIntent(context.Background(), 1000, "usd")
	if !errors.Is(err, payment.ErrGateway) {
		t.Errorf("expected ErrGateway, got %v", err)
	}
}

func TestStripeCreateIntentMissingSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123"}`))
	}))
	defer srv.Close()

	gw := payment.NewStripeWithBase("sk_test_abc", srv.URL)
	if _, err := gw.CreateIntent(context.Background(), 1000, "usd"); !errors.Is(err, payment.ErrGateway) {
		t.Errorf("expected ErrGateway, got %v", err)
	}
}
