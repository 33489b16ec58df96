// Package payments creates Stripe Checkout sessions for the storefront.
package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// productName is the single storefront item.
const productName = "T-shirt"

// Checkout is a created hosted checkout session.
type Checkout struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutCreator starts a hosted checkout.
type CheckoutCreator interface {
	CreateCheckout(ctx context.Context, amountCents int64) (*Checkout, error)
}

// StripeCheckout creates card checkout sessions through the Stripe API.
type StripeCheckout struct {
	api        *client.API
	successURL string
	cancelURL  string
}

// NewStripeCheckout returns a checkout client for the given secret key.
// Returns nil when the key is empty so callers can disable payments.
func NewStripeCheckout(secretKey, successURL, cancelURL string) *StripeCheckout {
	if secretKey == "" {
		return nil
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeCheckout{api: api, successURL: successURL, cancelURL: cancelURL}
}

// CreateCheckout starts a one-item card checkout session priced at
// amountCents USD and returns its id and hosted payment page URL.
func (c *StripeCheckout) CreateCheckout(ctx context.Context, amountCents int64) (*Checkout, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("payments: amount must be positive, got %d", amountCents)
	}
	params := checkoutParams(amountCents, c.successURL, c.cancelURL)
	params.Context = ctx
	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("payments: create checkout session: %w", err)
	}
	return &Checkout{ID: sess.ID, URL: sess.URL}, nil
}

func checkoutParams(amountCents int64, successURL, cancelURL string) *stripe.CheckoutSessionParams {
	return &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(productName),
				},
				UnitAmount: stripe.Int64(amountCents),
			},
			Quantity: stripe.Int64(1),
		}},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
}
