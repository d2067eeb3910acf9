// Package payment creates hosted checkout sessions at the payment processor.
package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

const currencyUSD = "usd"

// CheckoutRequest describes one payment attempt for an application.
type CheckoutRequest struct {
	ApplicationID   string
	Email           string
	ScholarshipName string
	ApplicationFee  float64
}

// Processor starts a checkout and returns the redirect URL.
type Processor interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error)
}

// sessionCreator is satisfied by session.Client.
type sessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type StripeProcessor struct {
	sessions   sessionCreator
	siteDomain string
}

func NewStripeProcessor(secretKey, siteDomain string) *StripeProcessor {
	return &StripeProcessor{
		sessions:   session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		siteDomain: siteDomain,
	}
}

// ToMinorUnits converts a decimal amount to cents, truncating sub-cent
// remainders. The epsilon absorbs binary float error (19.99*100 = 1998.999…).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Trunc(amount*100 + 1e-6))
}

// SuccessURL is where the processor sends the payer after paying.
func SuccessURL(siteDomain, applicationID string) string {
	return fmt.Sprintf("%s/dashboard/payment-success/%s", siteDomain, applicationID)
}

// CancelURL is where the processor sends the payer after cancelling.
func CancelURL(siteDomain string) string {
	return siteDomain + "/dashboard/payment-cancelled"
}

func (p *StripeProcessor) sessionParams(ctx context.Context, req CheckoutRequest) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currencyUSD),
					UnitAmount: stripe.Int64(ToMinorUnits(req.ApplicationFee)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ScholarshipName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(req.Email),
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(SuccessURL(p.siteDomain, req.ApplicationID)),
		CancelURL:     stripe.String(CancelURL(p.siteDomain)),
	}
	params.AddMetadata("applicationId", req.ApplicationID)
	params.Context = ctx
	return params
}

func (p *StripeProcessor) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	s, err := p.sessions.New(p.sessionParams(ctx, req))
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.URL, nil
}
