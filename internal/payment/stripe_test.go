package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type fakeSessions struct {
	params *stripe.CheckoutSessionParams
	url    string
	err    error
}

func (f *fakeSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{URL: f.url}, nil
}

func TestToMinorUnits(t *testing.T) {
	cases := map[float64]int64{
		0:       0,
		1:       100,
		12.5:    1250,
		19.99:   1999,
		0.29:    29,
		100.999: 10099,
	}
	for in, want := range cases {
		assert.Equal(t, want, ToMinorUnits(in), "amount %v", in)
	}
}

func TestRedirectURLs(t *testing.T) {
	assert.Equal(t, "https://scholar.example/dashboard/payment-success/abc123", SuccessURL("https://scholar.example", "abc123"))
	assert.Equal(t, "https://scholar.example/dashboard/payment-cancelled", CancelURL("https://scholar.example"))
}

func TestCreateCheckoutSessionBuildsParams(t *testing.T) {
	fake := &fakeSessions{url: "https://checkout.stripe.com/c/pay/cs_test_1"}
	p := &StripeProcessor{sessions: fake, siteDomain: "https://scholar.example"}

	url, err := p.CreateCheckoutSession(context.Background(), CheckoutRequest{
		ApplicationID:   "665f1c2a9b1e8a0012345678",
		Email:           "student@example.com",
		ScholarshipName: "Global Excellence",
		ApplicationFee:  45.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", url)

	params := fake.params
	require.NotNil(t, params)
	require.Len(t, params.LineItems, 1)
	item := params.LineItems[0]
	assert.Equal(t, int64(4550), *item.PriceData.UnitAmount)
	assert.Equal(t, "usd", *item.PriceData.Currency)
	assert.Equal(t, "Global Excellence", *item.PriceData.ProductData.Name)
	assert.Equal(t, int64(1), *item.Quantity)
	assert.Equal(t, "student@example.com", *params.CustomerEmail)
	assert.Equal(t, "payment", *params.Mode)
	assert.Equal(t, "665f1c2a9b1e8a0012345678", params.Metadata["applicationId"])
	assert.Equal(t, "https://scholar.example/dashboard/payment-success/665f1c2a9b1e8a0012345678", *params.SuccessURL)
	assert.Equal(t, "https://scholar.example/dashboard/payment-cancelled", *params.CancelURL)
	assert.NotNil(t, params.Context)
}

func TestCreateCheckoutSessionPropagatesProcessorError(t *testing.T) {
	fake := &fakeSessions{err: errors.New("invalid api key")}
	p := &StripeProcessor{sessions: fake, siteDomain: "https://scholar.example"}

	_, err := p.CreateCheckoutSession(context.Background(), CheckoutRequest{ApplicationID: "x", ApplicationFee: 1})
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid api key")
}
