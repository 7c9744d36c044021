package admin

import "strings"

const stripeDashboard = "https://dashboard.stripe.com/"

func isStripeTestKey(secret string) bool {
	return strings.Contains(secret, "_test_")
}

// stripeURL links a payment in the Stripe dashboard, or returns "" when the
// order was not paid through Stripe.
func (h *Handler) stripeURL(paymentID string) string {
	if paymentID == "" {
		return ""
	}
	path := "payments/"
	if h.stripeTest {
		path = "test/" + path
	}
	return stripeDashboard + path + paymentID
}
