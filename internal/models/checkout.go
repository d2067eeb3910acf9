package models

// CheckoutSessionRequest is the body of POST /create-checkout-sessions.
type CheckoutSessionRequest struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	ScholarshipName string `json:"scholarshipName"`
	ApplicationFee  Amount `json:"applicationFee"`
}
