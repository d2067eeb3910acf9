package handlers

import (
	"context"
	"net/http"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/middleware"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
)

type CheckoutService interface {
	CreateSession(ctx context.Context, req models.CheckoutSessionRequest, subjectEmail string) (string, error)
}

type CheckoutHandler struct {
	service CheckoutService
}

func NewCheckoutHandler(service CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// CreateCheckoutSession handles POST /create-checkout-sessions
func (h *CheckoutHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	url, err := h.service.CreateSession(r.Context(), req, middleware.SubjectEmail(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
