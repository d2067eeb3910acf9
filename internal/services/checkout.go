package services

import (
	"context"
	"strings"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/apperrors"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/logger"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/payment"
)

type CheckoutService struct {
	processor payment.Processor
}

func NewCheckoutService(processor payment.Processor) *CheckoutService {
	return &CheckoutService{processor: processor}
}

// CreateSession starts a hosted checkout for one application fee and
// returns the redirect URL. subjectEmail fills a missing customer email.
func (s *CheckoutService) CreateSession(ctx context.Context, req models.CheckoutSessionRequest, subjectEmail string) (string, error) {
	if strings.TrimSpace(req.ID) == "" {
		return "", apperrors.NewBadRequestError("Application id is required")
	}
	if req.ApplicationFee <= 0 {
		return "", apperrors.NewBadRequestError("Invalid application fee")
	}
	if strings.TrimSpace(req.Email) == "" {
		req.Email = subjectEmail
	}

	url, err := s.processor.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		ApplicationID:   req.ID,
		Email:           req.Email,
		ScholarshipName: req.ScholarshipName,
		ApplicationFee:  float64(req.ApplicationFee),
	})
	if err != nil {
		return "", apperrors.NewUpstreamError("Payment processor error", err)
	}

	logger.Info().Str("applicationId", req.ID).Str("email", req.Email).Msg("checkout session created")
	return url, nil
}
