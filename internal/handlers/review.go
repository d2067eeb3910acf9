package handlers

import (
	"context"
	"net/http"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/middleware"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
)

type ReviewService interface {
	List(ctx context.Context, email string) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review, subjectEmail string) (*models.InsertResult, error)
	Update(ctx context.Context, id string, patch models.ReviewPatch) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

type ReviewHandler struct {
	service ReviewService
}

func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := decodeJSON(r, &review); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.service.Create(r.Context(), &review, middleware.SubjectEmail(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var patch models.ReviewPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	if len(patch.SetDocument()) == 0 {
		writeError(w, r, errNoFields)
		return
	}

	result, err := h.service.Update(r.Context(), pathVar(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Delete(r.Context(), pathVar(r, "id")); err != nil {
		writeDeleteError(w, r, err)
		return
	}
	writeDeleted(w, "Review Deleted")
}
