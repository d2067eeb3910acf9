package handlers

import (
	"context"
	"net/http"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/apperrors"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/services"
)

var errNoFields = apperrors.NewBadRequestError("No valid fields provided")

type ScholarshipService interface {
	List(ctx context.Context, q services.ScholarshipQuery) ([]models.Scholarship, error)
	Get(ctx context.Context, id string) (*models.Scholarship, error)
	Create(ctx context.Context, scholarship *models.Scholarship) (*models.InsertResult, error)
	Update(ctx context.Context, id string, patch models.ScholarshipPatch) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

type ScholarshipHandler struct {
	service ScholarshipService
}

func NewScholarshipHandler(service ScholarshipService) *ScholarshipHandler {
	return &ScholarshipHandler{service: service}
}

// GetScholarships handles GET /scholarships?email=&country=&search=
func (h *ScholarshipHandler) GetScholarships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.service.List(r.Context(), services.ScholarshipQuery{
		Email:   q.Get("email"),
		Country: q.Get("country"),
		Search:  q.Get("search"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetScholarship handles GET /scholarships/{id}
func (h *ScholarshipHandler) GetScholarship(w http.ResponseWriter, r *http.Request) {
	scholarship, err := h.service.Get(r.Context(), pathVar(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scholarship)
}

// CreateScholarship handles POST /scholarships
func (h *ScholarshipHandler) CreateScholarship(w http.ResponseWriter, r *http.Request) {
	var scholarship models.Scholarship
	if err := decodeJSON(r, &scholarship); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.service.Create(r.Context(), &scholarship)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// UpdateScholarship handles PATCH /scholarships/{id}
func (h *ScholarshipHandler) UpdateScholarship(w http.ResponseWriter, r *http.Request) {
	var patch models.ScholarshipPatch
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

// DeleteScholarship handles DELETE /scholarships/{id}
func (h *ScholarshipHandler) DeleteScholarship(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Delete(r.Context(), pathVar(r, "id")); err != nil {
		writeDeleteError(w, r, err)
		return
	}
	writeDeleted(w, "Scholarship Deleted.")
}
