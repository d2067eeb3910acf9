package handlers

import (
	"context"
	"net/http"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/middleware"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
)

type ApplicationService interface {
	List(ctx context.Context, email string) ([]models.Application, error)
	Get(ctx context.Context, id string) (*models.Application, error)
	Create(ctx context.Context, app *models.Application, subjectEmail string) (*models.InsertResult, error)
	Update(ctx context.Context, id string, patch models.ApplicationPatch) (*models.UpdateResult, error)
	MarkPaid(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

type ApplicationHandler struct {
	service ApplicationService
}

func NewApplicationHandler(service ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// GetApplications handles GET /applications?email=
func (h *ApplicationHandler) GetApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// GetApplication handles GET /applications/{id}
func (h *ApplicationHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.service.Get(r.Context(), pathVar(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// CreateApplication handles POST /applications
func (h *ApplicationHandler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var app models.Application
	if err := decodeJSON(r, &app); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.service.Create(r.Context(), &app, middleware.SubjectEmail(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// UpdateApplication handles PATCH /applications/{id}
func (h *ApplicationHandler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	var patch models.ApplicationPatch
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

// MarkPaymentDone handles PATCH /applications/payment-done/{id}
func (h *ApplicationHandler) MarkPaymentDone(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkPaid(r.Context(), pathVar(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Payment status updated to paid"})
}

// DeleteApplication handles DELETE /applications/{id}
func (h *ApplicationHandler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Delete(r.Context(), pathVar(r, "id")); err != nil {
		writeDeleteError(w, r, err)
		return
	}
	writeDeleted(w, "Application deleted")
}
