package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/services"
)

type UserService interface {
	List(ctx context.Context, email string) ([]models.User, error)
	RoleByEmail(ctx context.Context, email string) (models.Role, error)
	Create(ctx context.Context, user *models.User) (*models.InsertResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
	UpdateRole(ctx context.Context, id string, patch models.UserPatch) (*models.UpdateResult, error)
}

type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetUsers handles GET /users?email=
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// GetUserRole handles GET /users/{email}/role. Unknown emails get {}.
func (h *UserHandler) GetUserRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.service.RoleByEmail(r.Context(), pathVar(r, "email"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	body := map[string]interface{}{}
	if role != "" {
		body["role"] = role
	}
	writeJSON(w, http.StatusOK, body)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.service.Create(r.Context(), &user)
	if errors.Is(err, services.ErrUserExists) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "user already exists", "insertedId": nil})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DeleteUser handles DELETE /users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), pathVar(r, "id"))
	if err != nil {
		writeDeleteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User deleted from database and Firebase.",
		"result":  result,
	})
}

// UpdateUserRole handles PATCH /users/{id}
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	if len(patch.SetDocument()) == 0 {
		writeError(w, r, errNoFields)
		return
	}

	result, err := h.service.UpdateRole(r.Context(), pathVar(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
