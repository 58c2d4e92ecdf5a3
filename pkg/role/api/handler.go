package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	errs "github.com/tendant/simple-admin/pkg/errors"
	rolepkg "github.com/tendant/simple-admin/pkg/role"
)

// Handler handles HTTP requests for role management
type Handler struct {
	roleService *rolepkg.RoleService
}

// NewHandler creates a new role handler
func NewHandler(roleService *rolepkg.RoleService) *Handler {
	return &Handler{
		roleService: roleService,
	}
}

// RegisterRoutes registers the role routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/roles", func(r chi.Router) {
		r.Get("/", h.ListRoles)
		r.Post("/", h.CreateRole)
		r.Get("/{id}", h.GetRole)
	})
}

// CreateRoleRequest represents the request to create a new role
type CreateRoleRequest struct {
	Name string `json:"name"`
}

// ListRoles handles the request to list all roles
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.FindRoles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, roles)
}

// GetRole handles retrieving a role by id
func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, r, errs.InvalidInput("id", "must be a valid UUID"))
		return
	}

	role, err := h.roleService.GetRole(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, role)
}

// CreateRole handles creating a new role
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errs.InvalidInput("body", "invalid request body"))
		return
	}

	role, err := h.roleService.CreateRole(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, role)
}

// writeError maps domain errors onto HTTP responses
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var structured *errs.Error
	switch {
	case errors.Is(err, rolepkg.ErrRoleNotFound):
		render.Status(r, http.StatusNotFound)
	case errors.Is(err, rolepkg.ErrEmptyRoleName):
		render.Status(r, http.StatusBadRequest)
	case errors.As(err, &structured):
		render.Status(r, structured.HTTPStatusCode())
	default:
		render.Status(r, http.StatusInternalServerError)
	}
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
