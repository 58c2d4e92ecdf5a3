package api

import (
	"errors"
	"net/http"

	"github.com/ggicci/httpin"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	errs "github.com/tendant/simple-admin/pkg/errors"
	"github.com/tendant/simple-admin/pkg/password"
	userpkg "github.com/tendant/simple-admin/pkg/user"
)

// Handler handles HTTP requests for user management. It owns the boundary
// responsibilities: request parsing, hashing plaintext passwords before they
// reach the service, and mapping domain errors onto status codes.
type Handler struct {
	userService *userpkg.UserService
	hasher      password.Hasher
}

// NewHandler creates a new user handler
func NewHandler(userService *userpkg.UserService, hasher password.Hasher) *Handler {
	return &Handler{
		userService: userService,
		hasher:      hasher,
	}
}

// RegisterRoutes registers the user routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.With(httpin.NewInput(CreateUserInput{})).Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUser)
		r.Get("/{id}/auth", h.GetAuthView)
		r.With(httpin.NewInput(UpdateUserInput{})).Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})
}

// UserRequest is the JSON payload for creating or updating a user. Password is
// plaintext here; the handler hashes it before calling the service.
type UserRequest struct {
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Age       int32       `json:"age"`
	Username  string      `json:"username"`
	Password  string      `json:"password"`
	RoleIds   []uuid.UUID `json:"role_ids"`
}

// CreateUserInput binds the create request body
type CreateUserInput struct {
	Payload *UserRequest `in:"body=json"`
}

// UpdateUserInput binds the update request body
type UpdateUserInput struct {
	Payload *UserRequest `in:"body=json"`
}

// ListUsers handles the request to list all users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.FindUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, users)
}

// GetUser handles retrieving a user by id
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}

// GetAuthView returns the authentication view of a user: the account record,
// its authorities, and the fixed capability descriptor.
func (h *Handler) GetAuthView(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	authUser := userpkg.NewAuthUser(user)
	render.JSON(w, r, struct {
		userpkg.AuthUser
		Authorities []string `json:"authorities"`
	}{
		AuthUser:    authUser,
		Authorities: authUser.Authorities(),
	})
}

// CreateUser handles creating a new user
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*CreateUserInput)
	req := input.Payload

	hashed, ok := h.hashPassword(w, r, req.Password)
	if !ok {
		return
	}

	params := userpkg.CreateUserParams{}
	copier.Copy(&params, req)
	params.Password = hashed

	user, err := h.userService.CreateUser(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, user)
}

// UpdateUser handles the full replace of a user's mutable fields and role set.
// An empty password keeps the stored credential; a non-empty one is hashed
// before it reaches the service.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	input := r.Context().Value(httpin.Input).(*UpdateUserInput)
	req := input.Payload

	existing, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	params := userpkg.UpdateUserParams{}
	copier.Copy(&params, req)
	params.ID = id

	if req.Password == "" {
		params.Password = existing.Password
	} else {
		hashed, ok := h.hashPassword(w, r, req.Password)
		if !ok {
			return
		}
		params.Password = hashed
	}

	user, err := h.userService.UpdateUser(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}

// DeleteUser handles removing a user
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

// hashPassword hashes a plaintext password, answering 400 on input the hasher
// rejects. Empty input and over-length input fail with distinct reasons
// (bcrypt caps passwords at 72 bytes).
func (h *Handler) hashPassword(w http.ResponseWriter, r *http.Request, plaintext string) (string, bool) {
	if plaintext == "" {
		writeError(w, r, errs.InvalidInput("password", "must not be empty"))
		return "", false
	}
	hashed, err := h.hasher.Hash(plaintext)
	if err != nil {
		writeError(w, r, errs.InvalidInput("password", err.Error()))
		return "", false
	}
	return hashed, true
}

// parseID reads the id path parameter, answering 400 on malformed input
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, errs.InvalidInput("id", "must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps domain errors onto HTTP responses. The uniqueness conflict
// always answers 409 no matter whether the pre-check or the storage constraint
// caught it.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var structured *errs.Error
	switch {
	case errors.Is(err, userpkg.ErrUserNotFound):
		render.Status(r, http.StatusNotFound)
	case errors.Is(err, userpkg.ErrUsernameTaken):
		render.Status(r, http.StatusConflict)
	case errors.As(err, &structured):
		render.Status(r, structured.HTTPStatusCode())
	default:
		render.Status(r, http.StatusInternalServerError)
	}
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
