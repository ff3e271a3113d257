package interfaces

import (
	"net/http"

	"github.com/pkg/errors"

	"shopcart/internal/pkg/httpx"
	"shopcart/internal/pkg/logger"
	"shopcart/internal/service/user/application"
	"shopcart/internal/service/user/domain"
)

type UserHandler struct {
	service *application.UserService
}

func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /users", h.handleCreate)
	mux.HandleFunc("GET /users/{id}", h.handleFindOne)
}

func (h *UserHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req application.CreateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, application.ToUserResponse(user))
}

func (h *UserHandler) handleFindOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := httpx.ValidateUUID("id", id); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, application.ToUserResponse(user))
}

func (h *UserHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var statusCode int
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, httpx.ErrInvalidInput):
		statusCode = http.StatusBadRequest
	default:
		statusCode = http.StatusInternalServerError
		logger.Ctx(r.Context()).Error().Err(err).Msg("user request failed")
	}
	httpx.WriteError(w, statusCode, err)
}
