package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tutorsage/tutor-sage-server/internal/api/metrics"
	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create registers a user on first sign-in.
//
// @Summary      Create a user unless the email exists
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User"
// @Success      200   {object}  domain.InsertResult
// @Failure      400   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, existed, err := h.service.Create(c.Request().Context(), &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	if existed {
		metrics.UsersCreatedTotal.WithLabelValues("exists").Inc()
		return c.JSON(http.StatusOK, userExistsResponse{Message: "user already exists"})
	}

	metrics.UsersCreatedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusOK, result)
}

// Get returns the caller's own record, or null.
//
// @Summary      Get own user record
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller email"
// @Success      200    {object}  domain.User
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /users/{email} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("email"))
	if errors.Is(err, domain.ErrUserNotFound) {
		return c.JSON(http.StatusOK, nil)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// HasRole answers {"<role>": bool} for the caller, keyed by the lowercased
// role name.
//
// @Summary      Check the caller's role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller email"
// @Success      200    {object}  map[string]bool
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /users/admin/{email} [get]
// @Router       /users/teacher/{email} [get]
// @Router       /users/student/{email} [get]
func (h *UserHandler) HasRole(role domain.Role) echo.HandlerFunc {
	key := strings.ToLower(string(role))

	return func(c echo.Context) error {
		ok, err := h.service.HasRole(c.Request().Context(), c.Param("email"), role)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]bool{key: ok})
	}
}

// List returns every user.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users/admin [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(users))
}

// ChangeRole sets a user's role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "User id"
// @Param        body  body      roleRequest  true  "New role"
// @Success      200   {object}  domain.UpdateResult
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users/admin/{id} [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	var req roleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.service.ChangeRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Delete removes a user.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.DeleteResult
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users/admin/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	result, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
