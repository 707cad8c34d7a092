package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
)

type TeacherRequestHandler struct {
	service ports.TeacherRequestService
}

func NewTeacherRequestHandler(service ports.TeacherRequestService) *TeacherRequestHandler {
	return &TeacherRequestHandler{service: service}
}

// @Summary      Apply to become a teacher
// @Tags         teacher-requests
// @Accept       json
// @Produce      json
// @Param        body  body      teacherRequestRequest  true  "Application"
// @Success      200   {object}  domain.InsertResult
// @Failure      400   {object}  errorResponse
// @Router       /teacherRequests [post]
func (h *TeacherRequestHandler) Submit(c echo.Context) error {
	var req teacherRequestRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.service.Submit(c.Request().Context(), &domain.TeacherRequest{
		Name:       req.Name,
		Email:      req.Email,
		Image:      req.Image,
		Title:      req.Title,
		Experience: req.Experience,
		Category:   req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// @Summary      List teacher applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.TeacherRequest
// @Failure      403  {object}  errorResponse
// @Router       /teacherRequests/admin [get]
func (h *TeacherRequestHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}

// GetForEmail returns the caller's application, or null.
//
// @Summary      Get own teacher application
// @Tags         teacher-requests
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller email"
// @Success      200    {object}  domain.TeacherRequest
// @Failure      403    {object}  errorResponse
// @Router       /teacherRequests/{email} [get]
func (h *TeacherRequestHandler) GetForEmail(c echo.Context) error {
	req, err := h.service.GetForEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}

// @Summary      Review a teacher application
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Request id"
// @Param        body  body      statusRequest  true  "Review outcome"
// @Success      200   {object}  domain.UpdateResult
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /teacherRequests/admin/{id} [patch]
func (h *TeacherRequestHandler) Review(c echo.Context) error {
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.service.Review(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
