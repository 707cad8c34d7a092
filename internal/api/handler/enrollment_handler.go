package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
)

type EnrollmentHandler struct {
	service ports.EnrollmentService
}

func NewEnrollmentHandler(service ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// Create records a paid enrollment.
//
// @Summary      Record an enrollment
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Param        body  body      enrollmentRequest  true  "Enrollment"
// @Success      200   {object}  domain.InsertResult
// @Failure      400   {object}  errorResponse
// @Router       /enrollClasses [post]
func (h *EnrollmentHandler) Create(c echo.Context) error {
	var req enrollmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.service.Enroll(c.Request().Context(), &domain.Enrollment{
		ClassID:       req.ClassID,
		Title:         req.Title,
		Image:         req.Image,
		TeacherName:   req.TeacherName,
		Email:         req.Email,
		Price:         req.Price,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// @Summary      List the caller's enrollments
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Student email"
// @Success      200    {array}   domain.Enrollment
// @Failure      403    {object}  errorResponse
// @Router       /enrollClasses/{email} [get]
func (h *EnrollmentHandler) ListForStudent(c echo.Context) error {
	items, err := h.service.ListForStudent(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}
