package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
)

type ClassHandler struct {
	service ports.ClassService
}

func NewClassHandler(service ports.ClassService) *ClassHandler {
	return &ClassHandler{service: service}
}

// ListAccepted returns the public catalogue.
//
// @Summary      List accepted classes
// @Tags         classes
// @Produce      json
// @Success      200  {array}  domain.Class
// @Router       /classes [get]
func (h *ClassHandler) ListAccepted(c echo.Context) error {
	classes, err := h.service.ListAccepted(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(classes))
}

// Popular returns the most enrolled accepted classes.
//
// @Summary      Popular classes
// @Tags         classes
// @Produce      json
// @Success      200  {array}  domain.Class
// @Router       /classes/popular [get]
func (h *ClassHandler) Popular(c echo.Context) error {
	classes, err := h.service.Popular(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(classes))
}

// Get returns one class, or null.
//
// @Summary      Get a class
// @Tags         classes
// @Produce      json
// @Param        id   path      string  true  "Class id"
// @Success      200  {object}  domain.Class
// @Failure      400  {object}  errorResponse
// @Router       /classes/{id} [get]
func (h *ClassHandler) Get(c echo.Context) error {
	class, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, class)
}

// @Summary      List all classes
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Class
// @Failure      403  {object}  errorResponse
// @Router       /classes/admin [get]
func (h *ClassHandler) ListAll(c echo.Context) error {
	classes, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(classes))
}

// @Summary      Review a class
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Class id"
// @Param        body  body      statusRequest  true  "Review outcome"
// @Success      200   {object}  domain.UpdateResult
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /classes/admin/{id} [patch]
func (h *ClassHandler) Review(c echo.Context) error {
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

// @Summary      Create a class
// @Tags         teacher
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      classRequest  true  "Class"
// @Success      200   {object}  domain.InsertResult
// @Failure      403   {object}  errorResponse
// @Router       /classes [post]
func (h *ClassHandler) Create(c echo.Context) error {
	var req classRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), &domain.Class{
		Title:       req.Title,
		Name:        req.Name,
		Email:       req.Email,
		Image:       req.Image,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// @Summary      List the caller's classes
// @Tags         teacher
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Teacher email"
// @Success      200    {array}   domain.Class
// @Failure      403    {object}  errorResponse
// @Router       /myClasses/{email} [get]
func (h *ClassHandler) ListByTeacher(c echo.Context) error {
	classes, err := h.service.ListByTeacher(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(classes))
}

// @Summary      Update a class
// @Tags         teacher
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Class id"
// @Param        body  body      classUpdateRequest  true  "Fields to set"
// @Success      200   {object}  domain.UpdateResult
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /classes/{id} [patch]
func (h *ClassHandler) Update(c echo.Context) error {
	var req classUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.service.Update(c.Request().Context(), c.Param("id"), domain.ClassUpdate{
		Title:       req.Title,
		Image:       req.Image,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// AddAssignment appends one assignment; ?upsert=true creates a missing class.
//
// @Summary      Add an assignment
// @Tags         teacher
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string             true   "Class id"
// @Param        upsert  query     bool               false  "Create the class if missing"
// @Param        body    body      assignmentRequest  true   "Assignment"
// @Success      200     {object}  domain.UpdateResult
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /classes/{id} [put]
func (h *ClassHandler) AddAssignment(c echo.Context) error {
	var req assignmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	upsert := false
	if raw := c.QueryParam("upsert"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "upsert must be a boolean")
		}
		upsert = v
	}

	result, err := h.service.AddAssignment(c.Request().Context(), c.Param("id"), domain.Assignment{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		CreatedAt:   time.Now().UTC(),
	}, upsert)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// @Summary      Delete a class
// @Tags         teacher
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Class id"
// @Success      200  {object}  domain.DeleteResult
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /classes/{id} [delete]
func (h *ClassHandler) Delete(c echo.Context) error {
	result, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// RecordEnrollment bumps the enrolled counter by one.
//
// @Summary      Increment enrolled count
// @Tags         enrollments
// @Produce      json
// @Param        id   path      string  true  "Class id"
// @Success      200  {object}  domain.UpdateResult
// @Failure      400  {object}  errorResponse
// @Router       /classes/enroll/{id} [patch]
func (h *ClassHandler) RecordEnrollment(c echo.Context) error {
	result, err := h.service.RecordEnrollment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
