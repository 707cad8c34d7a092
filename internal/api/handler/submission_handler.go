package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
)

type SubmissionHandler struct {
	service ports.SubmissionService
}

func NewSubmissionHandler(service ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// @Summary      Submit assignment work
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submissionRequest  true  "Submission"
// @Success      200   {object}  domain.InsertResult
// @Failure      403   {object}  errorResponse
// @Router       /submissions [post]
func (h *SubmissionHandler) Submit(c echo.Context) error {
	var req submissionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.service.Submit(c.Request().Context(), &domain.Submission{
		ClassID:         req.ClassID,
		AssignmentTitle: req.AssignmentTitle,
		Email:           req.Email,
		Content:         req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// @Summary      List submissions for a class
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        classId  path      string  true  "Class id"
// @Success      200      {array}   domain.Submission
// @Failure      403      {object}  errorResponse
// @Router       /submissions/{classId} [get]
func (h *SubmissionHandler) ListForClass(c echo.Context) error {
	items, err := h.service.ListForClass(c.Request().Context(), c.Param("classId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}

// @Summary      Count submissions for a class
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        classId  path      string  true  "Class id"
// @Success      200      {object}  countResponse
// @Failure      403      {object}  errorResponse
// @Router       /submissions/{classId}/count [get]
func (h *SubmissionHandler) Count(c echo.Context) error {
	n, err := h.service.CountForClass(c.Request().Context(), c.Param("classId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}
