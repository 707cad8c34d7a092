package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
)

type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// @Summary      Leave feedback on a class
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      feedbackRequest  true  "Feedback"
// @Success      200   {object}  domain.InsertResult
// @Failure      403   {object}  errorResponse
// @Router       /feedback [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req feedbackRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.service.Submit(c.Request().Context(), &domain.Feedback{
		ClassID:     req.ClassID,
		Title:       req.Title,
		Name:        req.Name,
		Email:       req.Email,
		Image:       req.Image,
		Rating:      req.Rating,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// @Summary      List feedback, newest first
// @Tags         feedback
// @Produce      json
// @Success      200  {array}  domain.Feedback
// @Router       /feedback [get]
func (h *FeedbackHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}
