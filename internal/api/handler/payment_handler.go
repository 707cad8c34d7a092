package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorsage/tutor-sage-server/internal/api/metrics"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateIntent asks the processor for a card payment intent.
//
// @Summary      Create a payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      paymentRequest  true  "Price in major units"
// @Success      200   {object}  paymentResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req paymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	intent, err := h.service.CreateIntent(c.Request().Context(), req.Price)
	if err != nil {
		metrics.PaymentIntentsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.PaymentIntentsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, paymentResponse{ClientSecret: intent.ClientSecret})
}
