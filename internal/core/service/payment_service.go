package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
)

const defaultCurrency = "usd"

// PaymentService converts prices and forwards them to the payment processor.
type PaymentService struct {
	gateway  ports.PaymentGateway
	currency string
	logger   zerolog.Logger
}

func NewPaymentService(gateway ports.PaymentGateway, currency string, logger zerolog.Logger) *PaymentService {
	if currency == "" {
		currency = defaultCurrency
	}
	return &PaymentService{gateway: gateway, currency: currency, logger: logger}
}

// CreateIntent does not validate the amount; zero and negative prices are
// forwarded as-is and left to the processor to reject.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (*domain.PaymentIntent, error) {
	amount := domain.MinorUnits(price)

	secret, err := s.gateway.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		s.logger.Error().Err(err).Int64("amount", amount).Str("currency", s.currency).Msg("payment intent failed")
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &domain.PaymentIntent{Amount: amount, Currency: s.currency, ClientSecret: secret}, nil
}
