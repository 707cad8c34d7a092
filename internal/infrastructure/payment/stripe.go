// Package payment adapts the Stripe API to ports.PaymentGateway.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
)

// StripeGateway creates card payment intents.
type StripeGateway struct {
	client paymentintent.Client
}

// NewStripeGateway builds a gateway on the given backend. A nil backend uses
// the live Stripe API.
func NewStripeGateway(secretKey string, backend stripe.Backend) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeGateway{client: paymentintent.Client{B: backend, Key: secretKey}}
}

// NewBackend returns an API backend that logs through zerolog. An empty url
// keeps Stripe's default endpoint.
func NewBackend(url string, logger zerolog.Logger) stripe.Backend {
	cfg := &stripe.BackendConfig{
		LeveledLogger:     &leveledLogger{logger: logger},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if url != "" {
		cfg.URL = stripe.String(url)
	}
	return stripe.GetBackendWithConfig(stripe.APIBackend, cfg)
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	if g.client.Key == "" {
		return "", fmt.Errorf("%w: no secret key configured", domain.ErrPaymentFailed)
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.client.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return "", fmt.Errorf("%w: %s (%s)", domain.ErrPaymentFailed, stripeErr.Msg, stripeErr.Type)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
	}
	return pi.ClientSecret, nil
}

// leveledLogger routes Stripe client logs into zerolog. Stripe info lines are
// demoted to debug.
type leveledLogger struct {
	logger zerolog.Logger
}

func (l *leveledLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l *leveledLogger) Infof(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l *leveledLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l *leveledLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}
