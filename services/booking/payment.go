package booking

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"solecare/config"
	"solecare/utils"
)

// PaymentProvider abstracts the payment-intent handshake so the wizard can be
// tested without talking to Stripe.
type PaymentProvider interface {
	// CreateIntent asks the provider for a new intent over the given amount in
	// minor currency units, returning the client secret and the intent id.
	CreateIntent(ctx context.Context, amountMinorUnits int64) (clientSecret, intentID string, err error)
	// VerifyIntent reports whether the intent has actually been paid and
	// covers the given amount in minor currency units.
	VerifyIntent(ctx context.Context, intentID string, amountMinorUnits int64) error
}

// StripePaymentProvider is the production PaymentProvider.
type StripePaymentProvider struct {
	logger *zap.Logger
}

// NewStripePaymentProvider constructs the Stripe-backed provider. The global
// stripe.Key must already be set from config.
func NewStripePaymentProvider() *StripePaymentProvider {
	return &StripePaymentProvider{logger: utils.GetLogger()}
}

func (p *StripePaymentProvider) CreateIntent(ctx context.Context, amountMinorUnits int64) (string, string, error) {
	if amountMinorUnits <= 0 {
		return "", "", fmt.Errorf("invalid payment amount: %d", amountMinorUnits)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(config.AppConfig.StripeCurrency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		p.logger.Error("stripe: failed to create payment intent",
			zap.Int64("amount", amountMinorUnits), zap.Error(err))
		return "", "", err
	}

	p.logger.Info("stripe: payment intent created",
		zap.String("intentID", pi.ID), zap.Int64("amount", amountMinorUnits))
	return pi.ClientSecret, pi.ID, nil
}

func (p *StripePaymentProvider) VerifyIntent(ctx context.Context, intentID string, amountMinorUnits int64) error {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		return fmt.Errorf("failed to retrieve payment intent %s: %w", intentID, err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("%w: intent %s is %s", ErrPaymentNotSettled, intentID, pi.Status)
	}
	// The captured amount must cover the order being confirmed, not whatever
	// the draft looked like when the intent was created.
	if pi.Amount != amountMinorUnits {
		return fmt.Errorf("%w: intent %s captured %d, order requires %d",
			ErrPaymentNotSettled, intentID, pi.Amount, amountMinorUnits)
	}
	return nil
}
