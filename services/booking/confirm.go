package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"solecare/models"
	"solecare/services/catalog"
	"solecare/utils"
)

// Confirm finalizes a booking after the customer has completed the hosted
// payment flow. Ordering is payment verified -> order written -> slot removal
// and email queued; the queue guarantees the trailing side effects eventually
// land even when this process dies right after the order write.
func (s *DefaultBookingSessionService) Confirm(ctx context.Context, sessionID string) (*models.Order, error) {
	logger := utils.GetLogger()

	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepConfirm || session.PaymentIntentID == "" {
		return nil, fmt.Errorf("session %s has not reached the payment step", sessionID)
	}

	// Never trust the client's word that payment went through, and never
	// accept an intent that was created over a cheaper quote.
	if err := s.Payment.VerifyIntent(ctx, session.PaymentIntentID, catalog.MinorUnits(session.TotalCost)); err != nil {
		return nil, err
	}

	svc, ok := catalog.GetService(session.Booking.ServiceID)
	if !ok {
		return nil, fmt.Errorf("unknown service %q on confirmed session", session.Booking.ServiceID)
	}

	b := session.Booking
	order := models.Order{
		ID:              uuid.New().String(),
		ServiceID:       b.ServiceID,
		ServiceName:     svc.Name,
		Quantity:        b.Quantity,
		Repaint:         b.Repaint,
		DeliveryMethod:  b.DeliveryMethod,
		BookingDate:     b.BookingDate,
		BookingTime:     b.BookingTime,
		CustomerName:    b.FullName,
		Email:           b.Email,
		PhoneNumber:     b.PhoneNumber,
		PickupAddress:   b.PickupAddress,
		Notes:           b.Notes,
		TotalCost:       session.TotalCost,
		Status:          models.OrderStatusPending,
		PaymentIntentID: session.PaymentIntentID,
	}

	// The session is spent either way: payment has been captured and replaying
	// the wizard against the same intent must not be possible.
	defer func() {
		if err := s.Store.Delete(ctx, sessionID); err != nil {
			logger.Error("failed to delete confirmed session",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}()

	if err := s.Orders.Create(ctx, &order); err != nil {
		logger.Error("order write failed after successful payment",
			zap.String("paymentIntentID", session.PaymentIntentID), zap.Error(err))
		if qErr := s.Outbox.EnqueueOrderPersist(ctx, order); qErr != nil {
			logger.Error("failed to queue compensating order persist; manual reconciliation required",
				zap.String("orderID", order.ID), zap.Error(qErr))
		}
		return nil, fmt.Errorf("%w: %v", ErrOrderNotSaved, err)
	}

	logger.Info("order created",
		zap.String("orderID", order.ID),
		zap.String("service", order.ServiceName),
		zap.Float64("total", order.TotalCost))

	if err := s.Outbox.EnqueueSlotRemoval(ctx, order.BookingDate, order.BookingTime); err != nil {
		// Order stands; the slot stays open until an operator reconciles.
		logger.Error("failed to queue slot removal; availability is stale",
			zap.String("date", order.BookingDate), zap.String("time", order.BookingTime), zap.Error(err))
	}
	if err := s.Outbox.EnqueueConfirmationEmail(ctx, order); err != nil {
		logger.Error("failed to queue confirmation email",
			zap.String("orderID", order.ID), zap.Error(err))
	}

	return &order, nil
}
