package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	orderRepo "solecare/database/repository/order"
	"solecare/models"
	"solecare/services/availability"
	"solecare/services/catalog"
	"solecare/services/outbox"
	"solecare/utils"
)

// DefaultBookingSessionService is the production wizard controller.
type DefaultBookingSessionService struct {
	Store        SessionStore
	Payment      PaymentProvider
	Availability availability.AvailabilityService
	Orders       orderRepo.OrderRepository
	Outbox       outbox.Enqueuer
	MaxQuantity  int
	// Now allows tests to pin the clock; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// StartSession opens a fresh wizard run at step zero with the default draft.
func (s *DefaultBookingSessionService) StartSession(ctx context.Context) (*models.BookingSession, error) {
	session := &models.BookingSession{
		ID:   uuid.New().String(),
		Step: models.StepService,
		Booking: models.Booking{
			ServiceID: "standard",
			Quantity:  1,
		},
		CreatedAt: s.now(),
	}
	session.TotalCost, _ = catalog.Quote(session.Booking.ServiceID, session.Booking.Quantity, session.Booking.Repaint)

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *DefaultBookingSessionService) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// UpdateSession applies the patch, recomputes the quote, and then performs the
// requested step transition. Validation failures block advancement but leave
// the patched draft in place.
func (s *DefaultBookingSessionService) UpdateSession(ctx context.Context, sessionID string, input UpdateInput) (*models.BookingSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if input.Booking != nil {
		applyPatch(&session.Booking, input.Booking)
		// Editing the draft once an intent exists voids that intent: the wizard
		// drops back to the details step, which re-validates everything and
		// mints a fresh intent for the new quote on the way forward.
		if session.Step == models.StepConfirm {
			session.Step = models.StepDetails
			session.ClientSecret = ""
			session.PaymentIntentID = ""
		}
	}
	if total, err := catalog.Quote(session.Booking.ServiceID, session.Booking.Quantity, session.Booking.Repaint); err == nil {
		session.TotalCost = total
	}

	switch input.Action {
	case ActionAdvance:
		if err := s.advance(ctx, session); err != nil {
			// Persist the patched draft even when the transition is refused so
			// the customer's input survives the error.
			if saveErr := s.Store.Save(ctx, session); saveErr != nil {
				utils.GetLogger().Error("failed to save session after blocked advance",
					zap.String("sessionID", session.ID), zap.Error(saveErr))
			}
			return session, err
		}
	case ActionRetreat:
		s.retreat(session)
	}

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// advance validates the current step's fields and moves forward. Leaving the
// details step additionally requires a payment intent; the confirm step is
// only reachable once the provider has issued a client secret.
func (s *DefaultBookingSessionService) advance(ctx context.Context, session *models.BookingSession) error {
	if session.Step >= models.StepConfirm {
		return nil
	}

	var openTimes []string
	if session.Step == models.StepSchedule {
		times, err := s.Availability.AvailableTimes(ctx, session.Booking.BookingDate)
		if err != nil {
			utils.GetLogger().Warn("failed to fetch availability during advance",
				zap.String("date", session.Booking.BookingDate), zap.Error(err))
		}
		openTimes = times
	}

	if errs := validateStep(session.Step, session.Booking, s.MaxQuantity, openTimes, s.now()); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if session.Step == models.StepDetails {
		secret, intentID, err := s.Payment.CreateIntent(ctx, catalog.MinorUnits(session.TotalCost))
		if err != nil {
			return &PaymentError{Err: err}
		}
		session.ClientSecret = secret
		session.PaymentIntentID = intentID
	}

	session.Step++
	return nil
}

// retreat steps back and discards any in-flight payment secret so re-entering
// the confirm step forces a fresh intent.
func (s *DefaultBookingSessionService) retreat(session *models.BookingSession) {
	if session.Step > 0 {
		session.Step--
	}
	session.ClientSecret = ""
	session.PaymentIntentID = ""
}

func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, sessionID string) error {
	return s.Store.Delete(ctx, sessionID)
}

func applyPatch(b *models.Booking, p *BookingPatch) {
	if p.ServiceID != nil {
		b.ServiceID = *p.ServiceID
	}
	if p.Quantity != nil {
		b.Quantity = *p.Quantity
	}
	if p.Repaint != nil {
		b.Repaint = *p.Repaint
	}
	if p.DeliveryMethod != nil {
		b.DeliveryMethod = *p.DeliveryMethod
	}
	if p.BookingDate != nil && *p.BookingDate != b.BookingDate {
		b.BookingDate = *p.BookingDate
		// A new date invalidates the previously chosen time.
		b.BookingTime = ""
	}
	if p.BookingTime != nil {
		b.BookingTime = *p.BookingTime
	}
	if p.FullName != nil {
		b.FullName = *p.FullName
	}
	if p.Email != nil {
		b.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		b.PhoneNumber = *p.PhoneNumber
	}
	if p.PickupAddress != nil {
		b.PickupAddress = *p.PickupAddress
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
}
