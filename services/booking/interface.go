package booking

import (
	"context"

	"solecare/models"
)

// BookingPatch carries partial updates to the draft booking. Nil fields are
// left untouched.
type BookingPatch struct {
	ServiceID      *string `json:"serviceId,omitempty"`
	Quantity       *int    `json:"quantity,omitempty"`
	Repaint        *bool   `json:"repaint,omitempty"`
	DeliveryMethod *string `json:"deliveryMethod,omitempty"`
	BookingDate    *string `json:"bookingDate,omitempty"`
	BookingTime    *string `json:"bookingTime,omitempty"`
	FullName       *string `json:"fullName,omitempty"`
	Email          *string `json:"email,omitempty"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	PickupAddress  *string `json:"pickupAddress,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// Update actions.
const (
	ActionAdvance = "advance"
	ActionRetreat = "retreat"
)

// UpdateInput patches the draft and optionally moves the wizard.
type UpdateInput struct {
	Booking *BookingPatch `json:"booking,omitempty"`
	Action  string        `json:"action,omitempty"` // "advance", "retreat" or empty
}

// BookingSessionService drives the five-step booking wizard.
type BookingSessionService interface {
	StartSession(ctx context.Context) (*models.BookingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)
	UpdateSession(ctx context.Context, sessionID string, input UpdateInput) (*models.BookingSession, error)
	CancelSession(ctx context.Context, sessionID string) error
	Confirm(ctx context.Context, sessionID string) (*models.Order, error)
}
