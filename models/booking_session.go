package models

import "time"

// Wizard steps, in order. The step index is zero-based.
const (
	StepService  = 0
	StepDelivery = 1
	StepSchedule = 2
	StepDetails  = 3
	StepConfirm  = 4
	StepCount    = 5
)

// BookingSession is the server-side state of one wizard run, cached in Redis.
// ClientSecret is set when the session reaches the confirm step and cleared
// again on retreat so re-entry forces a fresh payment intent.
type BookingSession struct {
	ID              string    `json:"id"`
	Step            int       `json:"step"`
	Booking         Booking   `json:"booking"`
	TotalCost       float64   `json:"totalCost"`
	ClientSecret    string    `json:"clientSecret,omitempty"`
	PaymentIntentID string    `json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
