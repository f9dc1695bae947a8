package availability

import "context"

// AvailabilityService exposes the open booking slots to the wizard and the
// admin back-office. Slot removal after a confirmed booking goes through the
// outbox, not through this interface.
type AvailabilityService interface {
	// AvailableDates returns every future date with at least one open slot.
	AvailableDates(ctx context.Context) ([]string, error)
	// AvailableTimes returns the open times for a date; empty when fully booked.
	AvailableTimes(ctx context.Context, date string) ([]string, error)
	// SetDay replaces a day's open times (admin).
	SetDay(ctx context.Context, date string, times []string) error
	// AddSlot opens a single (date, time) slot (admin).
	AddSlot(ctx context.Context, date, time string) error
	// RemoveSlot closes a single (date, time) slot (admin).
	RemoveSlot(ctx context.Context, date, time string) error
}
