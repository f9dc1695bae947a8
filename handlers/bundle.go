package handlers

// HandlerBundle aggregates the handlers wired in main so route registration
// takes a single argument.
type HandlerBundle struct {
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Availability *AvailabilityHandler
	Admin        *AdminHandler
}
