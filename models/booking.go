package models

// Delivery methods accepted by the wizard.
const (
	DeliveryCollection = "collection" // we pick the sneakers up
	DeliveryDropoff    = "dropoff"    // customer brings them in
)

// Booking is the form-scoped draft built up field by field as the customer
// moves through the wizard. It is discarded once an Order is written.
type Booking struct {
	ServiceID      string `json:"serviceId"`
	Quantity       int    `json:"quantity"`
	Repaint        bool   `json:"repaint"`
	DeliveryMethod string `json:"deliveryMethod"`          // "collection" or "dropoff"
	BookingDate    string `json:"bookingDate"`             // "YYYY-MM-DD"
	BookingTime    string `json:"bookingTime"`             // e.g. "09:30"
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	PickupAddress  string `json:"pickupAddress,omitempty"` // required iff collection
	Notes          string `json:"notes,omitempty"`
}
