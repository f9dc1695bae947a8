package models

import "time"

// OrderStatus values an order moves through after booking.
const (
	OrderStatusPending    = "Pending"
	OrderStatusInProgress = "In Progress"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

// ValidOrderStatus reports whether s is one of the admin-settable statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the durable record written once payment has succeeded. After
// creation it is only mutated by administrative status changes.
type Order struct {
	ID              string    `bson:"id" json:"id"`
	ServiceID       string    `bson:"service_id" json:"serviceId"`
	ServiceName     string    `bson:"service_name" json:"serviceName"`
	Quantity        int       `bson:"quantity" json:"quantity"`
	Repaint         bool      `bson:"repaint" json:"repaint"`
	DeliveryMethod  string    `bson:"delivery_method" json:"deliveryMethod"`
	BookingDate     string    `bson:"booking_date" json:"bookingDate"` // "YYYY-MM-DD"
	BookingTime     string    `bson:"booking_time" json:"bookingTime"`
	CustomerName    string    `bson:"customer_name" json:"customerName"`
	Email           string    `bson:"email" json:"email"`
	PhoneNumber     string    `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	PickupAddress   string    `bson:"pickup_address,omitempty" json:"pickupAddress,omitempty"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	TotalCost       float64   `bson:"total_cost" json:"totalCost"`
	Status          string    `bson:"status" json:"status"`
	PaymentIntentID string    `bson:"payment_intent_id" json:"paymentIntentId"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"` // server-assigned
}
