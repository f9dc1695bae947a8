package models

// AvailabilityDay is one document per bookable date holding its open times.
// Times are removed as bookings land; a day with no times left is deleted.
type AvailabilityDay struct {
	Date  string   `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Times []string `bson:"times" json:"times"` // e.g. ["09:00", "11:30"]
}
