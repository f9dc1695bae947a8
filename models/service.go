package models

// Service is a static catalog entry for a cleaning tier.
type Service struct {
	ID          string   `bson:"id" json:"id"`                   // Catalog identifier, e.g. "standard"
	Name        string   `bson:"name" json:"name"`               // Display name
	Description string   `bson:"description" json:"description"` // Short marketing copy
	Price       float64  `bson:"price" json:"price"`             // Unit price in GBP
	Features    []string `bson:"features" json:"features"`       // Included treatments
	BestValue   bool     `bson:"best_value,omitempty" json:"bestValue,omitempty"`
}

// WashPack is a prepaid bundle of cleans sold alongside single bookings.
type WashPack struct {
	ID        string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Washes    int     `bson:"washes" json:"washes"`
	Price     float64 `bson:"price" json:"price"`
	BestValue bool    `bson:"best_value,omitempty" json:"bestValue,omitempty"`
}
