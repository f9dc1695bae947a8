package catalog

import "solecare/models"

// RepaintUnitCost is the per-pair surcharge for the repaint add-on, in GBP.
const RepaintUnitCost = 20.0

// services is the static cleaning catalog. Reference data, never mutated.
var services = []models.Service{
	{
		ID:          "standard",
		Name:        "Standard",
		Description: "Our classic deep clean.",
		Price:       30,
		Features:    []string{"Deep Clean", "Lace Cleaning", "Midsole Treatment", "Deodorization"},
	},
	{
		ID:          "express",
		Name:        "Express",
		Description: "Standard clean with extras.",
		Price:       40,
		Features:    []string{"Everything in Standard", "Minor Scuff Removal", "Protective Coating", "48-Hour Turnaround"},
		BestValue:   true,
	},
	{
		ID:          "sameday",
		Name:        "Same-Day VIP",
		Description: "The full works, same day.",
		Price:       50,
		Features:    []string{"Everything in Express", "Premium Restoration", "Waterproofing", "Same-Day Service"},
	},
}

var washPacks = []models.WashPack{
	{ID: "pack5", Name: "5 Wash Pack", Washes: 5, Price: 135},
	{ID: "pack10", Name: "10 Wash Pack", Washes: 10, Price: 250, BestValue: true},
}

// Services returns the full cleaning catalog.
func Services() []models.Service {
	return services
}

// WashPacks returns the prepaid bundle catalog.
func WashPacks() []models.WashPack {
	return washPacks
}

// GetService looks up a catalog entry by id.
func GetService(id string) (*models.Service, bool) {
	for i := range services {
		if services[i].ID == id {
			return &services[i], true
		}
	}
	return nil, false
}
