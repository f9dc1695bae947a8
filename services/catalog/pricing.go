package catalog

import "fmt"

// Quote computes the total cost for a booking:
// unit price x quantity, plus the repaint surcharge per unit when selected.
// Quantity below 1 is rejected rather than silently clamped.
func Quote(serviceID string, quantity int, repaint bool) (float64, error) {
	svc, ok := GetService(serviceID)
	if !ok {
		return 0, fmt.Errorf("unknown service %q", serviceID)
	}
	if quantity < 1 {
		return 0, fmt.Errorf("quantity must be at least 1")
	}
	total := svc.Price * float64(quantity)
	if repaint {
		total += RepaintUnitCost * float64(quantity)
	}
	return total, nil
}

// MinorUnits converts a GBP amount to integer pence for the payment provider.
func MinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
