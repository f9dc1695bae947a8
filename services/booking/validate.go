package booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"solecare/models"
	"solecare/services/catalog"
)

const dateLayout = "2006-01-02"

// minPickupAddressLen is the shortest pickup address we will send a driver to.
const minPickupAddressLen = 10

// validateStep checks only the fields relevant to the given wizard step.
// openTimes is the current availability for the draft's date and is consulted
// by the schedule step alone.
func validateStep(step int, b models.Booking, maxQuantity int, openTimes []string, now time.Time) []FieldError {
	var errs []FieldError

	switch step {
	case models.StepService:
		if _, ok := catalog.GetService(b.ServiceID); !ok {
			errs = append(errs, FieldError{Field: "serviceId", Message: "Please select a service."})
		}
		if b.Quantity < 1 {
			errs = append(errs, FieldError{Field: "quantity", Message: "Quantity must be at least 1."})
		} else if maxQuantity > 0 && b.Quantity > maxQuantity {
			errs = append(errs, FieldError{Field: "quantity",
				Message: fmt.Sprintf("Quantity must be at most %d.", maxQuantity)})
		}

	case models.StepDelivery:
		if b.DeliveryMethod != models.DeliveryCollection && b.DeliveryMethod != models.DeliveryDropoff {
			errs = append(errs, FieldError{Field: "deliveryMethod", Message: "Please select a delivery method."})
		}

	case models.StepSchedule:
		d, err := time.ParseInLocation(dateLayout, b.BookingDate, now.Location())
		if err != nil {
			errs = append(errs, FieldError{Field: "bookingDate", Message: "Please select a date."})
			break
		}
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if d.Before(midnight) {
			errs = append(errs, FieldError{Field: "bookingDate", Message: "Date must not be in the past."})
		}
		if b.BookingTime == "" {
			errs = append(errs, FieldError{Field: "bookingTime", Message: "Please select a time."})
		} else if !containsTime(openTimes, b.BookingTime) {
			errs = append(errs, FieldError{Field: "bookingTime", Message: "That time is no longer available."})
		}

	case models.StepDetails:
		if len(strings.TrimSpace(b.FullName)) < 2 {
			errs = append(errs, FieldError{Field: "fullName", Message: "Full name is required."})
		}
		if _, err := mail.ParseAddress(b.Email); err != nil {
			errs = append(errs, FieldError{Field: "email", Message: "Please enter a valid email address."})
		}
		if b.DeliveryMethod == models.DeliveryCollection && len(b.PickupAddress) < minPickupAddressLen {
			errs = append(errs, FieldError{Field: "pickupAddress", Message: "Please enter a valid pickup address."})
		}
	}

	return errs
}

func containsTime(times []string, t string) bool {
	for _, v := range times {
		if v == t {
			return true
		}
	}
	return false
}
