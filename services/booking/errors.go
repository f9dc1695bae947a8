package booking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotFound is returned when a wizard session is missing or expired.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// ErrPaymentNotSettled is returned at confirm time when the payment provider
// does not report the intent as succeeded.
var ErrPaymentNotSettled = errors.New("payment has not been completed")

// ErrOrderNotSaved signals the spec's worst-case path: payment was taken but
// the order write failed. The caller must tell the customer to contact
// support; a compensating persist task has been queued.
var ErrOrderNotSaved = errors.New("payment succeeded but booking could not be saved")

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries all field failures for the current step. It blocks
// advancement but never discards entered data.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// PaymentError wraps provider-side failures during intent creation so the
// handler can distinguish them from validation failures.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment intent creation failed: %v", e.Err)
}

func (e *PaymentError) Unwrap() error { return e.Err }
