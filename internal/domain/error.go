package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound              = errors.New("entity not found")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrUnsupportedCurrency   = errors.New("the selected currency is not supported by MyFatoorah")
	ErrUnsupportedWeightUnit = errors.New("weight units must be in kg, g, lbs, or oz. Default is kg")
	ErrUnsupportedDimension  = errors.New("dimension units must be in cm, m, mm, in, or yd. Default is cm")
	ErrPaymentMethodNotFound = errors.New("please contact Account Manager to enable the used payment method in your account")
	ErrInvalidPhoneLength    = errors.New("phone number length must be between 3 to 14 digits")
)

// TransportError reports a failure before any upstream response was read:
// connection, DNS, or TLS errors. Never retried.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// APIError carries the normalized error message extracted from an upstream
// response body. The message is surfaced verbatim to the caller.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }
