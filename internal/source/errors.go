package source

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable matches every failure to obtain a document.
var ErrSourceUnavailable = errors.New("source unavailable")

// UnavailableError describes why a locator could not be fetched.
// StatusCode is set for HTTP responses outside 2xx.
type UnavailableError struct {
	Locator    string
	StatusCode int
	Err        error
}

func (e *UnavailableError) Error() string {
	if e == nil {
		return ErrSourceUnavailable.Error()
	}
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: %s: status=%d: %v", ErrSourceUnavailable, e.Locator, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s: status=%d", ErrSourceUnavailable, e.Locator, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", ErrSourceUnavailable, e.Locator, e.Err)
	default:
		return fmt.Sprintf("%s: %s", ErrSourceUnavailable, e.Locator)
	}
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *UnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSourceUnavailable}
	}
	return []error{ErrSourceUnavailable, e.Err}
}

func unavailable(locator string, status int, err error) error {
	return &UnavailableError{Locator: locator, StatusCode: status, Err: err}
}
