package types

import "fmt"

// ErrMissingID is wrapped by every presence-validation failure so callers can
// classify bad input without string matching.
var ErrMissingID = fmt.Errorf("missing required identifier")

// ValidateIDPresent rejects empty identifiers. field names the parameter in
// the returned error.
func ValidateIDPresent(id, field string) error {
	if id == "" {
		return fmt.Errorf("%s: %w", field, ErrMissingID)
	}
	return nil
}

// ValidateCredentials rejects empty sign-in input.
func ValidateCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("email: %w", ErrMissingID)
	}
	if password == "" {
		return fmt.Errorf("password: %w", ErrMissingID)
	}
	return nil
}
