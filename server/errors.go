package server

import "fmt"

// ConfigurationError indicates that required configuration is missing or malformed.  It is always
// reported before any listener is constructed.
type ConfigurationError struct {
	Key    string
	Value  string
	Reason string
	Err    error
}

func (ce *ConfigurationError) Error() string {
	if len(ce.Value) > 0 {
		return fmt.Sprintf("invalid configuration %s=%q: %s", ce.Key, ce.Value, ce.Reason)
	}

	return fmt.Sprintf("invalid configuration %s: %s", ce.Key, ce.Reason)
}

func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}

// BindError indicates that a listen address could not be bound, e.g. because it is already in use.
type BindError struct {
	Address string
	Err     error
}

func (be *BindError) Error() string {
	return fmt.Sprintf("unable to bind %s: %s", be.Address, be.Err)
}

func (be *BindError) Unwrap() error {
	return be.Err
}

// RegistrationError indicates that the application resource could not register its routes.
type RegistrationError struct {
	Err error
}

func (re *RegistrationError) Error() string {
	return fmt.Sprintf("unable to register resource: %s", re.Err)
}

func (re *RegistrationError) Unwrap() error {
	return re.Err
}
