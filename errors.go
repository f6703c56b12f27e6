package goGate

import (
	"errors"
	"fmt"
)

var (
	// ErrFlashRequiresRedirect is returned when FlashUserNotAuth is configured
	// without a redirect target to carry the notice.
	ErrFlashRequiresRedirect = errors.New("flashUserNotAuth requires notAuthRedirect")
	// ErrFlashScopeMissing is returned when FlashUserNotAuth is configured but
	// the request context carries no flash capability.
	ErrFlashScopeMissing = errors.New("flash scope not registered on request context")
	// ErrTokenStoreUnavailable marks a TokenStore infrastructure failure,
	// distinct from "token invalid".
	ErrTokenStoreUnavailable = errors.New("token store unavailable")
	// ErrSessionUnavailable marks a session/flash collaborator infrastructure failure.
	ErrSessionUnavailable = errors.New("session backend unavailable")
	// ErrTokenStoreRequired is returned by Build when no TokenStore was provided.
	ErrTokenStoreRequired = errors.New("token store required")
	// ErrEngineNotReady is returned when a nil or unbuilt Engine is used.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// ConfigError wraps an invalid RestrictedOptions combination. It is a
// programmer error: the hosting layer must surface it as an internal failure
// of the request, never downgrade it to a 403 or a redirect.
type ConfigError struct {
	Reason error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("goGate: invalid restricted options: %v", e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Reason
}

// IsConfigError reports whether err is (or wraps) a restricted-options
// configuration error.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
