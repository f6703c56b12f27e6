package goGate

import (
	"errors"
	"time"
)

// TokenConfig controls how token credentials are transported and consumed.
type TokenConfig struct {
	// TokenParam is the query parameter carrying the token identifier.
	TokenParam string
	// UIDParam is the query parameter carrying the claimed user identifier.
	UIDParam string
	// AllowReuse switches accepted tokens from single-use (invalidated on
	// acceptance) to multi-use (expiry extended on acceptance).
	AllowReuse bool
	// Extension is how far an accepted reusable token's expiry is pushed.
	// Only consulted when AllowReuse is true.
	Extension time.Duration
}

// MetricsConfig controls the atomic counter metrics.
type MetricsConfig struct {
	Enabled bool
}

// Config holds engine-wide settings. Configure before [Builder.Build]; the
// Engine treats it as immutable afterwards.
type Config struct {
	Token TokenConfig

	// FlashNamespace is the fixed namespace under which FlashUserNotAuth
	// messages are enqueued.
	FlashNamespace string

	Metrics MetricsConfig
}

// DefaultConfig returns the settings used when no explicit Config is given:
// "token"/"uid" query parameters, single-use tokens, metrics enabled.
func DefaultConfig() Config {
	return Config{
		Token: TokenConfig{
			TokenParam: "token",
			UIDParam:   "uid",
			AllowReuse: false,
			Extension:  time.Hour,
		},
		FlashNamespace: "gogate",
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration. It is called by [Builder.Build]; direct
// callers get the same ordered checks.
func (c *Config) Validate() error {
	if c.Token.TokenParam == "" {
		return errors.New("Token TokenParam must not be empty")
	}
	if c.Token.UIDParam == "" {
		return errors.New("Token UIDParam must not be empty")
	}
	if c.Token.TokenParam == c.Token.UIDParam {
		return errors.New("Token TokenParam and UIDParam must differ")
	}
	if c.Token.AllowReuse && c.Token.Extension <= 0 {
		return errors.New("Token Extension must be > 0 when AllowReuse is true")
	}
	if c.FlashNamespace == "" {
		return errors.New("FlashNamespace must not be empty")
	}

	return nil
}
