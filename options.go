package goGate

// RestrictedOptions configures the rejection strategy of one protected route.
// A zero value is valid and means "reject with 403".
//
// RestrictedOptions instances are validated once per route registration via
// [RestrictedOptions.Validate] and treated as immutable afterwards; Validate
// reads only the receiver and is safe to call concurrently.
type RestrictedOptions struct {
	// NotAuthRedirect is the redirect destination for unauthenticated
	// requests. Empty means reject with 403 instead.
	NotAuthRedirect string

	// FailureRedirect is the legacy alias of NotAuthRedirect. When both are
	// set, NotAuthRedirect wins.
	FailureRedirect string

	// OriginURLParam, when set, names the query parameter under which the
	// original request path+query is appended to the redirect destination,
	// percent-encoded.
	OriginURLParam string

	// FlashUserNotAuth, when set, is enqueued onto the caller's flash scope
	// before redirecting. Requires a redirect target and a flash capability
	// on the request context.
	FlashUserNotAuth string
}

// Validate checks the option combination and resolves the FailureRedirect
// alias, returning a normalized copy. The returned value is what the Engine
// evaluates against; callers validate once per distinct options value and
// reuse the result.
//
// Rules, in order:
//  1. FlashUserNotAuth without a redirect target → [ErrFlashRequiresRedirect].
//
// The flash-capability presence rule can only be observed against a live
// request context, so [Engine.Evaluate] enforces it with the same
// [ConfigError] severity.
func (o RestrictedOptions) Validate() (*RestrictedOptions, error) {
	resolved := o
	if resolved.NotAuthRedirect == "" {
		resolved.NotAuthRedirect = resolved.FailureRedirect
	}
	resolved.FailureRedirect = ""

	if resolved.FlashUserNotAuth != "" && resolved.NotAuthRedirect == "" {
		return nil, &ConfigError{Reason: ErrFlashRequiresRedirect}
	}

	return &resolved, nil
}
