package goGate

import (
	"context"
	"fmt"
	"time"
)

// Engine evaluates the authorization gate and the token acceptance stage.
// Build one through [Builder]; it is immutable and safe for concurrent use
// afterwards.
type Engine struct {
	cfg     Config
	tokens  TokenStore
	audit   AuditSink
	metrics *Metrics
}

// TokenParam returns the query parameter name carrying the token identifier.
func (e *Engine) TokenParam() string {
	return e.cfg.Token.TokenParam
}

// UIDParam returns the query parameter name carrying the claimed user identifier.
func (e *Engine) UIDParam() string {
	return e.cfg.Token.UIDParam
}

// MetricsSnapshot exposes the counters for exporters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

// Evaluate runs the authorization decision for one request.
//
// originURL is the incoming request's path+query, used for origin
// propagation. opts must have passed [RestrictedOptions.Validate]; Evaluate
// re-checks the structural rule and the per-request flash-capability rule and
// returns a [ConfigError] on violation rather than a decision. A nil opts is
// the zero strategy (403).
//
// A present marker short-circuits to Allow with no side effects. The flash
// case performs exactly one enqueue; an enqueue failure is a collaborator
// failure wrapped with [ErrSessionUnavailable] and is never folded into a
// rejection.
func (e *Engine) Evaluate(ctx context.Context, originURL string, opts *RestrictedOptions) (Decision, error) {
	if e == nil {
		return Decision{}, ErrEngineNotReady
	}
	if opts == nil {
		opts = &RestrictedOptions{}
	}

	if _, ok := MarkerFromContext(ctx); ok {
		e.metrics.Inc(MetricAllow)
		return allowDecision(), nil
	}

	target := opts.NotAuthRedirect
	if target == "" {
		target = opts.FailureRedirect
	}

	if opts.FlashUserNotAuth != "" && target == "" {
		err := &ConfigError{Reason: ErrFlashRequiresRedirect}
		e.configError(ctx, originURL, err)
		return Decision{}, err
	}

	if target == "" {
		d := rejectDecision()
		e.metrics.Inc(MetricReject)
		e.audit.Emit(ctx, AuditEvent{
			Timestamp: time.Now(),
			EventType: EventGateReject,
			Origin:    originURL,
		})
		return d, nil
	}

	location := redirectTarget(target, opts.OriginURLParam, originURL)

	if opts.FlashUserNotAuth == "" {
		e.metrics.Inc(MetricRedirect)
		e.audit.Emit(ctx, AuditEvent{
			Timestamp: time.Now(),
			EventType: EventGateRedirect,
			Origin:    originURL,
			Target:    location,
		})
		return Decision{Kind: DecisionRedirect, Location: location}, nil
	}

	flash, ok := flashScopeFromContext(ctx)
	if !ok {
		err := &ConfigError{Reason: ErrFlashScopeMissing}
		e.configError(ctx, originURL, err)
		return Decision{}, err
	}

	if err := flash.Flash(ctx, e.cfg.FlashNamespace, opts.FlashUserNotAuth); err != nil {
		e.metrics.Inc(MetricStoreFailure)
		e.audit.Emit(ctx, AuditEvent{
			Timestamp: time.Now(),
			EventType: EventStoreFailure,
			Origin:    originURL,
			Error:     err.Error(),
		})
		return Decision{}, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}

	e.metrics.Inc(MetricRedirectFlash)
	e.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: EventGateRedirectFlash,
		Origin:    originURL,
		Target:    location,
	})

	return Decision{
		Kind:     DecisionRedirectFlash,
		Location: location,
		Flash:    opts.FlashUserNotAuth,
	}, nil
}

// Accept runs the acceptance stage for one request's token credential.
//
// An incomplete credential is a no-op: (nil, nil). A pair the store reports
// invalid is also (nil, nil) — indistinguishable, downstream, from no token
// at all. Store failures return an error wrapping
// [ErrTokenStoreUnavailable].
//
// On success the token is consumed per config — invalidated when single-use,
// expiry-extended when reuse is allowed — and a Marker for the claimed user
// is returned. Persisting the marker across requests is the session
// collaborator's concern.
func (e *Engine) Accept(ctx context.Context, cred TokenCredential) (*Marker, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if !cred.Present() {
		return nil, nil
	}

	valid, err := e.tokens.Verify(ctx, cred.TokenID, cred.UserID)
	if err != nil {
		return nil, e.storeFailure(ctx, cred, "verify", err)
	}

	if !valid {
		e.metrics.Inc(MetricTokenRejected)
		e.audit.Emit(ctx, AuditEvent{
			Timestamp: time.Now(),
			EventType: EventTokenRejected,
			UserID:    cred.UserID,
		})
		return nil, nil
	}

	if e.cfg.Token.AllowReuse {
		err = e.tokens.Extend(ctx, cred.TokenID, time.Now().Add(e.cfg.Token.Extension))
	} else {
		err = e.tokens.Invalidate(ctx, cred.TokenID)
	}
	if err != nil {
		return nil, e.storeFailure(ctx, cred, "consume", err)
	}

	marker := &Marker{
		UserID:   cred.UserID,
		IssuedAt: time.Now(),
	}

	e.metrics.Inc(MetricTokenAccepted)
	e.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: EventTokenAccepted,
		UserID:    cred.UserID,
	})

	return marker, nil
}

func (e *Engine) storeFailure(ctx context.Context, cred TokenCredential, op string, err error) error {
	e.metrics.Inc(MetricStoreFailure)
	e.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: EventStoreFailure,
		UserID:    cred.UserID,
		Error:     err.Error(),
	})
	return fmt.Errorf("%w: %s: %v", ErrTokenStoreUnavailable, op, err)
}

func (e *Engine) configError(ctx context.Context, originURL string, err *ConfigError) {
	e.metrics.Inc(MetricConfigError)
	e.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: EventGateConfigError,
		Origin:    originURL,
		Error:     err.Error(),
	})
}
