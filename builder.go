package goGate

import "errors"

// Builder assembles an [Engine]. Configure it, then call Build exactly once;
// a Builder is not safe for concurrent use, the built Engine is.
type Builder struct {
	config Config
	tokens TokenStore
	audit  AuditSink

	built bool
}

// New returns a Builder preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the engine configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithTokenStore sets the token storage collaborator. Required.
func (b *Builder) WithTokenStore(store TokenStore) *Builder {
	b.tokens = store
	return b
}

// WithAuditSink sets the audit sink. Defaults to [NoOpSink].
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.audit = sink
	return b
}

// WithMetricsEnabled toggles counter recording.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and returns the Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	if b.tokens == nil {
		return nil, ErrTokenStoreRequired
	}

	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	sink := b.audit
	if sink == nil {
		sink = NoOpSink{}
	}

	b.built = true

	return &Engine{
		cfg:     b.config,
		tokens:  b.tokens,
		audit:   sink,
		metrics: NewMetrics(b.config.Metrics),
	}, nil
}
