package rivet

import (
	"log/slog"
)

type Option func(*injectorConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *injectorConfig) {
		cfg.logger = logger
	}
}

// WithDescriptorProvider replaces the built-in tag/prefix scanner with a
// custom metadata source. The provider fully owns constructor choice, field
// order, and method order; Provide registrations no longer take effect.
func WithDescriptorProvider(p DescriptorProvider) Option {
	return func(cfg *injectorConfig) {
		cfg.provider = p
	}
}

func WithResolveObserver(hook ResolveHook) Option {
	return func(cfg *injectorConfig) {
		cfg.onResolve = append(cfg.onResolve, hook)
	}
}

func WithInjectObserver(hook InjectHook) Option {
	return func(cfg *injectorConfig) {
		cfg.onInject = append(cfg.onInject, hook)
	}
}
