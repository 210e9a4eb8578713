package registry

import (
	"context"

	"go.uber.org/zap"

	"devkit/internal/audit"
	"devkit/pkg/capability"
)

// Registry is the single source of truth for which provider currently
// serves each capability kind. It is not safe for concurrent
// Activate/Deactivate calls on the same kind; single-flight discipline
// is the caller's responsibility.
type Registry struct {
	providers  map[capability.Kind]map[string]capability.Provider
	active     map[capability.Kind]capability.Provider
	priorities map[capability.Kind][]string
	logger     *zap.Logger
	audit      *audit.Logger
}

type Options struct {
	// Priorities lists provider names per kind, most preferred first,
	// consulted by AutoActivate.
	Priorities map[capability.Kind][]string
	Logger     *zap.Logger
	Audit      *audit.Logger
}

func New(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	providers := map[capability.Kind]map[string]capability.Provider{}
	for _, kind := range capability.Kinds() {
		providers[kind] = map[string]capability.Provider{}
	}
	return &Registry{
		providers:  providers,
		active:     map[capability.Kind]capability.Provider{},
		priorities: opts.Priorities,
		logger:     logger,
		audit:      opts.Audit,
	}
}

// Register adds a provider under its name. No availability check is
// performed. Re-registering the same name overwrites silently; last
// write wins.
func (r *Registry) Register(kind capability.Kind, p capability.Provider) {
	r.providers[kind][p.Name()] = p
}

// Activate switches the kind's active slot to the named provider.
// It returns false with no state change when the name is unknown, and
// true immediately when the provider is already active (no redundant
// deactivate/activate cycle). A failed availability probe or a failed
// Activate leaves the slot empty; the previously active provider is
// not restored.
func (r *Registry) Activate(ctx context.Context, kind capability.Kind, name string) bool {
	p, ok := r.providers[kind][name]
	if !ok {
		r.logger.Warn("activate: provider not registered",
			zap.String("kind", string(kind)), zap.String("provider", name))
		return false
	}
	if r.active[kind] == p {
		return true
	}
	for _, other := range capability.Kinds() {
		if other != kind && r.active[other] == p {
			r.logger.Warn("activate: provider already active for another kind",
				zap.String("kind", string(kind)), zap.String("provider", name))
			return false
		}
	}

	if prev := r.active[kind]; prev != nil {
		if kind == capability.Language {
			r.Deactivate(ctx, kind)
		} else {
			// Build and debug providers hold nothing open; the previous
			// one is dropped without a deactivate call. Only the
			// language path tears down the old provider.
			r.active[kind] = nil
		}
	}

	available, err := p.Available(ctx)
	if err != nil {
		r.logger.Warn("activate: availability probe failed",
			zap.String("kind", string(kind)), zap.String("provider", name), zap.Error(err))
		available = false
	}
	if !available {
		_ = r.audit.Log(audit.Event{Operation: "activate", Kind: string(kind), Provider: name, Outcome: "unavailable"})
		return false
	}
	if err := p.Activate(ctx); err != nil {
		r.logger.Warn("activate: provider activation failed",
			zap.String("kind", string(kind)), zap.String("provider", name), zap.Error(err))
		_ = r.audit.Log(audit.Event{Operation: "activate", Kind: string(kind), Provider: name, Outcome: "failed", Message: err.Error()})
		return false
	}
	r.active[kind] = p
	_ = r.audit.Log(audit.Event{Operation: "activate", Kind: string(kind), Provider: name, Outcome: "active"})
	return true
}

// Deactivate tears down the kind's active provider, if any. The slot
// is cleared even when the provider's own Deactivate fails; registry
// state consistency wins over provider cleanup success.
func (r *Registry) Deactivate(ctx context.Context, kind capability.Kind) {
	p := r.active[kind]
	if p == nil {
		return
	}
	if err := p.Deactivate(ctx); err != nil {
		r.logger.Warn("deactivate: provider teardown failed",
			zap.String("kind", string(kind)), zap.String("provider", p.Name()), zap.Error(err))
	}
	r.active[kind] = nil
	_ = r.audit.Log(audit.Event{Operation: "deactivate", Kind: string(kind), Provider: p.Name()})
}

// AutoActivate walks each kind's priority list, most preferred first,
// until one provider activates. A kind where nothing activates is a
// normal "nothing available" outcome, not an error.
func (r *Registry) AutoActivate(ctx context.Context) {
	for _, kind := range capability.Kinds() {
		for _, name := range r.priorities[kind] {
			if r.Activate(ctx, kind, name) {
				break
			}
		}
	}
}

// RestartActive restarts the active language provider in place.
// Failures are logged, not propagated, and do not clear the slot;
// build and debug providers have no restart semantics.
func (r *Registry) RestartActive(ctx context.Context) {
	p := r.active[capability.Language]
	if p == nil {
		return
	}
	restarter, ok := p.(capability.Restarter)
	if !ok {
		return
	}
	if err := restarter.Restart(ctx); err != nil {
		r.logger.Warn("restart: language provider restart failed",
			zap.String("provider", p.Name()), zap.Error(err))
		return
	}
	_ = r.audit.Log(audit.Event{Operation: "restart", Kind: string(capability.Language), Provider: p.Name()})
}

// Status reports the active provider name per kind, empty when none.
// It is a pure read with no probing.
func (r *Registry) Status() map[capability.Kind]string {
	out := map[capability.Kind]string{}
	for _, kind := range capability.Kinds() {
		if p := r.active[kind]; p != nil {
			out[kind] = p.Name()
		} else {
			out[kind] = ""
		}
	}
	return out
}

// ActiveName returns the active provider name for one kind.
func (r *Registry) ActiveName(kind capability.Kind) string {
	if p := r.active[kind]; p != nil {
		return p.Name()
	}
	return ""
}

// Active returns the active provider for one kind, nil when empty.
func (r *Registry) Active(kind capability.Kind) capability.Provider {
	return r.active[kind]
}

// Lookup returns the registered provider under name, nil when unknown.
func (r *Registry) Lookup(kind capability.Kind, name string) capability.Provider {
	return r.providers[kind][name]
}
