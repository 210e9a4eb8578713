package capability

import (
	"context"
	"fmt"
)

// Kind is a category of interchangeable tool implementations.
type Kind string

const (
	Language Kind = "language"
	Build    Kind = "build"
	Debug    Kind = "debug"
)

// Kinds returns every capability kind in registry iteration order.
func Kinds() []Kind {
	return []Kind{Language, Build, Debug}
}

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Language, Build, Debug:
		return Kind(s), nil
	}
	return "", fmt.Errorf("CAP_KIND_UNKNOWN: unknown capability kind %q", s)
}

// Provider is one concrete implementation of a capability kind.
// Instances are created once and owned by the registry for their
// lifetime; the registry is the only caller of the lifecycle methods.
type Provider interface {
	Name() string
	DisplayName() string
	// Available may probe external state (filesystem, PATH, processes).
	// It is idempotent but not guaranteed cheap; callers should cache
	// the answer within one logical operation.
	Available(ctx context.Context) (bool, error)
	Activate(ctx context.Context) error
	Deactivate(ctx context.Context) error
}

// Restarter is implemented by providers that support an in-place
// restart. Only language providers carry it in the current set.
type Restarter interface {
	Restart(ctx context.Context) error
}

// BuildOps are the operations a build provider serves once available.
type BuildOps interface {
	Build(ctx context.Context, root string) error
	Clean(ctx context.Context, root string) error
	Restore(ctx context.Context, root string) error
}

// DebugOps are the operations a debug provider serves once available.
type DebugOps interface {
	Inspect(ctx context.Context) (string, error)
	Configure(ctx context.Context, root string) error
}
