package core

import (
	"github.com/aretw0/introspection"
)

// BridgeState exposes internal state for observability.
type BridgeState struct {
	Name           string `json:"name"`
	Path           string `json:"path"`
	CachedBytes    int    `json:"cached_bytes"`
	RepositoryType string `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (b *Bridge) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	repoType := "repository"
	if comp, ok := b.repo.(introspection.Component); ok {
		repoType = comp.ComponentType()
	}

	return BridgeState{
		Name:           b.repo.Name(),
		Path:           b.repo.Path(),
		CachedBytes:    len(b.cached),
		RepositoryType: repoType,
	}
}

// ComponentType implements introspection.Component.
func (b *Bridge) ComponentType() string {
	return "bridge"
}

var _ introspection.Introspectable = (*Bridge)(nil)
var _ introspection.Component = (*Bridge)(nil)
