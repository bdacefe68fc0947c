//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/ghpush/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// TargetBuilder helps create test targets with a fluent interface.
type TargetBuilder struct {
	*testkit.BaseBuilder
	owner  string
	name   string
	branch string
}

// NewTargetBuilder creates a new target builder with sensible defaults.
func NewTargetBuilder() *TargetBuilder {
	return &TargetBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		owner:       "octocat",
		name:        "hello-world",
		branch:      entities.DefaultBranch,
	}
}

// WithOwner sets the repository owner.
func (b *TargetBuilder) WithOwner(owner string) *TargetBuilder {
	b.owner = owner
	return b
}

// WithName sets the repository name.
func (b *TargetBuilder) WithName(name string) *TargetBuilder {
	b.name = name
	return b
}

// WithBranch sets the target branch.
func (b *TargetBuilder) WithBranch(branch string) *TargetBuilder {
	b.branch = branch
	return b
}

// Build creates the target (satisfies testkit.Builder interface).
func (b *TargetBuilder) Build() interface{} {
	return b.BuildTarget()
}

// BuildTarget creates the target with a concrete return type.
func (b *TargetBuilder) BuildTarget() entities.Target {
	return entities.Target{
		Owner:  b.owner,
		Name:   b.name,
		Branch: b.branch,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *TargetBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.owner = "octocat"
	b.name = "hello-world"
	b.branch = entities.DefaultBranch
	return b
}

// Clone creates a deep copy of the TargetBuilder.
func (b *TargetBuilder) Clone() testkit.Builder {
	return &TargetBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		owner:       b.owner,
		name:        b.name,
		branch:      b.branch,
	}
}
