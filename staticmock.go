// Package staticmock substitutes test doubles for package-level functions.
//
// A test installs one instance of a mock type; production code, typically through
// stubs generated by stubgen, retrieves "the current mock of type M" from a
// process-wide registry. The registration is released when the test completes.
//
// Each mock type has one registration slot. The slots are not safe for concurrent
// use: tests that install the same mock type must not run in parallel.
//
// This is the public API entry point. Implementation lives in internal/core.
package staticmock

import (
	"context"

	"github.com/toejough/staticmock/internal/core"
)

// Exported constants.
const (
	// Overwrite lets the last registered instance of a mock type win.
	Overwrite = core.Overwrite
	// Reject refuses a second instance while one is registered.
	Reject = core.Reject
)

// Exported variables.
var (
	// ErrAlreadyRegistered is returned under the Reject policy for a second instance.
	ErrAlreadyRegistered = core.ErrAlreadyRegistered
	// ErrNilInstance is returned when registering a nil mock.
	ErrNilInstance = core.ErrNilInstance
	// ErrNotRegistered is returned when no instance of the requested mock type is registered.
	ErrNotRegistered = core.ErrNotRegistered
)

// Option configures a Registry.
type Option = core.Option

// Policy is the duplicate-registration policy of a Registry.
type Policy = core.Policy

// Registry holds one Slot per mock type.
type Registry = core.Registry

// Slot tracks at most one live instance of the mock type M.
type Slot[M any] = core.Slot[M]

// TestReporter is the minimal interface staticmock needs from test frameworks.
type TestReporter = core.TestReporter

// Default returns the process-wide registry.
func Default() *Registry {
	return core.Default()
}

// FromContext returns the registry carried by ctx, or Default.
func FromContext(ctx context.Context) *Registry {
	return core.FromContext(ctx)
}

// Install registers m for the rest of the test and returns it.
func Install[M any](t TestReporter, m *M) *M {
	t.Helper()

	return core.InstallIn(t, core.Default(), m)
}

// InstallIn is Install against an explicit registry.
func InstallIn[M any](t TestReporter, r *Registry, m *M) *M {
	t.Helper()

	return core.InstallIn(t, r, m)
}

// Instance returns the registered instance of M.
func Instance[M any]() (*M, error) {
	return core.Instance[M]()
}

// InstanceFrom returns the registered instance of M in the registry carried by ctx.
func InstanceFrom[M any](ctx context.Context) (*M, error) {
	return core.InstanceFrom[M](ctx)
}

// InstanceIn returns the registered instance of M in r.
func InstanceIn[M any](r *Registry) (*M, error) {
	return core.InstanceIn[M](r)
}

// MustInstance returns the registered instance of M, panicking if there is none.
func MustInstance[M any]() *M {
	return core.MustInstance[M]()
}

// MustInstanceIn returns the registered instance of M in r, panicking if there is none.
func MustInstanceIn[M any](r *Registry) *M {
	return core.MustInstanceIn[M](r)
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	return core.NewRegistry(opts...)
}

// Register registers m in the default registry.
func Register[M any](m *M) error {
	return core.Register(m)
}

// RegisterIn registers m in r.
func RegisterIn[M any](r *Registry, m *M) error {
	return core.RegisterIn(r, m)
}

// Registered reports whether an instance of M is registered.
func Registered[M any]() bool {
	return core.Registered[M]()
}

// SlotFor returns r's slot for M.
func SlotFor[M any](r *Registry) *Slot[M] {
	return core.SlotFor[M](r)
}

// Unregister clears M's slot if it holds m.
func Unregister[M any](m *M) bool {
	return core.Unregister(m)
}

// UnregisterIn clears M's slot in r if it holds m.
func UnregisterIn[M any](r *Registry, m *M) bool {
	return core.UnregisterIn(r, m)
}

// WithPolicy sets the duplicate-registration policy.
func WithPolicy(p Policy) Option {
	return core.WithPolicy(p)
}

// WithRegistry returns a context carrying r.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return core.WithRegistry(ctx, r)
}

// WithRejectDuplicates makes a second registration of a mock type an error.
func WithRejectDuplicates() Option {
	return core.WithRejectDuplicates()
}
