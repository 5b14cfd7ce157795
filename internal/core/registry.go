package core

import (
	"context"
	"reflect"
	"sync"
)

// Exported constants.
const (
	// Overwrite lets the last registered instance win. This is the default.
	Overwrite Policy = iota
	// Reject refuses to register a second instance while one is registered.
	Reject
)

// Option configures a Registry.
type Option func(*Options)

// Options control registry behavior.
type Options struct {
	// Policy decides what happens when a second instance of a mock type is
	// registered while another is still registered.
	Policy Policy
}

// Policy is the duplicate-registration policy of a Registry.
type Policy int

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// Registry holds one Slot per mock type.
//
// The slot table is guarded so that parallel tests using different mock types do
// not race on it. The slots themselves are not: the lifecycle of any one mock type
// must be driven by a single test at a time.
type Registry struct {
	mu    sync.Mutex
	slots map[reflect.Type]any // *Slot[M] keyed by reflect.TypeFor[M]()
	opts  Options
}

// Default returns the process-wide registry used by the package-level functions
// and by generated stubs.
func Default() *Registry {
	return defaultRegistry
}

// FromContext returns the registry carried by ctx, or Default if there is none.
func FromContext(ctx context.Context) *Registry {
	if r, ok := ctx.Value(registryKey{}).(*Registry); ok && r != nil {
		return r
	}

	return defaultRegistry
}

// InstanceFrom returns the registered instance of M in the registry carried by ctx.
func InstanceFrom[M any](ctx context.Context) (*M, error) {
	return SlotFor[M](FromContext(ctx)).Instance()
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}

	return &Registry{
		slots: make(map[reflect.Type]any),
		opts:  o,
	}
}

// SlotFor returns r's slot for M, creating an empty one on first use.
func SlotFor[M any](r *Registry) *Slot[M] {
	key := reflect.TypeFor[M]()

	r.mu.Lock()
	defer r.mu.Unlock()

	if slot, ok := r.slots[key]; ok {
		return slot.(*Slot[M]) //nolint:forcetypeassert // keyed by M's own type
	}

	slot := &Slot[M]{policy: r.opts.Policy}
	r.slots[key] = slot

	return slot
}

// WithPolicy sets the duplicate-registration policy.
func WithPolicy(p Policy) Option { return func(o *Options) { o.Policy = p } }

// WithRegistry returns a context carrying r.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, r)
}

// WithRejectDuplicates is shorthand for WithPolicy(Reject).
func WithRejectDuplicates() Option { return WithPolicy(Reject) }

// Policy returns the registry's duplicate-registration policy.
func (r *Registry) Policy() Policy {
	return r.opts.Policy
}

type registryKey struct{}

// unexported variables.
var (
	//nolint:gochecknoglobals // Process-wide registry is what production stubs look up
	defaultRegistry = NewRegistry()
)
