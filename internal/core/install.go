package core

// TestReporter is the minimal interface staticmock needs from test frameworks.
// It is satisfied by *testing.T and *testing.B.
type TestReporter interface {
	Cleanup(cleanupFunc func())
	Fatalf(format string, args ...any)
	Helper()
}

// Install registers m in the default registry for the rest of the test and
// returns it. The registration is released when the test completes.
//
// Tests that install the same mock type must not run in parallel with each other.
func Install[M any](t TestReporter, m *M) *M {
	t.Helper()

	return InstallIn(t, defaultRegistry, m)
}

// InstallIn is Install against an explicit registry.
func InstallIn[M any](t TestReporter, r *Registry, m *M) *M {
	t.Helper()

	slot := SlotFor[M](r)

	err := slot.Register(m)
	if err != nil {
		t.Fatalf("staticmock: cannot install mock: %v", err)

		return m
	}

	t.Cleanup(func() {
		slot.Unregister(m)
	})

	return m
}

// Instance returns the registered instance of M in the default registry.
func Instance[M any]() (*M, error) {
	return SlotFor[M](defaultRegistry).Instance()
}

// InstanceIn returns the registered instance of M in r.
func InstanceIn[M any](r *Registry) (*M, error) {
	return SlotFor[M](r).Instance()
}

// MustInstance returns the registered instance of M in the default registry,
// panicking if there is none.
func MustInstance[M any]() *M {
	return SlotFor[M](defaultRegistry).MustInstance()
}

// MustInstanceIn returns the registered instance of M in r, panicking if there is none.
func MustInstanceIn[M any](r *Registry) *M {
	return SlotFor[M](r).MustInstance()
}

// Register registers m in the default registry.
func Register[M any](m *M) error {
	return SlotFor[M](defaultRegistry).Register(m)
}

// RegisterIn registers m in r.
func RegisterIn[M any](r *Registry, m *M) error {
	return SlotFor[M](r).Register(m)
}

// Registered reports whether an instance of M is registered in the default registry.
func Registered[M any]() bool {
	return SlotFor[M](defaultRegistry).Registered()
}

// Unregister clears M's slot in the default registry if it holds m.
func Unregister[M any](m *M) bool {
	return SlotFor[M](defaultRegistry).Unregister(m)
}

// UnregisterIn clears M's slot in r if it holds m.
func UnregisterIn[M any](r *Registry, m *M) bool {
	return SlotFor[M](r).Unregister(m)
}
