// Package core provides the internal implementation of staticmock's registration
// slots, the type-indexed registry that holds them, and scoped installation for tests.
package core

import (
	"errors"
	"fmt"
	"reflect"
)

// Exported variables.
var (
	// ErrAlreadyRegistered is returned by Register under the Reject policy when a
	// different instance of the mock type is already registered.
	ErrAlreadyRegistered = errors.New("mock instance already registered")
	// ErrNilInstance is returned when a nil mock pointer is registered.
	ErrNilInstance = errors.New("nil mock instance")
	// ErrNotRegistered is returned when an instance is requested for a mock type
	// whose slot is empty.
	ErrNotRegistered = errors.New("no mock instance registered")
)

// Slot tracks at most one live instance of the mock type M.
//
// The slot holds a non-owning pointer: whoever registered the instance owns its
// lifetime. Identity is pointer identity, so a copy of the mock value is never
// "the" registered instance. Slots are not safe for concurrent use.
type Slot[M any] struct {
	_ noCopy

	current *M
	policy  Policy
}

// Instance returns the registered instance.
// It never constructs one: an empty slot is always an ErrNotRegistered error.
func (s *Slot[M]) Instance() (*M, error) {
	if s.current == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, typeName[M]())
	}

	return s.current, nil
}

// MustInstance returns the registered instance, panicking with the Instance error
// if the slot is empty. Generated stubs use this because their signatures cannot
// carry an extra error.
func (s *Slot[M]) MustInstance() *M {
	instance, err := s.Instance()
	if err != nil {
		panic(err)
	}

	return instance
}

// Register makes m the registered instance.
// Re-registering the current instance is a no-op. Registering a different instance
// while one is registered overwrites it under the Overwrite policy and fails with
// ErrAlreadyRegistered under the Reject policy.
func (s *Slot[M]) Register(m *M) error {
	if m == nil {
		return fmt.Errorf("%w: %s", ErrNilInstance, typeName[M]())
	}

	if s.current == m {
		return nil
	}

	if s.current != nil && s.policy == Reject {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, typeName[M]())
	}

	s.current = m

	return nil
}

// Registered reports whether the slot holds an instance.
func (s *Slot[M]) Registered() bool {
	return s.current != nil
}

// Unregister clears the slot if, and only if, it holds exactly m.
// It reports whether the slot was cleared. A superseded instance therefore cannot
// clear a newer registration.
func (s *Slot[M]) Unregister(m *M) bool {
	if m == nil || s.current != m {
		return false
	}

	s.current = nil

	return true
}

// noCopy is flagged by go vet's copylocks check when a Slot is copied.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// typeName returns the Go name of M for error messages.
func typeName[M any]() string {
	return reflect.TypeFor[M]().String()
}
