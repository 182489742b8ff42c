package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleEntity is returned when an operation targets a destroyed or never-committed entity
	ErrStaleEntity = errors.New("stale entity")
	// ErrAccessConflict marks two systems in one stage that both touch a key with at least one write
	ErrAccessConflict = errors.New("access conflict")
	// ErrDependencyCycle marks a dependency graph that cannot be ordered
	ErrDependencyCycle = errors.New("dependency cycle")
	// ErrUnknownDependency marks a dependency on a system that was never added
	ErrUnknownDependency = errors.New("unknown dependency")
	// ErrDuplicateSystem marks two systems registered under one name
	ErrDuplicateSystem = errors.New("duplicate system")
	// ErrUndeclaredAccess marks a system touching data outside its declared access set
	ErrUndeclaredAccess = errors.New("undeclared access")
	// ErrUnregisteredTable marks a lookup of a component table that was never registered
	ErrUnregisteredTable = errors.New("unregistered table")
)

// SystemPanic carries a recovered panic out of a system run
type SystemPanic struct {
	System string
	Value  any
	Stack  []byte
}

func (p *SystemPanic) Error() string {
	return fmt.Sprintf("system %s panicked: %v", p.System, p.Value)
}

// Unwrap exposes a panic value that was itself an error
func (p *SystemPanic) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}
