// Package service runs the lifecycle of long-lived collaborators that live
// outside the frame loop: the terminal screen, its input pump, audio output
// and replication transports.
//
// Lifecycle:
//  1. Construction
//  2. Start() - acquire the resource, launch goroutines if any
//  3. [frame loop runs]
//  4. Stop() - halt goroutines, release the resource
package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Service is one collaborator with a start/stop lifecycle
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Start begins operation; a failed start leaves nothing to stop
	Start() error

	// Stop halts operation and releases resources
	// Must be idempotent
	Stop() error
}

// Func adapts a pair of functions into a Service
type Func struct {
	ID      string
	OnStart func() error
	OnStop  func() error
}

func (f Func) Name() string { return f.ID }

func (f Func) Start() error {
	if f.OnStart == nil {
		return nil
	}
	return f.OnStart()
}

func (f Func) Stop() error {
	if f.OnStop == nil {
		return nil
	}
	return f.OnStop()
}

// Manager starts services in order and stops them in reverse
type Manager struct {
	log     *zap.Logger
	started []Service
}

func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{log: log.Named("service")}
}

// Start starts s and records it for StopAll
func (m *Manager) Start(s Service) error {
	for _, existing := range m.started {
		if existing.Name() == s.Name() {
			return fmt.Errorf("service %s already started", s.Name())
		}
	}
	if err := s.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.Name(), err)
	}
	m.started = append(m.started, s)
	m.log.Debug("service started", zap.String("service", s.Name()))
	return nil
}

// Running returns started service names in start order
func (m *Manager) Running() []string {
	names := make([]string, len(m.started))
	for i, s := range m.started {
		names[i] = s.Name()
	}
	return names
}

// StopAll stops every started service in reverse order
// Every service is stopped even when an earlier one fails; the errors are joined
func (m *Manager) StopAll() error {
	var errs []error
	for i := len(m.started) - 1; i >= 0; i-- {
		s := m.started[i]
		if err := s.Stop(); err != nil {
			m.log.Warn("service stop failed", zap.String("service", s.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("stop %s: %w", s.Name(), err))
			continue
		}
		m.log.Debug("service stopped", zap.String("service", s.Name()))
	}
	m.started = m.started[:0]
	return errors.Join(errs...)
}
