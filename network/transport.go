package network

import (
	"errors"
	"sync"
)

// ErrClosed is returned by operations on a closed transport
var ErrClosed = errors.New("transport closed")

// Transport moves snapshots between peers
// Send never blocks and drops when congested; Receive drains without blocking
type Transport interface {
	Send(Snapshot) error
	Receive() []Snapshot
	Close() error
}

// inbox buffers snapshots received by I/O goroutines until the frame drains them
type inbox struct {
	mu    sync.Mutex
	items []Snapshot
	limit int
}

func (b *inbox) push(s Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.limit > 0 && len(b.items) >= b.limit {
		// Oldest state is the least useful
		b.items = b.items[1:]
	}
	b.items = append(b.items, s)
}

func (b *inbox) drain() []Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	return out
}

// Loopback is an in-process transport; a pair delivers each side's sends to the other
type Loopback struct {
	peer   *Loopback
	in     inbox
	mu     sync.Mutex
	closed bool
}

// NewLoopbackPair returns two connected in-process transports
func NewLoopbackPair() (*Loopback, *Loopback) {
	a, b := &Loopback{}, &Loopback{}
	a.peer, b.peer = b, a
	return a, b
}

func (l *Loopback) Send(s Snapshot) error {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return ErrClosed
	}
	l.peer.in.push(s)
	return nil
}

func (l *Loopback) Receive() []Snapshot {
	return l.in.drain()
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}
