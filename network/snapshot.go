// Package network replicates entity placement between processes.
//
// Entities carrying ReplicatedComponent are matched across peers by UUID. The
// owning side sends periodic snapshots of its transforms; every other side
// applies received snapshots to its copies. Transports are lossy by contract.
package network

import "github.com/google/uuid"

// ReplicatedComponent marks an entity as shared over the network
type ReplicatedComponent struct {
	ID    uuid.UUID `yaml:"id"`
	Owner bool      `yaml:"owner"` // Local side is authoritative and sends updates
}

// EntityState is the replicated placement of one entity
type EntityState struct {
	ID       uuid.UUID `json:"id"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Rotation float64   `json:"rot"`
}

// Snapshot is one outbound batch of owned entity states
type Snapshot struct {
	Frame    int64         `json:"frame"`
	Entities []EntityState `json:"entities"`
}
