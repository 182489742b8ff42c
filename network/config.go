package network

import "time"

// Role defines the replication topology role
type Role uint8

const (
	RoleNone   Role = iota // Replication disabled
	RoleClient             // Dials a hub
	RoleServer             // Accepts peers and broadcasts
)

// Config holds transport configuration
type Config struct {
	Role Role

	// Listen address (server) or websocket URL (client)
	Address string

	MaxPeers int

	ConnectTimeout time.Duration
	WriteTimeout   time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
}

// DefaultConfig returns defaults for a disabled transport
func DefaultConfig() *Config {
	return &Config{
		Role:            RoleNone,
		Address:         ":7777",
		MaxPeers:        16,
		ConnectTimeout:  5 * time.Second,
		WriteTimeout:    5 * time.Second,
		ReadBufferSize:  16 * 1024,
		WriteBufferSize: 16 * 1024,
		SendQueueSize:   64,
	}
}
