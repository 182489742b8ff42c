package network

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub accepts websocket peers, broadcasts outbound snapshots to all of them
// and collects their snapshots into one inbox
type Hub struct {
	cfg      *Config
	log      *zap.Logger
	upgrader websocket.Upgrader
	in       inbox

	mu     sync.RWMutex
	peers  map[PeerID]*peer
	nextID atomic.Uint32
	closed bool
	server *http.Server
}

// NewHub creates a hub; it serves once mounted or after Listen
func NewHub(cfg *Config, log *zap.Logger) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		cfg: cfg,
		log: log.Named("hub"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
		},
		in:    inbox{limit: cfg.SendQueueSize * 4},
		peers: make(map[PeerID]*peer),
	}
}

// ServeHTTP upgrades the request and registers the peer
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	full := len(h.peers) >= h.cfg.MaxPeers
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		http.Error(w, "hub closed", http.StatusServiceUnavailable)
		return
	}
	if full {
		http.Error(w, "max peers reached", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	id := PeerID(h.nextID.Add(1))
	p := newPeer(id, conn, h.cfg, h.log)
	h.mu.Lock()
	h.peers[id] = p
	h.mu.Unlock()
	h.log.Info("peer connected", zap.Uint32("peer", uint32(id)))

	go p.writeLoop()
	go func() {
		p.readLoop(&h.in)
		h.mu.Lock()
		delete(h.peers, id)
		h.mu.Unlock()
		h.log.Info("peer disconnected", zap.Uint32("peer", uint32(id)))
	}()
}

// Listen serves the hub on addr in the background and returns the bound address
func (h *Hub) Listen(addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: h}
	h.mu.Lock()
	h.server = srv
	h.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.log.Error("hub server stopped", zap.Error(err))
		}
	}()
	h.log.Info("hub listening", zap.String("addr", ln.Addr().String()))
	return ln.Addr(), nil
}

// Send broadcasts to every peer; congested peers miss this snapshot
func (h *Hub) Send(s Snapshot) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrClosed
	}
	for _, p := range h.peers {
		p.send(s)
	}
	return nil
}

// Receive drains snapshots collected from all peers
func (h *Hub) Receive() []Snapshot {
	return h.in.drain()
}

// Peers returns the connected peer count
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Close disconnects all peers and stops the listener if any
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	srv := h.server
	peers := make([]*peer, 0, len(h.peers))
	for _, p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.Unlock()

	for _, p := range peers {
		p.close()
	}
	if srv != nil {
		return srv.Shutdown(context.Background())
	}
	return nil
}
