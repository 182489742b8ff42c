package network

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// PeerID identifies a connection within one transport
type PeerID uint32

// peer is one websocket endpoint with its own read and write goroutines
type peer struct {
	id      PeerID
	conn    *websocket.Conn
	timeout time.Duration
	log     *zap.Logger

	sendCh    chan Snapshot
	closeCh   chan struct{}
	closeOnce sync.Once
	dropped   atomic.Int64
}

func newPeer(id PeerID, conn *websocket.Conn, cfg *Config, log *zap.Logger) *peer {
	return &peer{
		id:      id,
		conn:    conn,
		timeout: cfg.WriteTimeout,
		log:     log.With(zap.Uint32("peer", uint32(id)), zap.String("addr", conn.RemoteAddr().String())),
		sendCh:  make(chan Snapshot, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
}

// send queues a snapshot; returns false if the peer is closed or its queue is full
func (p *peer) send(s Snapshot) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}
	select {
	case p.sendCh <- s:
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

func (p *peer) close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		p.conn.Close()
	})
}

func (p *peer) closed() <-chan struct{} {
	return p.closeCh
}

// readLoop decodes inbound snapshots into in until the connection fails
func (p *peer) readLoop(in *inbox) {
	defer p.close()
	for {
		var s Snapshot
		if err := p.conn.ReadJSON(&s); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				p.log.Warn("peer read failed", zap.Error(err))
			}
			return
		}
		in.push(s)
	}
}

// writeLoop encodes queued snapshots until the peer closes
func (p *peer) writeLoop() {
	defer p.close()
	for {
		select {
		case <-p.closeCh:
			return
		case s := <-p.sendCh:
			if p.timeout > 0 {
				_ = p.conn.SetWriteDeadline(time.Now().Add(p.timeout))
			}
			if err := p.conn.WriteJSON(s); err != nil {
				p.log.Warn("peer write failed", zap.Error(err))
				return
			}
		}
	}
}
