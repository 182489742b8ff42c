package network

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is a transport over one dialled websocket
type Client struct {
	peer *peer
	in   inbox
}

// Dial connects to a hub at a ws:// URL
func Dial(ctx context.Context, url string, cfg *Config, log *zap.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	dialer := websocket.Dialer{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Client{in: inbox{limit: cfg.SendQueueSize * 4}}
	c.peer = newPeer(1, conn, cfg, log.Named("client"))
	go c.peer.writeLoop()
	go c.peer.readLoop(&c.in)
	return c, nil
}

func (c *Client) Send(s Snapshot) error {
	select {
	case <-c.peer.closed():
		return ErrClosed
	default:
	}
	c.peer.send(s)
	return nil
}

func (c *Client) Receive() []Snapshot {
	return c.in.drain()
}

// Close sends a close frame and tears down the connection
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.peer.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	c.peer.close()
	return nil
}

// Dropped returns how many snapshots were dropped on a full queue
func (c *Client) Dropped() int64 {
	return c.peer.dropped.Load()
}
