package httpclient

import (
	"context"
	"net"
	"time"
)

// idleTimeoutConn fails a read that receives nothing for timeout. The
// deadline moves forward on every read, so a slow but steady body is fine.
type idleTimeoutConn struct {
	net.Conn
	timeout time.Duration
}

func (c *idleTimeoutConn) Read(b []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}

type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// withReadIdleTimeout wraps every connection dialed by dial in an idleTimeoutConn.
func withReadIdleTimeout(dial dialFunc, timeout time.Duration) dialFunc {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := dial(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		return &idleTimeoutConn{Conn: conn, timeout: timeout}, nil
	}
}
