// Package transport dials the byte streams IRC connections run over:
// plain TCP, TLS, and websocket gateways. Every dialer returns a plain
// io.ReadWriteCloser carrying CRLF-delimited IRC lines.
package transport

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultTimeout bounds a connection attempt when Config.Timeout is
// zero.
const DefaultTimeout = 1000 * time.Millisecond

const (
	defaultPort    = 6667
	defaultTLSPort = 6697
)

// Config adjusts how a connection is dialed.
type Config struct {
	// TLS wraps the TCP stream in a TLS client handshake.
	TLS bool

	// Timeout bounds the whole connection attempt, handshake included.
	Timeout time.Duration
}

func (cfg Config) timeout() time.Duration {
	if cfg.Timeout <= 0 {
		return DefaultTimeout
	}
	return cfg.Timeout
}

// Dial opens a TCP stream to server:port. A zero port picks the usual
// IRC port for the configured security.
func Dial(server string, port int, cfg Config) (io.ReadWriteCloser, error) {
	if port == 0 {
		if cfg.TLS {
			port = defaultTLSPort
		} else {
			port = defaultPort
		}
	}
	addr := net.JoinHostPort(server, strconv.Itoa(port))

	conn, err := net.DialTimeout("tcp", addr, cfg.timeout())
	if err != nil {
		return nil, err
	}

	if cfg.TLS {
		tlsConn := tls.Client(conn, &tls.Config{
			ServerName: server,
			NextProtos: []string{"irc"},
		})
		if err := conn.SetDeadline(time.Now().Add(cfg.timeout())); err != nil {
			conn.Close()
			return nil, err
		}
		if err := tlsConn.Handshake(); err != nil {
			conn.Close()
			return nil, err
		}
		if err := conn.SetDeadline(time.Time{}); err != nil {
			conn.Close()
			return nil, err
		}
		return tlsConn, nil
	}

	return conn, nil
}

// DialWebSocket connects to an IRC-over-websocket gateway at url
// ("ws://..." or "wss://..."). Each text frame carries one or more IRC
// lines.
func DialWebSocket(url string, cfg Config) (io.ReadWriteCloser, error) {
	dialer := websocket.Dialer{HandshakeTimeout: cfg.timeout()}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &wsConn{conn: conn}, nil
}

// IsTimeout reports whether err is a connection timeout rather than a
// refusal or reset.
func IsTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

// wsConn adapts a websocket connection to the io.ReadWriteCloser the
// decoder expects.
type wsConn struct {
	conn   *websocket.Conn
	reader io.Reader
}

func (c *wsConn) Read(p []byte) (int, error) {
	for {
		if c.reader == nil {
			_, reader, err := c.conn.NextReader()
			if err != nil {
				return 0, err
			}
			c.reader = reader
		}
		n, err := c.reader.Read(p)
		if err == io.EOF {
			// frame exhausted, move on to the next one
			c.reader = nil
			if n == 0 {
				continue
			}
			err = nil
		}
		return n, err
	}
}

func (c *wsConn) Write(p []byte) (int, error) {
	if err := c.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}
