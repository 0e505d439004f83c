// Package liaison manages the lifecycle of per-server IRC connections.
// A Manager owns one transport and decoder per connection, translates
// protocol events into typed notifications for a consuming application,
// and replays channel membership on reconnect. It keeps no connection
// state of its own: the consumer derives state from the notification
// stream and hands it back through a ConnectionStore when reconnecting.
package liaison

import (
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/encoding"

	"git.sr.ht/~renya/liaison/irc"
	"git.sr.ht/~renya/liaison/transport"
)

// Commander is the consumer's outbound command surface. The manager
// calls it once per previously joined channel during reconnect replay.
type Commander interface {
	Join(id Identity, channel string)
}

// ConnectionStore looks up the consumer's last known snapshot for an
// identity. It is read once when Reconnect is called and once more when
// the transport connects; a consumer mutating state in between may get
// a stale replay list. The lookup is best effort by design.
type ConnectionStore interface {
	Lookup(id Identity) (ConnectionState, bool)
}

// DialFunc opens the byte stream for a set of credentials. The returned
// stream can be anything speaking CRLF-delimited IRC lines: tcp, tls,
// ws, or a server mock in tests.
type DialFunc func(creds Credentials) (io.ReadWriteCloser, error)

// Manager drives connections. All methods may be called from any
// goroutine; each connection runs its own event loop and the sink is
// invoked from that loop, one notification at a time per connection.
type Manager struct {
	sink      Sink
	store     ConnectionStore
	commander Commander

	dial     DialFunc
	logger   *log.Logger
	timeout  time.Duration
	noTLS    bool
	encoding encoding.Encoding

	// conns tracks the live decoder per identity so Join can reach the
	// wire. When concurrent connections share an identity, the most
	// recently connected one wins.
	mu    sync.Mutex
	conns map[Identity]*irc.Decoder
}

type Option func(*Manager)

// WithDialer replaces the default TCP/TLS dialer.
func WithDialer(dial DialFunc) Option {
	return func(m *Manager) { m.dial = dial }
}

// WithTimeout bounds each connection attempt. Defaults to
// transport.DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// WithLogger receives notes about dropped protocol lines. Defaults to
// the log package's standard logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithoutTLS makes the default dialer use plain TCP.
func WithoutTLS() Option {
	return func(m *Manager) { m.noTLS = true }
}

// WithEncoding transcodes inbound lines, for servers not speaking
// UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(m *Manager) { m.encoding = enc }
}

func NewManager(sink Sink, store ConnectionStore, commander Commander, opts ...Option) *Manager {
	m := &Manager{
		sink:      sink,
		store:     store,
		commander: commander,
		timeout:   transport.DefaultTimeout,
		logger:    log.Default(),
		conns:     map[Identity]*irc.Decoder{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.dial == nil {
		m.dial = func(creds Credentials) (io.ReadWriteCloser, error) {
			return transport.Dial(creds.Server, creds.Port, transport.Config{
				TLS:     !m.noTLS,
				Timeout: m.timeout,
			})
		}
	}
	return m
}

// Connect opens a new connection for creds. It emits ConnectionPending
// synchronously and returns the connection's identity; everything else
// arrives through the sink as the connection progresses. Concurrent
// calls with equal credentials open independent connections sharing one
// identity; deduplication is the consumer's business.
func (m *Manager) Connect(creds Credentials) Identity {
	id := creds.Identity()
	m.sink.Notify(ConnectionPending{ID: id})
	go m.run(id, creds, false)
	return id
}

// Reconnect opens a fresh connection for an identity the consumer may
// have seen before. If the store knows the identity, the known snapshot
// is echoed back immediately as ReconnectionRequested, and once the
// transport connects the previously joined channels are rejoined in
// their original order, strictly after ConnectionSucceeded.
func (m *Manager) Reconnect(creds Credentials) Identity {
	id := creds.Identity()
	if prev, ok := m.lookup(id); ok {
		m.sink.Notify(ReconnectionRequested{ID: id, Connection: prev})
	}
	m.sink.Notify(ConnectionPending{ID: id})
	go m.run(id, creds, true)
	return id
}

// Join sends a join command on the live connection for id, if any. It
// is the bridge a consumer's command layer uses to act on rejoin
// requests; Manager itself satisfies Commander through it.
func (m *Manager) Join(id Identity, channel string) {
	m.mu.Lock()
	d := m.conns[id]
	m.mu.Unlock()
	if d != nil {
		d.Join(channel)
	}
}

func (m *Manager) register(id Identity, d *irc.Decoder) {
	m.mu.Lock()
	m.conns[id] = d
	m.mu.Unlock()
}

func (m *Manager) deregister(id Identity, d *irc.Decoder) {
	m.mu.Lock()
	if m.conns[id] == d {
		delete(m.conns, id)
	}
	m.mu.Unlock()
}

func (m *Manager) lookup(id Identity) (ConnectionState, bool) {
	if m.store == nil {
		return ConnectionState{}, false
	}
	return m.store.Lookup(id)
}

// run owns one connection from dial to teardown. It is the only
// goroutine emitting notifications for this connection, so the sink
// sees them in order.
func (m *Manager) run(id Identity, creds Credentials, replay bool) {
	conn, err := m.dial(creds)
	if err != nil {
		reason := err.Error()
		if transport.IsTimeout(err) {
			reason = "connection timed out"
		}
		m.sink.Notify(ConnectionError{ID: id, Reason: reason})
		return
	}

	d := irc.NewDecoder(conn, irc.DecoderParams{
		Logger:   m.logger,
		Encoding: m.encoding,
	})
	defer d.Close()
	m.register(id, d)
	defer m.deregister(id, d)

	if creds.Password != "" {
		d.Pass(creds.Password)
	}
	d.Nick(creds.Nickname)
	d.User(creds.Nickname, creds.RealName)

	state := ConnectionState{ID: id, Connected: true}
	if replay {
		if prev, ok := m.lookup(id); ok {
			state.Conversations = prev.ResetJoins().Conversations
		}
	}
	m.sink.Notify(ConnectionSucceeded{ID: id, Connection: state})
	m.sink.Notify(CredentialsVerified{ID: id, Credentials: creds})

	if replay && m.commander != nil {
		for _, c := range state.Conversations {
			if c.Type == ChannelConversation {
				m.commander.Join(id, c.Name)
			}
		}
	}

	// The server may change our nick (on collision, or via a rename);
	// track it so message classification keeps matching us.
	self := creds.Nickname
	for ev := range d.Events() {
		switch ev := ev.(type) {
		case irc.WelcomeEvent:
			self = ev.Nick
		case irc.NickEvent:
			if strings.EqualFold(ev.Nick, self) {
				self = ev.NewNick
			}
		}
		for _, n := range translate(id, self, ev) {
			m.sink.Notify(n)
		}
	}

	if err := d.Err(); err != nil {
		m.sink.Notify(ConnectionError{ID: id, Reason: err.Error()})
	}
	m.sink.Notify(ConnectionClosed{ID: id})
}

// translate maps one protocol event to its notifications. It is pure:
// no connection state is read or written here.
func translate(id Identity, self string, ev irc.Event) []Notification {
	switch ev := ev.(type) {
	case irc.WelcomeEvent:
		return []Notification{WelcomeReceived{ID: id, Nick: ev.Nick}}
	case irc.MotdEvent:
		return []Notification{MotdReceived{ID: id, Text: ev.Text}}
	case irc.NoticeEvent:
		to, message := RouteNotice(ev.To, ev.Message)
		return []Notification{NoticeReceived{ID: id, From: ev.From, To: to, Message: message}}
	case irc.AwayEvent:
		return []Notification{AwayReceived{ID: id, Nick: ev.Nick, Message: ev.Message}}
	case irc.PartEvent:
		return []Notification{PartReceived{ID: id, Nick: ev.Nick, Message: ev.Message, Channels: ev.Channels}}
	case irc.QuitEvent:
		return []Notification{QuitReceived{ID: id, Nick: ev.Nick, Message: ev.Message}}
	case irc.NamesEvent:
		return []Notification{NamesReceived{ID: id, Channel: ev.Channel, Names: ev.Names}}
	case irc.TopicEvent:
		return []Notification{TopicReceived{ID: id, Channel: ev.Channel, Topic: ev.Topic}}
	case irc.JoinEvent:
		return []Notification{JoinReceived{ID: id, Channel: ev.Channel, From: ev.Nick}}
	case irc.NickEvent:
		return []Notification{NickChanged{ID: id, Old: ev.Nick, New: ev.NewNick}}
	case irc.PrivMsgEvent:
		return []Notification{ClassifyMessage(id, ev.From, ev.To, ev.Message, self)}
	case irc.ErrorEvent:
		return []Notification{ProtocolError{ID: id, Message: ev.Message}}
	}
	return nil
}
