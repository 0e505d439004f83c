package liaison

// Notification is one observable change the consumer must react to.
// Each variant is a tagged, immutable record carrying the identity of
// the connection it concerns.
type Notification interface{}

// Sink receives the manager's notifications, in emission order.
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(n Notification)

func (f SinkFunc) Notify(n Notification) {
	f(n)
}

// ConnectionPending is emitted synchronously by Connect and Reconnect,
// before any network activity, so the consumer can render an optimistic
// "connecting" state.
type ConnectionPending struct {
	ID Identity
}

// ConnectionSucceeded reports that the transport connected and the
// registration handshake was sent. On reconnects Connection carries the
// prior conversations with their join flags reset.
type ConnectionSucceeded struct {
	ID         Identity
	Connection ConnectionState
}

// CredentialsVerified signals that the credentials reached a server and
// may be reused, e.g. for a later reconnect.
type CredentialsVerified struct {
	ID          Identity
	Credentials Credentials
}

// ReconnectionRequested is emitted by Reconnect when the consumer
// already knows this identity, carrying the known snapshot for UI
// feedback. It is skipped for identities the consumer never saw.
type ReconnectionRequested struct {
	ID         Identity
	Connection ConnectionState
}

type ConnectionClosed struct {
	ID Identity
}

type ConnectionError struct {
	ID     Identity
	Reason string
}

type ProtocolError struct {
	ID      Identity
	Message string
}

type NoticeReceived struct {
	ID      Identity
	From    string
	To      string
	Message string
}

type AwayReceived struct {
	ID      Identity
	Nick    string
	Message string
}

type PartReceived struct {
	ID       Identity
	Nick     string
	Message  string
	Channels []string
}

type QuitReceived struct {
	ID      Identity
	Nick    string
	Message string
}

type MotdReceived struct {
	ID   Identity
	Text string
}

type WelcomeReceived struct {
	ID   Identity
	Nick string
}

type NickChanged struct {
	ID  Identity
	Old string
	New string
}

type TopicReceived struct {
	ID      Identity
	Channel string
	Topic   string
}

type JoinReceived struct {
	ID      Identity
	Channel string
	From    string
}

type NamesReceived struct {
	ID      Identity
	Channel string
	Names   []string
}

type ActionReceived struct {
	ID      Identity
	Channel string
	From    string
	Message string
}

type DirectMessageReceived struct {
	ID      Identity
	From    string
	Message string
}

type ChannelMessageReceived struct {
	ID      Identity
	Channel string
	From    string
	Message string
}
