package liaison

// ConversationType tells a joined channel apart from a direct-message
// exchange.
type ConversationType string

const (
	ChannelConversation ConversationType = "channel"
	DirectConversation  ConversationType = "direct"
)

// Conversation is one pane of a connection: a channel or a query with a
// user. Values are immutable; updates return copies.
type Conversation struct {
	Name         string
	Type         ConversationType
	ReceivedJoin bool
}

func (c Conversation) WithReceivedJoin(v bool) Conversation {
	c.ReceivedJoin = v
	return c
}

// ConnectionState is the consumer-side snapshot of a connection. The
// manager never holds one; it only carries snapshots inside
// notifications for the consumer to store.
type ConnectionState struct {
	ID            Identity
	Connected     bool
	Welcomed      bool
	Conversations []Conversation
	LastError     string
}

func (s ConnectionState) WithConnected(v bool) ConnectionState {
	s.Connected = v
	return s
}

func (s ConnectionState) WithError(reason string) ConnectionState {
	s.LastError = reason
	return s
}

// ResetJoins returns a copy of the state with ReceivedJoin cleared on
// every conversation, direct ones included, mirroring the server-side
// loss of membership on reconnect.
func (s ConnectionState) ResetJoins() ConnectionState {
	if len(s.Conversations) == 0 {
		return s
	}
	conversations := make([]Conversation, len(s.Conversations))
	for i, c := range s.Conversations {
		conversations[i] = c.WithReceivedJoin(false)
	}
	s.Conversations = conversations
	return s
}
