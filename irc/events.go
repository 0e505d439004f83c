package irc

// Event is one inbound protocol event produced by the Decoder. Events
// are delivered on a single ordered channel, one value per interpreted
// server line (or batch of lines, for MOTD and names replies).
type Event interface{}

type WelcomeEvent struct {
	Nick string
}

type MotdEvent struct {
	Text string
}

type NoticeEvent struct {
	From    string
	To      string
	Message string
}

type AwayEvent struct {
	Nick    string
	Message string
}

type PartEvent struct {
	Nick     string
	Message  string
	Channels []string
}

type QuitEvent struct {
	Nick    string
	Message string
}

type NamesEvent struct {
	Channel string
	Names   []string
}

type TopicEvent struct {
	Channel string
	Topic   string
}

type JoinEvent struct {
	Channel string
	Nick    string
}

type NickEvent struct {
	Nick    string
	NewNick string
}

type PrivMsgEvent struct {
	From    string
	To      string
	Message string
}

// ErrorEvent reports an ERROR line from the server. The connection is
// usually closed by the server right after.
type ErrorEvent struct {
	Message string
}
