// Package irc implements the IRC wire protocol: a line tokenizer and a
// Decoder that turns a byte stream into typed protocol events and
// exposes the outbound commands a connection needs.
package irc

import (
	"bufio"
	"context"
	"io"
	"log"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/time/rate"
)

const eventChanSize = 64

// DecoderParams configures a Decoder. The zero value is usable.
type DecoderParams struct {
	// Logger receives notes about malformed lines. Defaults to the log
	// package's standard logger.
	Logger *log.Logger

	// Encoding transcodes inbound lines before tokenizing, for servers
	// that still speak latin-1 or similar. Nil means UTF-8 passthrough.
	Encoding encoding.Encoding

	// SendLimit and SendBurst throttle outgoing lines so the server's
	// flood protection doesn't kick in. Zero values pick defaults of
	// 2 lines per second with a burst of 16.
	SendLimit rate.Limit
	SendBurst int
}

// A Decoder owns one side of an IRC connection: it reads lines from the
// stream and delivers typed events on Events, and writes the commands
// queued by Pass, Nick, User and Join. PING is answered internally and
// never surfaces as an event.
type Decoder struct {
	conn    io.ReadWriteCloser
	events  chan Event
	out     chan Message
	limiter *rate.Limiter
	logger  *log.Logger
	decode  *encoding.Decoder

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	// err is set by the read goroutine before events is closed, so it
	// may be read without locking once Events is drained.
	err error

	// reply batches in progress, touched only by the read goroutine.
	motd  []string
	names map[string][]string
}

func NewDecoder(conn io.ReadWriteCloser, params DecoderParams) *Decoder {
	if params.Logger == nil {
		params.Logger = log.Default()
	}
	if params.SendLimit == 0 {
		params.SendLimit = rate.Limit(2)
	}
	if params.SendBurst == 0 {
		params.SendBurst = 16
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Decoder{
		conn:    conn,
		events:  make(chan Event, eventChanSize),
		out:     make(chan Message, eventChanSize),
		limiter: rate.NewLimiter(params.SendLimit, params.SendBurst),
		logger:  params.Logger,
		ctx:     ctx,
		cancel:  cancel,
		names:   map[string][]string{},
	}
	if params.Encoding != nil {
		d.decode = params.Encoding.NewDecoder()
	}

	go d.readLoop()
	go d.writeLoop()

	return d
}

// Events returns the inbound event channel. It is closed when the
// connection ends; Err reports why.
func (d *Decoder) Events() <-chan Event {
	return d.events
}

// Err returns the read error that ended the event stream, or nil if the
// stream ended with a clean EOF. It must not be called before Events is
// closed.
func (d *Decoder) Err() error {
	return d.err
}

// Close tears the decoder down and closes the underlying connection.
func (d *Decoder) Close() {
	d.closeOnce.Do(func() {
		d.cancel()
		d.conn.Close()
	})
}

func (d *Decoder) Pass(password string) {
	d.send(NewMessage("PASS", password))
}

func (d *Decoder) Nick(nick string) {
	d.send(NewMessage("NICK", nick))
}

func (d *Decoder) User(user, realName string) {
	d.send(NewMessage("USER", user, "0", "*", realName))
}

func (d *Decoder) Join(channel string) {
	d.send(NewMessage("JOIN", channel))
}

func (d *Decoder) send(msg Message) {
	select {
	case d.out <- msg:
	case <-d.ctx.Done():
	}
}

func (d *Decoder) writeLoop() {
	for {
		select {
		case <-d.ctx.Done():
			return
		case msg := <-d.out:
			if err := d.limiter.Wait(d.ctx); err != nil {
				return
			}
			if _, err := io.WriteString(d.conn, msg.String()+"\r\n"); err != nil {
				return
			}
		}
	}
}

func (d *Decoder) readLoop() {
	s := bufio.NewScanner(d.conn)
	for s.Scan() {
		line := s.Text()
		if line == "" {
			continue
		}
		if d.decode != nil {
			if decoded, err := d.decode.String(line); err == nil {
				line = decoded
			}
		}

		msg, err := Tokenize(line)
		if err != nil {
			// Malformed lines come from broken servers or bugs in the
			// tokenizer. Either way the connection can live on.
			d.logger.Printf("irc: dropping line %q: %v", line, err)
			continue
		}
		if err := msg.Validate(); err != nil {
			d.logger.Printf("irc: dropping %s: %v", msg.Command, err)
			continue
		}

		if ev := d.handle(msg); ev != nil {
			select {
			case d.events <- ev:
			case <-d.ctx.Done():
				return
			}
		}
	}
	d.err = s.Err()
	close(d.events)
}

// handle maps one server line to an event, or nil when the line is
// either answered internally, part of a reply batch, or uninteresting
// (MODE, INVITE, KICK and most numerics).
func (d *Decoder) handle(msg Message) Event {
	switch msg.Command {
	case rplWelcome:
		return WelcomeEvent{Nick: msg.Params[0]}
	case rplMotdstart:
		d.motd = d.motd[:0]
	case rplMotd:
		d.motd = append(d.motd, msg.Params[1])
	case rplEndofmotd, errNomotd:
		text := strings.Join(d.motd, "\n")
		d.motd = nil
		return MotdEvent{Text: text}
	case rplAway:
		return AwayEvent{Nick: msg.Params[1], Message: msg.Params[2]}
	case rplNamreply:
		channel := msg.Params[2]
		d.names[channel] = append(d.names[channel], TokenizeNames(msg.Params[3], "~&@%+")...)
	case rplEndofnames:
		channel := msg.Params[1]
		names := d.names[channel]
		delete(d.names, channel)
		return NamesEvent{Channel: channel, Names: names}
	case rplTopic:
		return TopicEvent{Channel: msg.Params[1], Topic: msg.Params[2]}
	case "TOPIC":
		return TopicEvent{Channel: msg.Params[0], Topic: msg.Params[1]}
	case "NOTICE":
		nick, _, _ := FullMask(msg.Prefix)
		return NoticeEvent{From: nick, To: msg.Params[0], Message: msg.Params[1]}
	case "PRIVMSG":
		nick, _, _ := FullMask(msg.Prefix)
		return PrivMsgEvent{From: nick, To: msg.Params[0], Message: msg.Params[1]}
	case "JOIN":
		nick, _, _ := FullMask(msg.Prefix)
		return JoinEvent{Channel: msg.Params[0], Nick: nick}
	case "PART":
		nick, _, _ := FullMask(msg.Prefix)
		ev := PartEvent{Nick: nick, Channels: strings.Split(msg.Params[0], ",")}
		if len(msg.Params) > 1 {
			ev.Message = msg.Params[1]
		}
		return ev
	case "QUIT":
		nick, _, _ := FullMask(msg.Prefix)
		ev := QuitEvent{Nick: nick}
		if len(msg.Params) > 0 {
			ev.Message = msg.Params[0]
		}
		return ev
	case "NICK":
		nick, _, _ := FullMask(msg.Prefix)
		return NickEvent{Nick: nick, NewNick: msg.Params[0]}
	case "MODE", "INVITE", "KICK":
		// informational only; surfaced in the log, not as events
		d.logger.Printf("irc: ignoring %s %s", msg.Command, strings.Join(msg.Params, " "))
	case "PING":
		d.send(NewMessage("PONG", msg.Params[0]))
	case "ERROR":
		return ErrorEvent{Message: msg.Params[0]}
	}
	return nil
}
