package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strings"
	"sync"

	"git.sr.ht/~renya/liaison"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to the configuration file")
	flag.Parse()

	if configPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			log.Panicln(err)
		}
		configPath = path.Join(configDir, "liaison", "liaison.yaml")
	}

	cfg, err := liaison.LoadConfigFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load the required configuration file at %q: %s\n", configPath, err)
		os.Exit(1)
	}

	c := newConsumer()

	opts := []liaison.Option{}
	if cfg.NoTLS {
		opts = append(opts, liaison.WithoutTLS())
	}
	if cfg.Timeout() > 0 {
		opts = append(opts, liaison.WithTimeout(cfg.Timeout()))
	}

	manager := liaison.NewManager(c, c, c, opts...)
	c.manager = manager

	creds := cfg.Credentials()
	id := manager.Connect(creds)

	// /reconnect and /join are the whole command surface; everything
	// else on stdin is ignored.
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "/quit":
			return
		case line == "/reconnect":
			id = manager.Reconnect(creds)
		case strings.HasPrefix(line, "/join "):
			manager.Join(id, strings.TrimSpace(strings.TrimPrefix(line, "/join ")))
		}
	}
}

// consumer is a minimal application side: it prints every notification
// and derives the connection snapshots the manager reads back on
// reconnect.
type consumer struct {
	manager *liaison.Manager

	mu          sync.Mutex
	connections map[liaison.Identity]liaison.ConnectionState
}

func newConsumer() *consumer {
	return &consumer{connections: map[liaison.Identity]liaison.ConnectionState{}}
}

// Lookup implements liaison.ConnectionStore.
func (c *consumer) Lookup(id liaison.Identity) (liaison.ConnectionState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.connections[id]
	return state, ok
}

// Join implements liaison.Commander by forwarding rejoin requests to
// the live connection.
func (c *consumer) Join(id liaison.Identity, channel string) {
	log.Printf("rejoining %s", channel)
	c.manager.Join(id, channel)
}

// Notify implements liaison.Sink.
func (c *consumer) Notify(n liaison.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch n := n.(type) {
	case liaison.ConnectionPending:
		log.Printf("connecting...")
		c.update(n.ID, func(s liaison.ConnectionState) liaison.ConnectionState {
			return s.WithConnected(false)
		})
	case liaison.ConnectionSucceeded:
		log.Printf("connected")
		c.connections[n.ID] = n.Connection
	case liaison.CredentialsVerified:
		log.Printf("credentials verified for %s", n.Credentials.Server)
	case liaison.ReconnectionRequested:
		log.Printf("reconnecting with %d conversations", len(n.Connection.Conversations))
	case liaison.WelcomeReceived:
		log.Printf("welcome, %s", n.Nick)
		c.update(n.ID, func(s liaison.ConnectionState) liaison.ConnectionState {
			s.Welcomed = true
			return s
		})
	case liaison.MotdReceived:
		log.Printf("motd:\n%s", n.Text)
	case liaison.JoinReceived:
		log.Printf("%s joined %s", n.From, n.Channel)
		c.update(n.ID, func(s liaison.ConnectionState) liaison.ConnectionState {
			return markJoined(s, n.Channel)
		})
	case liaison.NamesReceived:
		log.Printf("%s members: %s", n.Channel, strings.Join(n.Names, " "))
	case liaison.TopicReceived:
		log.Printf("%s topic: %s", n.Channel, n.Topic)
	case liaison.PartReceived:
		log.Printf("%s left %s", n.Nick, strings.Join(n.Channels, ","))
	case liaison.QuitReceived:
		log.Printf("%s quit (%s)", n.Nick, n.Message)
	case liaison.NickChanged:
		log.Printf("%s is now known as %s", n.Old, n.New)
	case liaison.AwayReceived:
		log.Printf("%s is away: %s", n.Nick, n.Message)
	case liaison.NoticeReceived:
		log.Printf("-%s:%s- %s", n.From, n.To, n.Message)
	case liaison.ActionReceived:
		log.Printf("[%s] * %s", n.Channel, n.Message)
	case liaison.DirectMessageReceived:
		log.Printf("[%s] <%s> %s", n.From, n.From, n.Message)
	case liaison.ChannelMessageReceived:
		log.Printf("[%s] <%s> %s", n.Channel, n.From, n.Message)
	case liaison.ProtocolError:
		log.Printf("server error: %s", n.Message)
	case liaison.ConnectionError:
		log.Printf("connection error: %s", n.Reason)
		c.update(n.ID, func(s liaison.ConnectionState) liaison.ConnectionState {
			return s.WithError(n.Reason)
		})
	case liaison.ConnectionClosed:
		log.Printf("connection closed")
		c.update(n.ID, func(s liaison.ConnectionState) liaison.ConnectionState {
			return s.WithConnected(false)
		})
	}
}

func (c *consumer) update(id liaison.Identity, f func(liaison.ConnectionState) liaison.ConnectionState) {
	state, ok := c.connections[id]
	if !ok {
		state = liaison.ConnectionState{ID: id}
	}
	c.connections[id] = f(state)
}

// markJoined records a join on the matching channel conversation,
// adding the conversation if this is the first time we see it.
func markJoined(s liaison.ConnectionState, channel string) liaison.ConnectionState {
	conversations := make([]liaison.Conversation, len(s.Conversations))
	copy(conversations, s.Conversations)
	for i, conv := range conversations {
		if conv.Name == channel {
			conversations[i] = conv.WithReceivedJoin(true)
			s.Conversations = conversations
			return s
		}
	}
	s.Conversations = append(conversations, liaison.Conversation{
		Name:         channel,
		Type:         liaison.ChannelConversation,
		ReceivedJoin: true,
	})
	return s
}
