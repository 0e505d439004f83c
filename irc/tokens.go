package irc

import (
	"errors"
	"strings"
)

func word(s string) (w, rest string) {
	split := strings.SplitN(s, " ", 2)

	if len(split) < 2 {
		w = split[0]
		rest = ""
	} else {
		w = split[0]
		rest = split[1]
	}

	return
}

func tagEscape(c rune) (escape rune) {
	switch c {
	case ':':
		escape = ';'
	case 's':
		escape = ' '
	case 'r':
		escape = '\r'
	case 'n':
		escape = '\n'
	default:
		escape = c
	}

	return
}

func unescapeTagValue(escaped string) string {
	var builder strings.Builder
	builder.Grow(len(escaped))
	escape := false

	for _, c := range escaped {
		if c == '\\' && !escape {
			escape = true
		} else {
			if escape {
				c = tagEscape(c)
			}
			builder.WriteRune(c)
			escape = false
		}
	}

	return builder.String()
}

func parseTags(s string) (tags map[string]string) {
	s = s[1:]
	tags = map[string]string{}

	for _, item := range strings.Split(s, ";") {
		if item == "" || item == "=" || item == "+" || item == "+=" {
			continue
		}

		kv := strings.SplitN(item, "=", 2)
		if len(kv) < 2 {
			tags[kv[0]] = ""
		} else {
			tags[kv[0]] = unescapeTagValue(kv[1])
		}
	}

	return
}

var (
	errEmptyMessage      = errors.New("empty message")
	errIncompleteMessage = errors.New("message is incomplete")
	errNoPrefix          = errors.New("missing prefix")
	errNotEnoughParams   = errors.New("not enough params")
)

// Message is a single IRC line, split into its tags, prefix, command and
// parameters but otherwise uninterpreted.
type Message struct {
	Tags    map[string]string
	Prefix  string
	Command string
	Params  []string
}

func NewMessage(command string, params ...string) Message {
	return Message{Command: command, Params: params}
}

// Tokenize parses a raw IRC line, without its trailing CRLF.
func Tokenize(line string) (msg Message, err error) {
	line = strings.TrimLeft(line, " ")
	if line == "" {
		err = errEmptyMessage
		return
	}

	if line[0] == '@' {
		var tags string

		tags, line = word(line)
		msg.Tags = parseTags(tags)
	}

	line = strings.TrimLeft(line, " ")
	if line == "" {
		err = errIncompleteMessage
		return
	}

	if line[0] == ':' {
		var prefix string

		prefix, line = word(line)
		msg.Prefix = prefix[1:]
	}

	line = strings.TrimLeft(line, " ")
	if line == "" {
		err = errIncompleteMessage
		return
	}

	msg.Command, line = word(line)
	msg.Command = strings.ToUpper(msg.Command)

	msg.Params = make([]string, 0, 15)
	for line != "" {
		if line[0] == ':' {
			msg.Params = append(msg.Params, line[1:])
			break
		}

		var param string
		param, line = word(line)
		msg.Params = append(msg.Params, param)
	}

	return
}

// Validate checks the parameter arity of the commands the decoder
// interprets. Unknown commands pass.
func (msg *Message) Validate() (err error) {
	switch msg.Command {
	case rplWelcome:
		if len(msg.Params) < 1 {
			err = errNotEnoughParams
		}
	case rplAway:
		if len(msg.Params) < 3 {
			err = errNotEnoughParams
		}
	case rplTopic:
		if len(msg.Params) < 3 {
			err = errNotEnoughParams
		}
	case rplMotd:
		if len(msg.Params) < 2 {
			err = errNotEnoughParams
		}
	case rplNamreply:
		if len(msg.Params) < 4 {
			err = errNotEnoughParams
		}
	case rplEndofnames:
		if len(msg.Params) < 2 {
			err = errNotEnoughParams
		}
	case "JOIN", "PART", "NICK":
		if len(msg.Params) < 1 {
			err = errNotEnoughParams
		} else if msg.Prefix == "" {
			err = errNoPrefix
		}
	case "QUIT":
		if msg.Prefix == "" {
			err = errNoPrefix
		}
	case "PRIVMSG", "NOTICE":
		if len(msg.Params) < 2 {
			err = errNotEnoughParams
		} else if msg.Prefix == "" {
			err = errNoPrefix
		}
	case "TOPIC":
		if len(msg.Params) < 2 {
			err = errNotEnoughParams
		}
	case "PING", "ERROR":
		if len(msg.Params) < 1 {
			err = errNotEnoughParams
		}
	}
	return
}

// String marshals the message back to its wire form, without CRLF.
// Outgoing messages never carry tags, so tags are not emitted.
func (msg Message) String() string {
	var builder strings.Builder

	if msg.Prefix != "" {
		builder.WriteByte(':')
		builder.WriteString(msg.Prefix)
		builder.WriteByte(' ')
	}
	builder.WriteString(msg.Command)

	for i, param := range msg.Params {
		builder.WriteByte(' ')
		if i == len(msg.Params)-1 && (param == "" || param[0] == ':' || strings.ContainsRune(param, ' ')) {
			builder.WriteByte(':')
		}
		builder.WriteString(param)
	}

	return builder.String()
}

// FullMask splits a "nick!user@host" prefix. Missing parts are left
// empty.
func FullMask(s string) (nick, user, host string) {
	if s == "" {
		return
	}

	spl0 := strings.Split(s, "@")
	if 1 < len(spl0) {
		host = spl0[1]
	}

	spl1 := strings.Split(spl0[0], "!")
	if 1 < len(spl1) {
		user = spl1[1]
	}

	nick = spl1[0]

	return
}

// TokenizeNames parses the trailing parameter of a names reply,
// stripping membership prefixes such as @ and +.
func TokenizeNames(trailing string, prefixes string) (names []string) {
	for _, name := range strings.Split(trailing, " ") {
		if name == "" {
			continue
		}

		mask := strings.TrimLeft(name, prefixes)
		nick, _, _ := FullMask(mask)
		names = append(names, nick)
	}

	return
}
