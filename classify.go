package liaison

import (
	"strings"
)

// ctcpAction prefixes "emote" messages: a 0x01 control byte followed by
// the literal token ACTION. The matching 0x01 suffix is optional on the
// wire.
const ctcpAction = "\x01ACTION"

// ClassifyMessage decides what an inbound chat message means for the
// consumer: a CTCP action, a direct message, or a channel message.
// Nickname comparison is ASCII case-insensitive; RFC 1459 casemapping
// quirks ({}| vs []\) are not folded.
func ClassifyMessage(id Identity, from, to, message, selfNickname string) Notification {
	isSelf := strings.EqualFold(to, selfNickname)

	if body, ok := actionBody(message); ok {
		// An action sent directly to us shows up in a pane named after
		// the sender; channel actions stay in their channel.
		channel := to
		if isSelf {
			channel = from
		}
		return ActionReceived{
			ID:      id,
			Channel: channel,
			From:    from,
			Message: from + " " + body,
		}
	}

	if isSelf {
		return DirectMessageReceived{ID: id, From: from, Message: message}
	}

	return ChannelMessageReceived{ID: id, Channel: to, From: from, Message: message}
}

func actionBody(message string) (string, bool) {
	trimmed := strings.TrimSpace(message)
	if !strings.HasPrefix(trimmed, ctcpAction) {
		return "", false
	}
	body := strings.TrimPrefix(trimmed, ctcpAction)
	body = strings.TrimSuffix(body, "\x01")
	body = strings.TrimPrefix(body, " ")
	return body, true
}
