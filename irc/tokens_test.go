package irc

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tt := []struct {
		line string
		want Message
	}{
		{
			line: "PING :token",
			want: Message{Command: "PING", Params: []string{"token"}},
		},
		{
			line: ":irc.example.com 001 mynick :Welcome to the network",
			want: Message{
				Prefix:  "irc.example.com",
				Command: "001",
				Params:  []string{"mynick", "Welcome to the network"},
			},
		},
		{
			line: ":bob!b@host privmsg #chan :hello world",
			want: Message{
				Prefix:  "bob!b@host",
				Command: "PRIVMSG",
				Params:  []string{"#chan", "hello world"},
			},
		},
		{
			line: "@time=2020-01-01T00:00:00.000Z;account=bob :bob!b@host PRIVMSG #chan :hi",
			want: Message{
				Tags:    map[string]string{"time": "2020-01-01T00:00:00.000Z", "account": "bob"},
				Prefix:  "bob!b@host",
				Command: "PRIVMSG",
				Params:  []string{"#chan", "hi"},
			},
		},
	}

	for _, tc := range tt {
		got, err := Tokenize(tc.line)
		if err != nil {
			t.Errorf("Tokenize(%q): %v", tc.line, err)
			continue
		}
		if got.Prefix != tc.want.Prefix || got.Command != tc.want.Command {
			t.Errorf("Tokenize(%q) = %+v, want %+v", tc.line, got, tc.want)
		}
		if !reflect.DeepEqual(got.Params, tc.want.Params) {
			t.Errorf("Tokenize(%q) params = %#v, want %#v", tc.line, got.Params, tc.want.Params)
		}
		if tc.want.Tags != nil && !reflect.DeepEqual(got.Tags, tc.want.Tags) {
			t.Errorf("Tokenize(%q) tags = %#v, want %#v", tc.line, got.Tags, tc.want.Tags)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	for _, line := range []string{"", "   ", ":prefix.only", "@tag=1"} {
		if _, err := Tokenize(line); err == nil {
			t.Errorf("Tokenize(%q): expected an error", line)
		}
	}
}

func TestMessageString(t *testing.T) {
	tt := []struct {
		msg  Message
		want string
	}{
		{NewMessage("NICK", "mynick"), "NICK mynick"},
		{NewMessage("USER", "mynick", "0", "*", "My Nick"), "USER mynick 0 * :My Nick"},
		{NewMessage("JOIN", "#chan"), "JOIN #chan"},
		{NewMessage("QUIT", ""), "QUIT :"},
		{NewMessage("PRIVMSG", "#chan", ":)"), "PRIVMSG #chan ::)"},
		{NewMessage("PONG", "token"), "PONG token"},
	}

	for _, tc := range tt {
		if got := tc.msg.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestFullMask(t *testing.T) {
	nick, user, host := FullMask("bob!b@example.com")
	if nick != "bob" || user != "b" || host != "example.com" {
		t.Errorf("got %q %q %q", nick, user, host)
	}

	nick, user, host = FullMask("irc.example.com")
	if nick != "irc.example.com" || user != "" || host != "" {
		t.Errorf("got %q %q %q", nick, user, host)
	}
}

func TestTokenizeNames(t *testing.T) {
	names := TokenizeNames("@oper +voiced plain", "~&@%+")
	want := []string{"oper", "voiced", "plain"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("TokenizeNames = %#v, want %#v", names, want)
	}
}
