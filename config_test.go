package liaison

import (
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
server: irc.example.com
port: 6667
nick: mynick
password: hunter2
no-tls: true
timeout-ms: 250
`))
	if err != nil {
		t.Fatal(err)
	}

	creds := cfg.Credentials()
	if creds.Server != "irc.example.com" || creds.Port != 6667 || creds.Nickname != "mynick" {
		t.Errorf("credentials = %+v", creds)
	}
	if creds.RealName != "mynick" {
		t.Errorf("real name should fall back to the nick, got %q", creds.RealName)
	}
	if creds.Password != "hunter2" {
		t.Errorf("password = %q", creds.Password)
	}
	if !cfg.NoTLS {
		t.Error("no-tls not parsed")
	}
	if cfg.Timeout() != 250*time.Millisecond {
		t.Errorf("timeout = %v", cfg.Timeout())
	}
}

func TestParseConfigRealName(t *testing.T) {
	cfg, err := ParseConfig([]byte("nick: mynick\nreal: My Nick\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Credentials().RealName; got != "My Nick" {
		t.Errorf("real name = %q", got)
	}
}
