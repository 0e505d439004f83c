package liaison

import (
	"fmt"

	"github.com/google/uuid"
)

// Credentials describe how to reach one IRC server identity. They are
// owned by the consumer and must not change while a connection built
// from them is alive.
type Credentials struct {
	RealName string
	Nickname string
	Password string // optional
	Server   string
	Port     int
}

// Identity is the deterministic key of a logical server connection. Two
// credential sets agreeing on (server, port, nickname) map to the same
// identity, so notifications can be correlated with prior connections.
type Identity uuid.UUID

// identityNamespace seeds the UUIDv5 derivation; it never changes, or
// every stored identity would be orphaned.
var identityNamespace = uuid.MustParse("9c5afee2-9b0e-4e46-9fcb-7d06854f0a21")

func (id Identity) String() string {
	return uuid.UUID(id).String()
}

// Identity derives the connection identity of the credentials.
func (c Credentials) Identity() Identity {
	name := fmt.Sprintf("%s:%d/%s", c.Server, c.Port, c.Nickname)
	return Identity(uuid.NewSHA1(identityNamespace, []byte(name)))
}
