package liaison

import (
	"regexp"
	"strings"
)

// Some servers address a notice to the user but name the real channel
// target as a leading bracketed token in the body, e.g.
// "[#general] hello". bracketTarget matches that convention.
var bracketTarget = regexp.MustCompile(`^\[(#[^\] ]+)\]`)

// RouteNotice resolves the effective target of a notice. When the body
// starts with a bracketed channel name, that channel becomes the target
// and the token is stripped from the body; otherwise both pass through
// unchanged. A body that is empty after stripping stays empty.
func RouteNotice(to, message string) (string, string) {
	m := bracketTarget.FindStringSubmatch(message)
	if m == nil {
		return to, message
	}

	fields := strings.Fields(message)
	return m[1], strings.Join(fields[1:], " ")
}
