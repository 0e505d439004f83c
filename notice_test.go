package liaison

import "testing"

func assertRouted(t *testing.T, to, message, wantTo, wantMessage string) {
	t.Helper()
	gotTo, gotMessage := RouteNotice(to, message)
	if gotTo != wantTo {
		t.Errorf("RouteNotice(%q, %q): to = %q, want %q", to, message, gotTo, wantTo)
	}
	if gotMessage != wantMessage {
		t.Errorf("RouteNotice(%q, %q): message = %q, want %q", to, message, gotMessage, wantMessage)
	}
}

func TestRouteNoticeBracketedChannel(t *testing.T) {
	assertRouted(t, "mynick", "[#general] hello world", "#general", "hello world")
	assertRouted(t, "mynick", "[#a]   spaced   out", "#a", "spaced out")
}

func TestRouteNoticePassthrough(t *testing.T) {
	assertRouted(t, "#foo", "just text", "#foo", "just text")
	assertRouted(t, "mynick", "", "mynick", "")
	// bracket must wrap a #-prefixed, space-free name
	assertRouted(t, "mynick", "[general] hi", "mynick", "[general] hi")
	assertRouted(t, "mynick", "[#one two] hi", "mynick", "[#one two] hi")
	// token must open the message
	assertRouted(t, "mynick", "see [#general] later", "mynick", "see [#general] later")
}

func TestRouteNoticeEmptyRemainder(t *testing.T) {
	assertRouted(t, "mynick", "[#general]", "#general", "")
}
