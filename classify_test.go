package liaison

import "testing"

func TestClassifyMessageDirectAction(t *testing.T) {
	var id Identity
	n := ClassifyMessage(id, "bob", "mynick", "\x01ACTION waves\x01", "mynick")
	action, ok := n.(ActionReceived)
	if !ok {
		t.Fatalf("expected ActionReceived, got %T", n)
	}
	if action.Channel != "bob" {
		t.Errorf("channel = %q, want %q", action.Channel, "bob")
	}
	if action.Message != "bob waves" {
		t.Errorf("message = %q, want %q", action.Message, "bob waves")
	}
}

func TestClassifyMessageChannelAction(t *testing.T) {
	var id Identity
	n := ClassifyMessage(id, "bob", "#chan", "\x01ACTION waves\x01", "mynick")
	action, ok := n.(ActionReceived)
	if !ok {
		t.Fatalf("expected ActionReceived, got %T", n)
	}
	if action.Channel != "#chan" {
		t.Errorf("channel = %q, want %q", action.Channel, "#chan")
	}
	if action.Message != "bob waves" {
		t.Errorf("message = %q, want %q", action.Message, "bob waves")
	}
}

func TestClassifyMessageDirect(t *testing.T) {
	var id Identity
	n := ClassifyMessage(id, "bob", "MyNick", "hi there", "mynick")
	dm, ok := n.(DirectMessageReceived)
	if !ok {
		t.Fatalf("expected DirectMessageReceived (case-insensitive match), got %T", n)
	}
	if dm.From != "bob" || dm.Message != "hi there" {
		t.Errorf("got %+v", dm)
	}
}

func TestClassifyMessageChannel(t *testing.T) {
	var id Identity
	n := ClassifyMessage(id, "bob", "#go", "hello", "mynick")
	cm, ok := n.(ChannelMessageReceived)
	if !ok {
		t.Fatalf("expected ChannelMessageReceived, got %T", n)
	}
	if cm.Channel != "#go" || cm.From != "bob" || cm.Message != "hello" {
		t.Errorf("got %+v", cm)
	}
}

func TestClassifyMessageActionWithoutSuffix(t *testing.T) {
	var id Identity
	n := ClassifyMessage(id, "bob", "#chan", "\x01ACTION shrugs", "mynick")
	action, ok := n.(ActionReceived)
	if !ok {
		t.Fatalf("expected ActionReceived, got %T", n)
	}
	if action.Message != "bob shrugs" {
		t.Errorf("message = %q, want %q", action.Message, "bob shrugs")
	}
}
