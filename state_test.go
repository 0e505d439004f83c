package liaison

import "testing"

func TestResetJoinsResetsEveryConversation(t *testing.T) {
	state := ConnectionState{
		Conversations: []Conversation{
			{Name: "#a", Type: ChannelConversation, ReceivedJoin: true},
			{Name: "bob", Type: DirectConversation, ReceivedJoin: true},
		},
	}

	reset := state.ResetJoins()

	for _, c := range reset.Conversations {
		if c.ReceivedJoin {
			t.Errorf("%s: ReceivedJoin still set after reset", c.Name)
		}
	}

	// the original snapshot must not be touched
	for _, c := range state.Conversations {
		if !c.ReceivedJoin {
			t.Errorf("%s: ResetJoins mutated its receiver", c.Name)
		}
	}
}

func TestWithReceivedJoinCopies(t *testing.T) {
	c := Conversation{Name: "#a", Type: ChannelConversation}
	joined := c.WithReceivedJoin(true)
	if !joined.ReceivedJoin {
		t.Error("WithReceivedJoin(true) did not set the flag")
	}
	if c.ReceivedJoin {
		t.Error("WithReceivedJoin mutated its receiver")
	}
}
