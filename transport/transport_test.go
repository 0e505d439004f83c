package transport

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

type fakeTimeout struct{}

func (fakeTimeout) Error() string   { return "i/o timeout" }
func (fakeTimeout) Timeout() bool   { return true }
func (fakeTimeout) Temporary() bool { return true }

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(fakeTimeout{}) {
		t.Error("net.Error with Timeout() true should classify as timeout")
	}
	if !IsTimeout(fmt.Errorf("dial: %w", fakeTimeout{})) {
		t.Error("wrapped timeout should classify as timeout")
	}
	if !IsTimeout(os.ErrDeadlineExceeded) {
		t.Error("deadline exceeded should classify as timeout")
	}
	if IsTimeout(errors.New("connection refused")) {
		t.Error("refusal is not a timeout")
	}
}

func TestConfigTimeoutDefault(t *testing.T) {
	if (Config{}).timeout() != DefaultTimeout {
		t.Error("zero config should use the default timeout")
	}
	if (Config{Timeout: DefaultTimeout * 2}).timeout() != DefaultTimeout*2 {
		t.Error("explicit timeout ignored")
	}
}
