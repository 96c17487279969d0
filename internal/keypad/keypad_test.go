package keypad

import "testing"

func TestKeyDownUpIgnoresOutOfRange(t *testing.T) {
	k := New()
	k.KeyDown(0x10)
	if k.IsPressed(0x10) {
		t.Error("expected out-of-range key to be ignored")
	}
	k.KeyDown(0x7)
	if !k.IsPressed(0x7) {
		t.Error("expected key 0x7 to be pressed")
	}
	k.KeyUp(0x7)
	if k.IsPressed(0x7) {
		t.Error("expected key 0x7 to be released")
	}
}

func TestPollAny(t *testing.T) {
	k := New()
	if _, ok := k.PollAny(); ok {
		t.Error("expected no key pressed on a fresh keypad")
	}
	k.KeyDown(0xA)
	key, ok := k.PollAny()
	if !ok || key != 0xA {
		t.Errorf("expected PollAny to report 0xA, got %#x, ok=%v", key, ok)
	}
}

func TestWaitResolvesOnKeyDown(t *testing.T) {
	k := New()
	k.BeginWait(3)
	if !k.Waiting() {
		t.Fatal("expected Waiting() true after BeginWait")
	}
	if _, _, ok := k.ResolveWaitIfKey(); ok {
		t.Error("expected no resolution before any key is pressed")
	}

	k.KeyDown(0x7)
	if k.Waiting() {
		t.Error("expected wait cleared after KeyDown")
	}
	dest, key, ok := k.ResolveWaitIfKey()
	if !ok || dest != 3 || key != 0x7 {
		t.Errorf("expected dest=3 key=0x7 ok=true, got dest=%d key=%#x ok=%v", dest, key, ok)
	}

	if _, _, ok := k.ResolveWaitIfKey(); ok {
		t.Error("expected ResolveWaitIfKey to report false after being consumed")
	}
}

func TestResetClearsWaitAndKeys(t *testing.T) {
	k := New()
	k.KeyDown(0x1)
	k.BeginWait(0)
	k.Reset()
	if k.IsPressed(0x1) {
		t.Error("expected Reset to release all keys")
	}
	if k.Waiting() {
		t.Error("expected Reset to clear a pending wait")
	}
}
