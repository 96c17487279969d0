// Package keypad implements the CHIP-8's 16-key hex keypad, including the
// blocking "wait for next key" state that backs the Fx0A instruction.
package keypad

// NumKeys is the number of hex keys, 0x0 through 0xF.
const NumKeys = 16

// Keypad tracks which of the 16 hex keys are currently pressed and, when
// the CPU is blocked in a wait-for-key instruction, which register the
// next key press should land in.
type Keypad struct {
	pressed [NumKeys]bool

	waiting    bool
	waitDest   byte
	lastResult byte
	resolved   bool
}

// New returns a Keypad with every key released and no pending wait.
func New() *Keypad {
	return &Keypad{}
}

// Reset releases every key and clears any pending wait.
func (k *Keypad) Reset() {
	*k = Keypad{}
}

// KeyDown marks k pressed. Keys outside 0x0..0xF are ignored. If the
// keypad is currently waiting for a key, this resolves the wait: the key
// is latched into the destination register recorded by BeginWait.
func (k *Keypad) KeyDown(key byte) {
	if key >= NumKeys {
		return
	}
	k.pressed[key] = true
	if k.waiting {
		k.waiting = false
		k.lastResult = key
		k.resolved = true
	}
}

// KeyUp marks k released. Keys outside 0x0..0xF are ignored.
func (k *Keypad) KeyUp(key byte) {
	if key >= NumKeys {
		return
	}
	k.pressed[key] = false
}

// IsPressed reports whether key is currently pressed. Keys outside
// 0x0..0xF are never pressed.
func (k *Keypad) IsPressed(key byte) bool {
	if key >= NumKeys {
		return false
	}
	return k.pressed[key]
}

// PollAny returns the lowest-numbered currently pressed key, if any.
func (k *Keypad) PollAny() (byte, bool) {
	for i, p := range k.pressed {
		if p {
			return byte(i), true
		}
	}
	return 0, false
}

// BeginWait puts the keypad into the blocking Fx0A state: dest records
// which register the CPU should load once a key is pressed.
func (k *Keypad) BeginWait(dest byte) {
	k.waiting = true
	k.waitDest = dest
	k.resolved = false
}

// Waiting reports whether the keypad is currently blocking the CPU.
func (k *Keypad) Waiting() bool {
	return k.waiting
}

// ResolveWaitIfKey returns, at most once per KeyDown that satisfied a
// pending wait, the destination register and the key that released it.
// Subsequent calls return ok == false until BeginWait is called again.
func (k *Keypad) ResolveWaitIfKey() (dest, key byte, ok bool) {
	if !k.resolved {
		return 0, 0, false
	}
	k.resolved = false
	return k.waitDest, k.lastResult, true
}
