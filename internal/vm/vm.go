// Package vm composes Memory, Display, Keypad, Timers, and the CPU into a
// single CHIP-8 virtual machine and exposes the host-facing operations a
// driving program needs: loading a ROM, stepping the CPU, ticking timers,
// delivering keypad edges, and reading back the display and beeper state.
package vm

import (
	"time"

	"github.com/pkg/errors"

	"github.com/MedCy1/chip8-go/internal/cpu"
	"github.com/MedCy1/chip8-go/internal/display"
	"github.com/MedCy1/chip8-go/internal/keypad"
	"github.com/MedCy1/chip8-go/internal/memory"
	"github.com/MedCy1/chip8-go/internal/timers"
)

// MaxCyclesPerFrame caps how many instructions CyclesForHz tells a host
// frame loop to dispatch per 60 Hz frame, regardless of the configured
// clock speed, as a runaway-execution safety valve.
const MaxCyclesPerFrame = 50

// VM owns every CHIP-8 sub-component exclusively; the host holds the only
// reference to a VM and mutates state only through these methods.
type VM struct {
	Memory  *memory.Memory
	Display *display.Display
	Keypad  *keypad.Keypad
	Timers  *timers.Timers
	CPU     *cpu.CPU

	running bool
}

// New returns a fully initialized VM: memory zeroed except the font
// table, display cleared, registers zeroed, PC at 0x200, stack empty,
// timers zeroed, keypad released, and RNG seeded from the wall clock.
func New() *VM {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded is New with an explicit RNG seed, for deterministic tests.
func NewSeeded(seed int64) *VM {
	return &VM{
		Memory:  memory.New(),
		Display: display.New(),
		Keypad:  keypad.New(),
		Timers:  timers.New(),
		CPU:     cpu.New(seed),
	}
}

// LoadROM copies bytes into memory starting at 0x200. The VM must be
// (re)loaded before Start; LoadROM does not itself start the CPU.
func (v *VM) LoadROM(rom []byte) error {
	if err := v.Memory.LoadROM(rom); err != nil {
		return errors.Wrap(err, "load rom")
	}
	return nil
}

// Reset subsumes Stop and additionally re-initializes memory, display,
// keypad, timers, and CPU state to their post-New values. The RNG is not
// reseeded.
func (v *VM) Reset() {
	v.running = false
	v.Memory.Reset()
	v.Display.Clear()
	v.Keypad.Reset()
	v.Timers.Reset()
	v.CPU.Reset()
}

// Start flips the VM's running bit and transitions the CPU into Running
// (unless it is blocked on a key wait).
func (v *VM) Start() {
	v.running = true
	v.CPU.Start()
}

// Stop flips the VM's running bit off and stops the CPU. It is
// synchronous and idempotent: it does not interrupt an in-progress
// Cycle, but guarantees no further Cycle runs until Start is called
// again.
func (v *VM) Stop() {
	v.running = false
	v.CPU.Stop()
}

// Running reports the host-facing running bit. No internal behavior
// consumes this value (Cycle gates on the CPU's own run state); it exists
// for the host's own scheduling loop.
func (v *VM) Running() bool {
	return v.running
}

// Cycle advances the CPU by one fetch-decode-execute step. It never
// ticks timers -- the host calls TickTimers separately, once per frame,
// decoupling instruction rate from the 60 Hz timer domain.
func (v *VM) Cycle() {
	v.CPU.Cycle(v.Memory, v.Display, v.Keypad, v.Timers)
}

// TickTimers decrements the delay and sound counters by one. The host
// calls this exactly once per 60 Hz frame.
func (v *VM) TickTimers() {
	v.Timers.Tick()
}

// KeyDown marks key pressed (keys outside 0x0..0xF are ignored) and, if
// the CPU is blocked in a Fx0A wait, resolves it: the key is latched into
// the destination register and the CPU resumes on the next Cycle.
func (v *VM) KeyDown(key byte) {
	v.Keypad.KeyDown(key)
	if _, resolvedKey, ok := v.Keypad.ResolveWaitIfKey(); ok {
		v.CPU.ResolveKeyWait(resolvedKey)
	}
}

// KeyUp marks key released (keys outside 0x0..0xF are ignored).
func (v *VM) KeyUp(key byte) {
	v.Keypad.KeyUp(key)
}

// DisplayBuffer returns a read-only 2048-byte row-major snapshot of the
// frame buffer (index = y*64 + x), each byte 0 or 255.
func (v *VM) DisplayBuffer() []byte {
	return v.Display.Buffer()
}

// BeeperActive reports whether the sound timer currently gates the
// beeper.
func (v *VM) BeeperActive() bool {
	return v.Timers.BeeperActive()
}

// MemoryDump formats length bytes of memory starting at start as hex, for
// debugging.
func (v *VM) MemoryDump(start uint16, length int) string {
	return v.Memory.Dump(start, length)
}

// DebugInfo returns a single-line, human-readable state summary with
// stable keys PC, I, SP, V0..VF, DT, ST, Cycles, and Err.
func (v *VM) DebugInfo() string {
	return v.CPU.DebugInfo(v.Timers.GetDelay(), v.Timers.GetSound())
}

// ErrorCount returns the number of recoverable CPU errors since the last
// Reset.
func (v *VM) ErrorCount() int {
	return v.CPU.ErrorCount()
}

// Overloaded reports whether the CPU's recoverable error count has
// crossed the threshold at which the host should stop driving Cycle.
func (v *VM) Overloaded() bool {
	return v.CPU.Overloaded()
}

// CyclesForHz returns how many instructions a host frame should dispatch
// to approximate cyclesPerSecond at a 60 Hz frame rate, capped at
// MaxCyclesPerFrame.
func CyclesForHz(cyclesPerSecond int) int {
	if cyclesPerSecond <= 0 {
		return 0
	}
	n := (cyclesPerSecond + 59) / 60 // ceil(cyclesPerSecond/60)
	if n > MaxCyclesPerFrame {
		return MaxCyclesPerFrame
	}
	return n
}
