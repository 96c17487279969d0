// Package cpu implements the CHIP-8 fetch-decode-execute engine: 16
// general registers, the index register, the program counter, the call
// stack, and the 35-opcode instruction set. It mutates Memory, Display,
// and Keypad through direct parameters passed to Cycle rather than
// holding back-references to its peers, so the VM remains the only
// object that owns the whole component graph.
package cpu

import (
	"fmt"

	"github.com/MedCy1/chip8-go/internal/display"
	"github.com/MedCy1/chip8-go/internal/keypad"
	"github.com/MedCy1/chip8-go/internal/memory"
	"github.com/MedCy1/chip8-go/internal/rng"
	"github.com/MedCy1/chip8-go/internal/timers"
)

// State is the CPU's coarse run state.
type State int

const (
	// Stopped is the initial state and the state after Stop/Reset. Cycle
	// is a no-op while Stopped.
	Stopped State = iota
	// Running is the normal fetch-decode-execute state.
	Running
	// Blocked is entered by Fx0A and left only when the keypad resolves
	// the pending wait. Cycle is a no-op while Blocked.
	Blocked
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// maxErrors is the count of recoverable errors after which the host is
// expected to stop driving Cycle (see debug_info's Err field).
const maxErrors = 16

// CPU is the register file, program counter, and call stack.
type CPU struct {
	v  [16]byte
	i  uint16
	pc uint16

	stack [16]uint16
	sp    int

	state State
	rng   rng.Source

	waitDest byte
	cycles   uint64
	errCount int
	lastErr  error
}

// New returns a CPU with PC at the program start address and a default
// RNG seeded with seed.
func New(seed int64) *CPU {
	c := &CPU{rng: rng.NewMathRand(seed)}
	c.Reset()
	return c
}

// Reset restores registers, PC, the stack, and run state to their initial
// values and clears the error count. It does not reseed the RNG.
func (c *CPU) Reset() {
	c.v = [16]byte{}
	c.i = 0
	c.pc = memory.ProgramStart
	c.stack = [16]uint16{}
	c.sp = 0
	c.state = Stopped
	c.waitDest = 0
	c.cycles = 0
	c.errCount = 0
	c.lastErr = nil
}

// Start transitions the CPU into Running, unless it is currently Blocked
// on a key wait.
func (c *CPU) Start() {
	if c.state != Blocked {
		c.state = Running
	}
}

// Stop transitions the CPU to Stopped. Cycle becomes a no-op until the
// next Start.
func (c *CPU) Stop() {
	c.state = Stopped
}

// RunState returns the CPU's current coarse run state.
func (c *CPU) RunState() State {
	return c.state
}

// Cycles returns the number of instructions successfully dispatched since
// the last Reset.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// ErrorCount returns the number of recoverable errors encountered since
// the last Reset.
func (c *CPU) ErrorCount() int {
	return c.errCount
}

// Overloaded returns whether the error count has crossed the threshold at
// which the host should stop driving Cycle.
func (c *CPU) Overloaded() bool {
	return c.errCount >= maxErrors
}

// Register returns the current value of Vn, n in 0..15.
func (c *CPU) Register(n int) byte {
	return c.v[n&0xF]
}

// Index returns the current value of the I register.
func (c *CPU) Index() uint16 {
	return c.i
}

// PC returns the current program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// SP returns the current stack depth, 0..16.
func (c *CPU) SP() int {
	return c.sp
}

// DebugInfo returns a single human-readable summary with stable keys PC,
// I, SP, V0..VF, DT, ST, Cycles, and Err.
func (c *CPU) DebugInfo(delay, sound byte) string {
	s := fmt.Sprintf("PC=%#04x I=%#04x SP=%d DT=%d ST=%d Cycles=%d Err=%d",
		c.pc, c.i, c.sp, delay, sound, c.cycles, c.errCount)
	for n := 0; n < 16; n++ {
		s += fmt.Sprintf(" V%X=%#02x", n, c.v[n])
	}
	return s
}

// ResolveKeyWait is called by the VM when the keypad reports a wait was
// satisfied; it latches the key into the destination register and
// transitions the CPU back to Running.
func (c *CPU) ResolveKeyWait(key byte) {
	if c.state != Blocked {
		return
	}
	c.v[c.waitDest] = key
	c.state = Running
}

// Cycle fetches one instruction at PC, advances PC by two, and dispatches
// it against the supplied peers. It never ticks timers. It is a no-op
// while the CPU is Stopped or Blocked on a key wait.
func (c *CPU) Cycle(mem *memory.Memory, disp *display.Display, kp *keypad.Keypad, tm *timers.Timers) {
	if c.state != Running {
		return
	}

	opcode := mem.ReadU16(c.pc)
	c.pc += 2

	if err := c.execute(opcode, mem, disp, kp, tm); err != nil {
		c.errCount++
		c.lastErr = err
		return
	}
	c.cycles++
}
