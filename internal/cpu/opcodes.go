package cpu

import (
	"github.com/pkg/errors"

	"github.com/MedCy1/chip8-go/internal/display"
	"github.com/MedCy1/chip8-go/internal/keypad"
	"github.com/MedCy1/chip8-go/internal/memory"
	"github.com/MedCy1/chip8-go/internal/timers"
)

// execute decodes opcode into its nibble fields and dispatches it. PC has
// already been advanced past the instruction by Cycle; skip instructions
// add a further +2, jumps/calls/returns set PC directly.
func (c *CPU) execute(opcode uint16, mem *memory.Memory, disp *display.Display, kp *keypad.Keypad, tm *timers.Timers) error {
	x := int((opcode & 0x0F00) >> 8)
	y := int((opcode & 0x00F0) >> 4)
	n := int(opcode & 0x000F)
	nn := byte(opcode & 0x00FF)
	nnn := opcode & 0x0FFF

	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode & 0x00FF {
		case 0x00E0: // CLS
			disp.Clear()
		case 0x00EE: // RET
			return c.ret()
		default: // 0nnn SYS: legacy machine call, no-op
		}
	case 0x1000: // JP nnn
		c.pc = nnn
	case 0x2000: // CALL nnn
		return c.call(nnn)
	case 0x3000: // SE Vx, kk
		c.skipIf(c.v[x] == nn)
	case 0x4000: // SNE Vx, kk
		c.skipIf(c.v[x] != nn)
	case 0x5000:
		if n != 0 {
			return errors.Errorf("unknown opcode %#04x", opcode)
		}
		c.skipIf(c.v[x] == c.v[y]) // SE Vx, Vy
	case 0x6000: // LD Vx, kk
		c.v[x] = nn
	case 0x7000: // ADD Vx, kk (no carry)
		c.v[x] += nn
	case 0x8000:
		return c.execute8xy(opcode, x, y, n)
	case 0x9000:
		if n != 0 {
			return errors.Errorf("unknown opcode %#04x", opcode)
		}
		c.skipIf(c.v[x] != c.v[y]) // SNE Vx, Vy
	case 0xA000: // LD I, nnn
		c.i = nnn
	case 0xB000: // JP V0, nnn
		c.pc = nnn + uint16(c.v[0])
	case 0xC000: // RND Vx, kk
		c.v[x] = c.rng.Uint8() & nn
	case 0xD000: // DRW Vx, Vy, n
		return c.draw(mem, disp, x, y, n)
	case 0xE000:
		return c.executeExxx(opcode, kp, x)
	case 0xF000:
		return c.executeFxxx(opcode, mem, kp, tm, x)
	default:
		return errors.Errorf("unknown opcode %#04x", opcode)
	}
	return nil
}

func (c *CPU) skipIf(cond bool) {
	if cond {
		c.pc += 2
	}
}

func (c *CPU) call(nnn uint16) error {
	if c.sp >= len(c.stack) {
		return errors.New("stack overflow")
	}
	c.stack[c.sp] = c.pc
	c.sp++
	c.pc = nnn
	return nil
}

func (c *CPU) ret() error {
	if c.sp == 0 {
		return errors.New("stack underflow")
	}
	c.sp--
	c.pc = c.stack[c.sp]
	return nil
}

// execute8xy handles the 8xyN arithmetic/logic family. The flag-after
// tie-break applies throughout: VF is computed from the operands before
// Vx is overwritten, so using VF as Vx still observes the flag value.
func (c *CPU) execute8xy(opcode uint16, x, y, n int) error {
	switch n {
	case 0x0: // LD Vx, Vy
		c.v[x] = c.v[y]
	case 0x1: // OR
		c.v[x] |= c.v[y]
	case 0x2: // AND
		c.v[x] &= c.v[y]
	case 0x3: // XOR
		c.v[x] ^= c.v[y]
	case 0x4: // ADD
		sum := uint16(c.v[x]) + uint16(c.v[y])
		result := byte(sum)
		flag := byte(0)
		if sum > 0xFF {
			flag = 1
		}
		c.v[x] = result
		c.v[0xF] = flag
	case 0x5: // SUB
		flag := byte(0)
		if c.v[x] >= c.v[y] {
			flag = 1
		}
		result := c.v[x] - c.v[y]
		c.v[x] = result
		c.v[0xF] = flag
	case 0x6: // SHR (modern semantics: operates on Vx alone)
		flag := c.v[x] & 0x01
		result := c.v[x] >> 1
		c.v[x] = result
		c.v[0xF] = flag
	case 0x7: // SUBN
		flag := byte(0)
		if c.v[y] >= c.v[x] {
			flag = 1
		}
		result := c.v[y] - c.v[x]
		c.v[x] = result
		c.v[0xF] = flag
	case 0xE: // SHL (modern semantics: operates on Vx alone)
		flag := (c.v[x] >> 7) & 0x01
		result := c.v[x] << 1
		c.v[x] = result
		c.v[0xF] = flag
	default:
		return errors.Errorf("unknown opcode %#04x", opcode)
	}
	return nil
}

func (c *CPU) draw(mem *memory.Memory, disp *display.Display, x, y, n int) error {
	rows := make([]byte, n)
	for row := 0; row < n; row++ {
		rows[row] = mem.ReadByte(c.i + uint16(row))
	}
	collision := disp.DrawSprite(int(c.v[x]), int(c.v[y]), rows)
	if collision {
		c.v[0xF] = 1
	} else {
		c.v[0xF] = 0
	}
	return nil
}

func (c *CPU) executeExxx(opcode uint16, kp *keypad.Keypad, x int) error {
	switch opcode & 0x00FF {
	case 0x9E: // SKP Vx
		c.skipIf(kp.IsPressed(c.v[x]))
	case 0xA1: // SKNP Vx
		c.skipIf(!kp.IsPressed(c.v[x]))
	default:
		return errors.Errorf("unknown opcode %#04x", opcode)
	}
	return nil
}

func (c *CPU) executeFxxx(opcode uint16, mem *memory.Memory, kp *keypad.Keypad, tm *timers.Timers, x int) error {
	switch opcode & 0x00FF {
	case 0x07: // LD Vx, DT
		c.v[x] = tm.GetDelay()
	case 0x0A: // LD Vx, K
		kp.BeginWait(byte(x))
		c.waitDest = byte(x)
		c.state = Blocked
	case 0x15: // LD DT, Vx
		tm.SetDelay(c.v[x])
	case 0x18: // LD ST, Vx
		tm.SetSound(c.v[x])
	case 0x1E: // ADD I, Vx -- I is not masked here; only memory access masks to 12 bits
		c.i = c.i + uint16(c.v[x])
	case 0x29: // LD F, Vx
		c.i = uint16(c.v[x]&0x0F) * memory.FontBytesPerGlyph
	case 0x33: // LD B, Vx
		v := c.v[x]
		mem.WriteByte(c.i, v/100)
		mem.WriteByte(c.i+1, (v/10)%10)
		mem.WriteByte(c.i+2, v%10)
	case 0x55: // LD [I], Vx -- I unchanged (canonical variant)
		for r := 0; r <= x; r++ {
			mem.WriteByte(c.i+uint16(r), c.v[r])
		}
	case 0x65: // LD Vx, [I] -- I unchanged (canonical variant)
		for r := 0; r <= x; r++ {
			c.v[r] = mem.ReadByte(c.i + uint16(r))
		}
	default:
		return errors.Errorf("unknown opcode %#04x", opcode)
	}
	return nil
}
