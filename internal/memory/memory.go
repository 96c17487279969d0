// Package memory implements the CHIP-8's 4 KiB linear address space: font
// table, ROM loading, and bounds-checked byte access.
package memory

import (
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
)

const (
	// Size is the total addressable memory in bytes.
	Size = 4096

	// FontStart is where the built-in hex digit glyphs live.
	FontStart = 0x000

	// FontBytesPerGlyph is the height, in bytes, of one font glyph.
	FontBytesPerGlyph = 5

	// ProgramStart is where load_rom copies program bytes.
	ProgramStart = 0x200

	// MaxROMSize is the largest program image the VM will accept.
	MaxROMSize = Size - ProgramStart // 3584

	// addrMask keeps every access inside the 12-bit address space.
	addrMask = 0x0FFF
)

// FontSet is the canonical CHIP-8 4x5 hex digit bitmap, digits 0-F, five
// bytes each. Each byte's high nibble encodes one row of the glyph.
var FontSet = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the CHIP-8's 4 KiB address space.
type Memory struct {
	bytes [Size]byte
}

// New returns a Memory with the font table installed and everything else
// zeroed.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes memory and reinstalls the font table.
func (m *Memory) Reset() {
	m.bytes = [Size]byte{}
	copy(m.bytes[FontStart:], FontSet[:])
}

// LoadROM copies program bytes starting at 0x200. It fails if the image is
// empty or larger than MaxROMSize; memory outside the font table and the
// copied bytes is left zeroed.
func (m *Memory) LoadROM(rom []byte) error {
	if len(rom) == 0 {
		return errors.New("rom is empty")
	}
	if len(rom) > MaxROMSize {
		return errors.Errorf("rom too large: %d bytes (max %d)", len(rom), MaxROMSize)
	}
	copy(m.bytes[ProgramStart:], rom)
	return nil
}

// ReadByte returns the byte at addr, masked to 12 bits.
func (m *Memory) ReadByte(addr uint16) byte {
	return m.bytes[addr&addrMask]
}

// WriteByte stores value at addr, masked to 12 bits.
func (m *Memory) WriteByte(addr uint16, value byte) {
	m.bytes[addr&addrMask] = value
}

// ReadU16 reads a big-endian 16-bit instruction word starting at addr.
func (m *Memory) ReadU16(addr uint16) uint16 {
	hi := uint16(m.ReadByte(addr))
	lo := uint16(m.ReadByte(addr + 1))
	return hi<<8 | lo
}

// Dump formats length bytes starting at start as a hex.Dump-style block,
// for the VM's MemoryDump and manual inspection.
func (m *Memory) Dump(start uint16, length int) string {
	if length <= 0 {
		return ""
	}
	end := int(start) + length
	if end > Size {
		end = Size
	}
	if int(start) >= end {
		return ""
	}
	return fmt.Sprintf("memory[%#03x:%#03x]\n%s", start, end, hex.Dump(m.bytes[start:end]))
}
