package memory

import "testing"

func TestNewInstallsFont(t *testing.T) {
	m := New()
	if m.ReadByte(0x000) != 0xF0 {
		t.Errorf("expected font byte 0xF0 at 0x000, got %#02x", m.ReadByte(0x000))
	}
	if m.ReadByte(0x04F) != FontSet[79] {
		t.Errorf("expected last font byte %#02x at 0x04F, got %#02x", FontSet[79], m.ReadByte(0x04F))
	}
}

func TestLoadROMBoundaries(t *testing.T) {
	m := New()

	if err := m.LoadROM(nil); err == nil {
		t.Error("expected error loading an empty rom")
	}

	maxROM := make([]byte, MaxROMSize)
	for i := range maxROM {
		maxROM[i] = 0xAA
	}
	if err := m.LoadROM(maxROM); err != nil {
		t.Errorf("expected a %d-byte rom to load, got error: %v", MaxROMSize, err)
	}
	if got := m.ReadByte(ProgramStart); got != 0xAA {
		t.Errorf("expected 0xAA at program start, got %#02x", got)
	}

	tooBig := make([]byte, MaxROMSize+1)
	if err := m.LoadROM(tooBig); err == nil {
		t.Errorf("expected a %d-byte rom to be rejected", len(tooBig))
	}
}

func TestReadU16BigEndian(t *testing.T) {
	m := New()
	m.WriteByte(ProgramStart, 0xA2)
	m.WriteByte(ProgramStart+1, 0x0A)
	if got := m.ReadU16(ProgramStart); got != 0xA20A {
		t.Errorf("expected 0xA20A, got %#04x", got)
	}
}

func TestAddressMasking(t *testing.T) {
	m := New()
	m.WriteByte(0x1000+0x0EF, 0x42) // address arithmetic overflowing 12 bits
	if got := m.ReadByte(0x0EF); got != 0x42 {
		t.Errorf("expected write to mask to 12 bits, got %#02x at 0x0EF", got)
	}
}

func TestResetReinstallsFontAndClearsProgram(t *testing.T) {
	m := New()
	if err := m.LoadROM([]byte{0x12, 0x34}); err != nil {
		t.Fatalf("unexpected error loading rom: %v", err)
	}
	m.Reset()
	if got := m.ReadByte(ProgramStart); got != 0 {
		t.Errorf("expected program area cleared after reset, got %#02x", got)
	}
	if got := m.ReadByte(0x000); got != 0xF0 {
		t.Errorf("expected font reinstalled after reset, got %#02x", got)
	}
}
