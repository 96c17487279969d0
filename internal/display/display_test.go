package display

import "testing"

func onAt(buf []byte, x, y int) bool {
	return buf[y*Width+x] == 0xFF
}

func TestBufferShapeAndValues(t *testing.T) {
	d := New()
	buf := d.Buffer()
	if len(buf) != Width*Height {
		t.Fatalf("expected buffer length %d, got %d", Width*Height, len(buf))
	}
	for _, b := range buf {
		if b != 0 && b != 0xFF {
			t.Fatalf("expected every byte to be 0 or 255, got %d", b)
		}
	}
}

func TestDrawSpriteNoCollisionOnFirstDraw(t *testing.T) {
	d := New()
	collision := d.DrawSprite(0, 0, []byte{0x80}) // single lit pixel at (0,0)
	if collision {
		t.Error("expected no collision drawing onto a cleared display")
	}
	if !onAt(d.Buffer(), 0, 0) {
		t.Error("expected pixel (0,0) to be lit")
	}
}

func TestXORBlitIdempotence(t *testing.T) {
	d := New()
	sprite := []byte{0xFF, 0x81, 0x81, 0xFF}
	d.DrawSprite(10, 10, sprite)
	before := d.Buffer()

	collision := d.DrawSprite(10, 10, sprite)
	if !collision {
		t.Error("expected collision redrawing an identical sprite over itself")
	}
	after := d.Buffer()
	for i := range after {
		if after[i] != 0 {
			t.Fatalf("expected drawing the same sprite twice to clear the display, byte %d = %d", i, after[i])
		}
	}
	_ = before
}

func TestOriginWrapsThenClips(t *testing.T) {
	d := New()
	// origin (63, 31) with a 4-row, 8-col sprite: only (63,31) should end up lit.
	sprite := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	d.DrawSprite(63, 31, sprite)

	buf := d.Buffer()
	litCount := 0
	for i, b := range buf {
		if b == 0xFF {
			litCount++
			if i != 31*Width+63 {
				t.Errorf("unexpected lit pixel at index %d", i)
			}
		}
	}
	if litCount != 1 {
		t.Errorf("expected exactly one lit pixel, got %d", litCount)
	}
}

func TestOriginModuloWrap(t *testing.T) {
	d := New()
	d.DrawSprite(-1, -1, []byte{0x80}) // wraps to (63, 31)
	if !onAt(d.Buffer(), 63, 31) {
		t.Error("expected negative origin to wrap to (63, 31)")
	}
}

func TestClear(t *testing.T) {
	d := New()
	d.DrawSprite(5, 5, []byte{0xFF})
	d.Clear()
	for _, b := range d.Buffer() {
		if b != 0 {
			t.Fatal("expected Clear to zero every pixel")
		}
	}
}
