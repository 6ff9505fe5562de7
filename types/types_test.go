package types

import "testing"

func TestLedModeNextCycle(t *testing.T) {
	tests := []struct {
		from, want LedMode
	}{
		{FastFlash, SlowFlash},
		{SlowFlash, On},
		{On, Off},
		{Off, FastFlash},
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.from, got, tt.want)
		}
	}
}

func TestLedModeNextClosure(t *testing.T) {
	for _, start := range LedModes() {
		m := start
		for i := 0; i < len(ledModes); i++ {
			m = m.Next()
			if m.String() == "unknown" {
				t.Fatalf("Next left the mode set: %d", m)
			}
		}
		if m != start {
			t.Errorf("four advances from %s ended at %s", start, m)
		}
	}
}

func TestLedModeNextOutOfRangeWraps(t *testing.T) {
	if got := LedMode(42).Next(); got != FastFlash {
		t.Fatalf("LedMode(42).Next() = %s, want fast_flash", got)
	}
}

func TestDefaults(t *testing.T) {
	var k PressKind
	if k != Short {
		t.Errorf("zero PressKind = %s, want short", k)
	}
	var m LedMode
	if m != FastFlash {
		t.Errorf("zero LedMode = %s, want fast_flash", m)
	}
	if DefaultLedMode != FastFlash {
		t.Errorf("DefaultLedMode = %s, want fast_flash", DefaultLedMode)
	}
}

func TestParseLedMode(t *testing.T) {
	for _, m := range LedModes() {
		got, err := ParseLedMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseLedMode(%q) = %s, %v", m.String(), got, err)
		}
	}
	if _, err := ParseLedMode("strobe"); err != ErrUnknownLedMode {
		t.Errorf("ParseLedMode(strobe) err = %v, want ErrUnknownLedMode", err)
	}
}

func TestLedModesIsACopy(t *testing.T) {
	ms := LedModes()
	ms[0] = Off
	if LedModes()[0] != FastFlash {
		t.Fatal("LedModes exposed the internal order")
	}
}

func TestFlashing(t *testing.T) {
	want := map[LedMode]bool{FastFlash: true, SlowFlash: true, On: false, Off: false}
	for m, w := range want {
		if m.Flashing() != w {
			t.Errorf("%s.Flashing() = %v, want %v", m, m.Flashing(), w)
		}
	}
}
