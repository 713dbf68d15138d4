package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inputcore/key"
)

func TestTranslatorFromBackend(t *testing.T) {
	var tr TcellTranslator

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Code
		ok   bool
	}{
		{"lowercase rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), key.CodeA, true},
		{"uppercase folds", tcell.NewEventKey(tcell.KeyRune, 'Z', tcell.ModNone), key.CodeZ, true},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), key.Code7, true},
		{"space rune", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), key.CodeSpace, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.CodeEscape, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.CodeEnter, true},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.CodeBackspace, true},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), key.CodeUp, true},
		{"pgdn", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), key.CodePageDown, true},
		{"function key", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), key.CodeF12, true},
		{"unmapped rune", tcell.NewEventKey(tcell.KeyRune, 'ß', tcell.ModNone), key.CodeNone, false},
		{"unmapped special", tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl), key.CodeNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tr.FromBackend(tt.ev)
			if got != tt.want || ok != tt.ok {
				t.Errorf("FromBackend = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}

	if _, ok := tr.FromBackend(nil); ok {
		t.Error("FromBackend(nil) ok = true")
	}
}

func TestTranslatorToBackend(t *testing.T) {
	var tr TcellTranslator

	tests := []struct {
		code     key.Code
		wantKey  tcell.Key
		wantRune rune
		ok       bool
	}{
		{key.CodeEscape, tcell.KeyEscape, 0, true},
		{key.CodeBackspace, tcell.KeyBackspace, 0, true},
		{key.CodeA, tcell.KeyRune, 'a', true},
		{key.Code0, tcell.KeyRune, '0', true},
		{key.CodeSpace, tcell.KeyRune, ' ', true},
		{key.CodeMouseLeft, 0, 0, false},
		{key.CodePadSouth, 0, 0, false},
		{key.CodeLeftShift, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			ev, ok := tr.ToBackend(tt.code)
			if ok != tt.ok {
				t.Fatalf("ToBackend ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if ev.Key() != tt.wantKey {
				t.Errorf("Key() = %v, want %v", ev.Key(), tt.wantKey)
			}
			if tt.wantKey == tcell.KeyRune && ev.Rune() != tt.wantRune {
				t.Errorf("Rune() = %q, want %q", ev.Rune(), tt.wantRune)
			}
		})
	}
}

func TestTranslatorRoundTrip(t *testing.T) {
	var tr TcellTranslator
	for c := key.CodeA; c <= key.CodeF12; c++ {
		ev, ok := tr.ToBackend(c)
		if !ok {
			continue // not terminal-expressible
		}
		back, ok := tr.FromBackend(ev)
		if !ok || back != c {
			t.Errorf("round trip for %v = (%v, %v)", c, back, ok)
		}
	}
}

func newSimSource(t *testing.T, clock func() time.Time) (tcell.SimulationScreen, *ScreenSource) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("sim init: %v", err)
	}
	t.Cleanup(sim.Fini)

	src := NewScreenSource(sim, WithDecay(50*time.Millisecond), WithScreenClock(clock))
	t.Cleanup(src.Close)
	return sim, src
}

// pollUntil polls the source until an event for code in the given state
// arrives or the deadline passes.
func pollUntil(t *testing.T, src *ScreenSource, code key.Code, state key.State) key.Event {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for _, ev := range src.Poll() {
			if ev.Code == code && ev.State == state {
				return ev
			}
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("no %v %v event before deadline", code, state)
	return key.Event{}
}

func TestScreenSourcePressAndDecay(t *testing.T) {
	base := time.Now()
	now := base
	sim, src := newSimSource(t, func() time.Time { return now })

	sim.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	ev := pollUntil(t, src, key.CodeA, key.StatePressed)
	if ev.Device != key.DeviceKeyboard {
		t.Errorf("Device = %v, want keyboard", ev.Device)
	}

	// Within the decay window the key stays down and repeats do not
	// produce duplicate presses.
	sim.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	time.Sleep(20 * time.Millisecond)
	for _, got := range src.Poll() {
		if got.Code == key.CodeA && got.State == key.StatePressed {
			t.Error("repeat event produced a second press")
		}
	}

	// Past the decay window a synthetic release appears.
	now = base.Add(time.Minute)
	rel := pollUntil(t, src, key.CodeA, key.StateReleased)
	if !rel.Time.Equal(now) {
		t.Errorf("release time = %v, want clock time %v", rel.Time, now)
	}
}

func TestScreenSourceIgnoresUnmappedKeys(t *testing.T) {
	now := time.Now()
	sim, src := newSimSource(t, func() time.Time { return now })

	sim.InjectKey(tcell.KeyRune, 'ß', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'b', tcell.ModNone)

	ev := pollUntil(t, src, key.CodeB, key.StatePressed)
	if ev.Code != key.CodeB {
		t.Errorf("Code = %v, want b", ev.Code)
	}
}
