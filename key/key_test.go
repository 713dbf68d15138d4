package key

import (
	"testing"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeNone, "none"},
		{CodeA, "a"},
		{CodeZ, "z"},
		{Code0, "0"},
		{Code9, "9"},
		{CodeEscape, "escape"},
		{CodeEnter, "enter"},
		{CodeSpace, "space"},
		{CodePageUp, "pageup"},
		{CodeUp, "up"},
		{CodeLeftShift, "lshift"},
		{CodeRightAlt, "ralt"},
		{CodeF1, "f1"},
		{CodeF12, "f12"},
		{CodeMouseLeft, "mouse1"},
		{CodePadSouth, "pad_south"},
		{Code(9999), "code(9999)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.String(); got != tt.want {
				t.Errorf("Code.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Code
		ok   bool
	}{
		{"a", CodeA, true},
		{"Z", CodeZ, true},
		{"7", Code7, true},
		{"escape", CodeEscape, true},
		{"esc", CodeEscape, true},
		{"return", CodeEnter, true},
		{"  Space  ", CodeSpace, true},
		{"f1", CodeF1, true},
		{"F12", CodeF12, true},
		{"pgdn", CodePageDown, true},
		{"shift", CodeLeftShift, true},
		{"mouse1", CodeMouseLeft, true},
		{"pad_south", CodePadSouth, true},
		{"", CodeNone, false},
		{"f0", CodeNone, false},
		{"f13", CodeNone, false},
		{"hyperspace", CodeNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromName(tt.name)
			if got != tt.want || ok != tt.ok {
				t.Errorf("FromName(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFromNameRoundTrip(t *testing.T) {
	for c := CodeA; c <= CodePadR2; c++ {
		name := c.String()
		got, ok := FromName(name)
		if !ok {
			t.Errorf("FromName(%q) not recognized", name)
			continue
		}
		if got != c {
			t.Errorf("FromName(%q) = %v, want %v", name, got, c)
		}
	}
}

func TestMustFromNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustFromName with unknown name did not panic")
		}
	}()
	MustFromName("no_such_key")
}

func TestCodeClassification(t *testing.T) {
	tests := []struct {
		code    Code
		letter  bool
		digit   bool
		arrow   bool
		mod     bool
		mouse   bool
		gamepad bool
		device  DeviceKind
	}{
		{CodeA, true, false, false, false, false, false, DeviceKeyboard},
		{Code5, false, true, false, false, false, false, DeviceKeyboard},
		{CodeLeft, false, false, true, false, false, false, DeviceKeyboard},
		{CodeRightCtrl, false, false, false, true, false, false, DeviceKeyboard},
		{CodeMouseMiddle, false, false, false, false, true, false, DeviceMouse},
		{CodePadR2, false, false, false, false, false, true, DeviceGamepad},
		{CodeEscape, false, false, false, false, false, false, DeviceKeyboard},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := tt.code.IsLetter(); got != tt.letter {
				t.Errorf("IsLetter() = %v, want %v", got, tt.letter)
			}
			if got := tt.code.IsDigit(); got != tt.digit {
				t.Errorf("IsDigit() = %v, want %v", got, tt.digit)
			}
			if got := tt.code.IsArrow(); got != tt.arrow {
				t.Errorf("IsArrow() = %v, want %v", got, tt.arrow)
			}
			if got := tt.code.IsModifier(); got != tt.mod {
				t.Errorf("IsModifier() = %v, want %v", got, tt.mod)
			}
			if got := tt.code.IsMouse(); got != tt.mouse {
				t.Errorf("IsMouse() = %v, want %v", got, tt.mouse)
			}
			if got := tt.code.IsGamepad(); got != tt.gamepad {
				t.Errorf("IsGamepad() = %v, want %v", got, tt.gamepad)
			}
			if got := tt.code.Device(); got != tt.device {
				t.Errorf("Device() = %v, want %v", got, tt.device)
			}
		})
	}
}
