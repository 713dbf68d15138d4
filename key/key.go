package key

import (
	"fmt"
	"strings"
)

// Code identifies a key or button in the engine's native namespace.
// Backends translate their own identifiers to and from Code; game logic
// only ever sees Code values. Code is an identity, not an ordering.
type Code uint16

const (
	// CodeNone represents no key.
	CodeNone Code = iota

	// Letter keys
	CodeA
	CodeB
	CodeC
	CodeD
	CodeE
	CodeF
	CodeG
	CodeH
	CodeI
	CodeJ
	CodeK
	CodeL
	CodeM
	CodeN
	CodeO
	CodeP
	CodeQ
	CodeR
	CodeS
	CodeT
	CodeU
	CodeV
	CodeW
	CodeX
	CodeY
	CodeZ

	// Digit keys (top row)
	Code0
	Code1
	Code2
	Code3
	Code4
	Code5
	Code6
	Code7
	Code8
	Code9

	// Special keys
	CodeEscape
	CodeEnter
	CodeTab
	CodeBackspace
	CodeDelete
	CodeInsert
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeSpace

	// Arrow keys
	CodeUp
	CodeDown
	CodeLeft
	CodeRight

	// Modifier keys
	CodeLeftShift
	CodeRightShift
	CodeLeftCtrl
	CodeRightCtrl
	CodeLeftAlt
	CodeRightAlt

	// Function keys
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12

	// Mouse buttons
	CodeMouseLeft
	CodeMouseRight
	CodeMouseMiddle

	// Gamepad buttons
	CodePadSouth
	CodePadEast
	CodePadWest
	CodePadNorth
	CodePadStart
	CodePadSelect
	CodePadL1
	CodePadR1
	CodePadL2
	CodePadR2
)

// codeNames maps codes to their canonical lowercase names.
var codeNames = map[Code]string{
	CodeNone:       "none",
	CodeEscape:     "escape",
	CodeEnter:      "enter",
	CodeTab:        "tab",
	CodeBackspace:  "backspace",
	CodeDelete:     "delete",
	CodeInsert:     "insert",
	CodeHome:       "home",
	CodeEnd:        "end",
	CodePageUp:     "pageup",
	CodePageDown:   "pagedown",
	CodeSpace:      "space",
	CodeUp:         "up",
	CodeDown:       "down",
	CodeLeft:       "left",
	CodeRight:      "right",
	CodeLeftShift:  "lshift",
	CodeRightShift: "rshift",
	CodeLeftCtrl:   "lctrl",
	CodeRightCtrl:  "rctrl",
	CodeLeftAlt:    "lalt",
	CodeRightAlt:   "ralt",
	CodeMouseLeft:  "mouse1",
	CodeMouseRight: "mouse2",
	CodeMouseMiddle: "mouse3",
	CodePadSouth:   "pad_south",
	CodePadEast:    "pad_east",
	CodePadWest:    "pad_west",
	CodePadNorth:   "pad_north",
	CodePadStart:   "pad_start",
	CodePadSelect:  "pad_select",
	CodePadL1:      "pad_l1",
	CodePadR1:      "pad_r1",
	CodePadL2:      "pad_l2",
	CodePadR2:      "pad_r2",
}

// nameCodes is the reverse of codeNames plus aliases.
var nameCodes = func() map[string]Code {
	m := make(map[string]Code, len(codeNames)+64)
	for c, n := range codeNames {
		m[n] = c
	}
	// Aliases
	m["esc"] = CodeEscape
	m["return"] = CodeEnter
	m["bs"] = CodeBackspace
	m["del"] = CodeDelete
	m["ins"] = CodeInsert
	m["pgup"] = CodePageUp
	m["pgdn"] = CodePageDown
	m["shift"] = CodeLeftShift
	m["ctrl"] = CodeLeftCtrl
	m["alt"] = CodeLeftAlt
	return m
}()

// String returns the canonical name for the code.
func (c Code) String() string {
	switch {
	case c >= CodeA && c <= CodeZ:
		return string(rune('a' + (c - CodeA)))
	case c >= Code0 && c <= Code9:
		return string(rune('0' + (c - Code0)))
	case c >= CodeF1 && c <= CodeF12:
		return fmt.Sprintf("f%d", c-CodeF1+1)
	}
	if n, ok := codeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// IsLetter returns true for the letter keys a-z.
func (c Code) IsLetter() bool {
	return c >= CodeA && c <= CodeZ
}

// IsDigit returns true for the digit keys 0-9.
func (c Code) IsDigit() bool {
	return c >= Code0 && c <= Code9
}

// IsArrow returns true for the arrow keys.
func (c Code) IsArrow() bool {
	return c >= CodeUp && c <= CodeRight
}

// IsModifier returns true for the modifier keys.
func (c Code) IsModifier() bool {
	return c >= CodeLeftShift && c <= CodeRightAlt
}

// IsMouse returns true for mouse buttons.
func (c Code) IsMouse() bool {
	return c >= CodeMouseLeft && c <= CodeMouseMiddle
}

// IsGamepad returns true for gamepad buttons.
func (c Code) IsGamepad() bool {
	return c >= CodePadSouth && c <= CodePadR2
}

// Device returns the device class a code belongs to. Codes outside the
// mouse and gamepad ranges classify as keyboard.
func (c Code) Device() DeviceKind {
	switch {
	case c.IsMouse():
		return DeviceMouse
	case c.IsGamepad():
		return DeviceGamepad
	default:
		return DeviceKeyboard
	}
}

// FromName returns the Code for a name (case-insensitive).
// Single letters and digits map to their letter/digit codes,
// "f1".."f12" to the function keys. Returns CodeNone and false
// if the name is not recognized.
func FromName(name string) (Code, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return CodeNone, false
	}
	if len(name) == 1 {
		r := rune(name[0])
		switch {
		case r >= 'a' && r <= 'z':
			return CodeA + Code(r-'a'), true
		case r >= '0' && r <= '9':
			return Code0 + Code(r-'0'), true
		}
	}
	if len(name) >= 2 && name[0] == 'f' {
		var n int
		if _, err := fmt.Sscanf(name, "f%d", &n); err == nil && n >= 1 && n <= 12 {
			return CodeF1 + Code(n-1), true
		}
	}
	if c, ok := nameCodes[name]; ok {
		return c, true
	}
	return CodeNone, false
}

// MustFromName returns the Code for a name and panics if unknown.
// Use only for known-valid names in initialization code.
func MustFromName(name string) Code {
	c, ok := FromName(name)
	if !ok {
		panic("unknown key name: " + name)
	}
	return c
}
