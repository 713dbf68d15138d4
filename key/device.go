package key

// DeviceKind identifies the class of device that produced an event.
type DeviceKind uint8

const (
	// DeviceKeyboard indicates a keyboard event.
	DeviceKeyboard DeviceKind = iota
	// DeviceMouse indicates a mouse button event.
	DeviceMouse
	// DeviceGamepad indicates a gamepad button event.
	DeviceGamepad
	// DeviceTouch indicates a touch event.
	DeviceTouch
	// DeviceOther indicates a custom or unknown device.
	DeviceOther
)

// String returns the device kind name.
func (d DeviceKind) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DeviceMouse:
		return "mouse"
	case DeviceGamepad:
		return "gamepad"
	case DeviceTouch:
		return "touch"
	default:
		return "other"
	}
}
