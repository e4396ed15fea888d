package reading

// HID usage codes for the keys the control loop cares about by default.
// The SDK reports these when the keycode mode is left at HID.
const (
	ScanCodeEsc   uint16 = 41
	ScanCodeSpace uint16 = 44
)
