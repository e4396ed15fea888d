// Package reading holds the sampling data model shared between the SDK
// binding and the recording loop.
package reading

// Entry is one active key in a snapshot: its scan code and how far the
// key is pressed, normalized to 0.0-1.0.
type Entry struct {
	Code  uint16
	Value float32
}

// Reading is a single snapshot of all currently pressed keys at one
// instant. It is produced once per polling tick and never mutated.
type Reading struct {
	Timestamp float64 // wall-clock seconds
	Entries   []Entry
}

// Has reports whether the snapshot contains the given scan code.
func (r Reading) Has(code uint16) bool {
	for _, e := range r.Entries {
		if e.Code == code {
			return true
		}
	}
	return false
}
