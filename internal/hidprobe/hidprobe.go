// Package hidprobe identifies the analog keyboard on the USB bus. The
// SDK itself talks to the hardware through its plugin layer; this
// probe only supplies the vendor/product strings for the startup
// message and a better diagnostic when nothing matches.
package hidprobe

import (
	"errors"
	"fmt"

	"github.com/karalabe/usb"
	usbhid "rafaelmartins.com/p/usbhid"
)

// Vendor IDs analog keyboards enumerate under.
const (
	WootingVID uint16 = 0x31E3
	AtmelVID   uint16 = 0x03EB // older Wooting one/two boards
)

// ErrNotFound means no device with a known vendor ID is on the bus.
var ErrNotFound = errors.New("no analog keyboard on the bus")

// DeviceInfo describes one enumerated HID device.
type DeviceInfo struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Product      string
	Manufacturer string
}

// Probe enumerates HID devices and picks out the analog keyboard.
type Probe struct {
	vendors   []uint16
	enumerate func() ([]DeviceInfo, error)
	countAll  func() (int, error)
}

// New returns a probe matching the given vendor IDs, or the known
// analog keyboard vendors when none are given.
func New(vendors ...uint16) *Probe {
	if len(vendors) == 0 {
		vendors = []uint16{WootingVID, AtmelVID}
	}
	return &Probe{
		vendors:   vendors,
		enumerate: enumerateHID,
		countAll:  countAllUSB,
	}
}

// Find returns the first device matching one of the probe's vendor
// IDs. On a miss it reports how many other USB devices are visible, so
// "not plugged in" and "no USB access at all" read differently.
func (p *Probe) Find() (DeviceInfo, error) {
	devs, err := p.enumerate()
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("hid enumerate: %w", err)
	}
	for _, d := range devs {
		for _, vid := range p.vendors {
			if d.VendorID == vid {
				return d, nil
			}
		}
	}

	n, err := p.countAll()
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("%w; usb enumerate failed: %v", ErrNotFound, err)
	}
	return DeviceInfo{}, fmt.Errorf("%w; found %d other USB devices", ErrNotFound, n)
}

func enumerateHID() ([]DeviceInfo, error) {
	devs, err := usbhid.Enumerate(nil)
	if err != nil {
		return nil, err
	}
	out := make([]DeviceInfo, 0, len(devs))
	for _, d := range devs {
		out = append(out, DeviceInfo{
			Path:         d.Path(),
			VendorID:     d.VendorId(),
			ProductID:    d.ProductId(),
			Product:      d.Product(),
			Manufacturer: d.Manufacturer(),
		})
	}
	return out, nil
}

func countAllUSB() (int, error) {
	infos, err := usb.Enumerate(0, 0)
	if err != nil {
		return 0, err
	}
	return len(infos), nil
}
