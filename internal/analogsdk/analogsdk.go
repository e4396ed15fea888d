// Package analogsdk binds the vendor's analog-input SDK wrapper
// library. All foreign calls live behind this package; the rest of the
// program deals only in readings and the error taxonomy in errors.go.
//
// The wrapper exposes a small C API (wooting_analog_initialise,
// wooting_analog_read_full_buffer, ...) from a dynamic library that
// ships with the SDK. Symbols are resolved once at Open.
package analogsdk

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/ebitengine/purego"

	"github.com/tsellick/keytrace/internal/reading"
)

// KeycodeMode selects the scan-code namespace the SDK reports in.
type KeycodeMode uint32

const (
	KeycodeHID KeycodeMode = iota
	KeycodeScanCode1
	KeycodeVirtualKey
	KeycodeVirtualKeyTranslate
)

// DefaultBufferSize bounds how many simultaneous key states one poll
// can return.
const DefaultBufferSize = 64

// DefaultLibraryName returns the platform file name of the SDK wrapper
// library.
func DefaultLibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "wooting_analog_wrapper.dll"
	case "darwin":
		return "libwooting_analog_wrapper.dylib"
	default:
		return "libwooting_analog_wrapper.so"
	}
}

// SDK is an open handle on the wrapper library. It is not safe for
// concurrent use; the control loop is its only caller.
type SDK struct {
	handle   uintptr
	bufSize  int
	mode     KeycodeMode
	excluded map[uint16]struct{}

	codes  []uint16
	values []float32

	initialized  bool
	shutdownOnce bool

	now func() float64

	initialise     func() int32
	isInitialised  func() bool
	uninitialise   func() int32
	setKeycodeMode func(uint32) int32
	readAnalog     func(uint16) float32
	readFullBuffer func(*uint16, *float32, uint32) int32
}

// Open loads the wrapper library from path and resolves its symbols.
// No device contact happens until Initialize.
func Open(path string, opts ...Option) (*SDK, error) {
	handle, err := loadLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, path, err)
	}

	s := &SDK{
		handle:  handle,
		bufSize: DefaultBufferSize,
		mode:    KeycodeHID,
		now:     wallClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.codes = make([]uint16, s.bufSize)
	s.values = make([]float32, s.bufSize)

	purego.RegisterLibFunc(&s.initialise, handle, "wooting_analog_initialise")
	purego.RegisterLibFunc(&s.isInitialised, handle, "wooting_analog_is_initialised")
	purego.RegisterLibFunc(&s.uninitialise, handle, "wooting_analog_uninitialise")
	purego.RegisterLibFunc(&s.setKeycodeMode, handle, "wooting_analog_set_keycode_mode")
	purego.RegisterLibFunc(&s.readAnalog, handle, "wooting_analog_read_analog")
	purego.RegisterLibFunc(&s.readFullBuffer, handle, "wooting_analog_read_full_buffer")

	return s, nil
}

// Initialize establishes contact with connected hardware and applies
// the configured keycode mode. It returns the number of devices the
// SDK found.
func (s *SDK) Initialize() (int, error) {
	res := s.initialise()
	if res < 0 {
		return 0, translateResult(res)
	}
	if res == 0 {
		return 0, ErrNoDevice
	}
	s.initialized = true
	slog.Debug("analog SDK initialised", slog.Int("devices", int(res)))

	if s.mode != KeycodeHID {
		if mres := s.setKeycodeMode(uint32(s.mode)); mres < 0 {
			return 0, fmt.Errorf("set keycode mode: %w", translateResult(mres))
		}
	}
	return int(res), nil
}

// ReadKey reads the analog value of a single scan code from any
// connected device.
func (s *SDK) ReadKey(code uint16) (float32, error) {
	if !s.initialized {
		return 0, ErrUninitialized
	}
	v := s.readAnalog(code)
	if v < 0 {
		return 0, translateResult(int32(v))
	}
	return v, nil
}

// Poll snapshots all currently pressed keys. Zero scan codes and
// excluded codes are stripped; an empty reading is success.
func (s *SDK) Poll() (reading.Reading, error) {
	if !s.initialized {
		return reading.Reading{}, ErrUninitialized
	}

	clear(s.codes)
	clear(s.values)
	res := s.readFullBuffer(&s.codes[0], &s.values[0], uint32(s.bufSize))
	if res < 0 {
		return reading.Reading{}, translateResult(res)
	}

	r := reading.Reading{Timestamp: s.now()}
	for i := 0; i < int(res); i++ {
		code := s.codes[i]
		if code == 0 {
			continue
		}
		if _, skip := s.excluded[code]; skip {
			continue
		}
		r.Entries = append(r.Entries, reading.Entry{Code: code, Value: s.values[i]})
	}
	return r, nil
}

// Shutdown releases native resources. Safe after a partial Initialize
// and safe to call more than once.
func (s *SDK) Shutdown() {
	if s.shutdownOnce {
		return
	}
	s.shutdownOnce = true
	s.initialized = false
	if s.isInitialised != nil && s.isInitialised() {
		if res := s.uninitialise(); res < 0 {
			slog.Warn("analog SDK uninitialise failed", slog.Int("code", int(res)))
		}
	}
}

func wallClock() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
