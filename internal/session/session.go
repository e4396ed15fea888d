// Package session drives one recording run: initialize the SDK, wait
// for the start key, sample on a fixed tick into the sink, and tear
// everything down on the stop key or on the first error.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/tsellick/keytrace/internal/hidprobe"
	"github.com/tsellick/keytrace/internal/reading"
	"github.com/tsellick/keytrace/internal/record"
	"github.com/tsellick/keytrace/internal/sink"
)

// State tracks the session lifecycle. Stopped is terminal.
type State int

const (
	Idle State = iota
	WaitingForStart
	Recording
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case WaitingForStart:
		return "waiting-for-start"
	case Recording:
		return "recording"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SDK is the slice of the analog binding the control loop drives.
type SDK interface {
	Initialize() (int, error)
	Poll() (reading.Reading, error)
	Shutdown()
}

// DeviceFinder supplies the device identity line printed at startup.
type DeviceFinder interface {
	Find() (hidprobe.DeviceInfo, error)
}

// Session is one run from SDK initialization to shutdown. Configure
// the exported fields before Run; a Session must not be reused.
type Session struct {
	SDK    SDK
	Finder DeviceFinder // optional; identity falls back to the SDK device count
	Out    io.Writer    // console output, default os.Stdout

	Dir       string
	Prefix    string
	ID        string // defaults to a fresh short id
	Tick      time.Duration
	StartCode uint16
	StopCode  uint16

	state   State
	rows    int
	logPath string
}

// State reports the current lifecycle state.
func (s *Session) State() State { return s.state }

// Rows reports how many records were written.
func (s *Session) Rows() int { return s.rows }

// LogPath reports where this session's records went, once decided.
func (s *Session) LogPath() string { return s.logPath }

// Run executes the whole session. It blocks until the stop key, a
// fatal error, or context cancellation, and always shuts the SDK down
// before returning. The sink is only created once the start key is
// seen, so a failed initialization leaves no file behind.
func (s *Session) Run(ctx context.Context) error {
	s.applyDefaults()

	s.state = Idle
	devices, err := s.SDK.Initialize()
	if err != nil {
		s.state = Stopped
		return fmt.Errorf("initialize analog SDK: %w", err)
	}
	defer s.SDK.Shutdown()

	s.reportDevice(devices)

	s.logPath = filepath.Join(s.Dir, sink.FileName(s.Prefix, time.Now(), s.ID))
	fmt.Fprintf(s.Out, "> Will record data to: %s\n", s.logPath)
	fmt.Fprintf(s.Out, "> Press <%s> to begin recording, <%s> to exit\n",
		keyName(s.StartCode), keyName(s.StopCode))

	s.state = WaitingForStart
	started, err := s.waitForStart(ctx)
	if err != nil {
		s.state = Stopped
		return err
	}
	if !started {
		s.state = Stopped
		fmt.Fprintln(s.Out, "> Interrupted before recording")
		return nil
	}

	sk, err := sink.Create(s.logPath)
	if err != nil {
		s.state = Stopped
		return err
	}

	s.state = Recording
	err = s.record(ctx, sk)
	s.rows = sk.Rows()
	s.state = Stopped
	fmt.Fprintf(s.Out, "Recorded %d data points\n", s.rows)
	return err
}

func (s *Session) applyDefaults() {
	if s.Out == nil {
		s.Out = os.Stdout
	}
	if s.Tick <= 0 {
		s.Tick = time.Millisecond
	}
	if s.StartCode == 0 {
		s.StartCode = reading.ScanCodeSpace
	}
	if s.StopCode == 0 {
		s.StopCode = reading.ScanCodeEsc
	}
	if s.ID == "" {
		s.ID = uuid.NewString()[:8]
	}
}

func (s *Session) reportDevice(devices int) {
	if s.Finder != nil {
		d, err := s.Finder.Find()
		if err == nil {
			fmt.Fprintf(s.Out, "> Detected %s %s (%04x:%04x)\n",
				d.Manufacturer, d.Product, d.VendorID, d.ProductID)
			return
		}
		slog.Debug("device probe failed", slog.Any("error", err))
	}
	fmt.Fprintf(s.Out, "> Analog SDK ready, %d device(s)\n", devices)
}

// waitForStart polls until the start key shows up in a reading. A
// false return without error means the context was canceled.
func (s *Session) waitForStart(ctx context.Context) (bool, error) {
	for {
		if ctx.Err() != nil {
			return false, nil
		}
		r, err := s.SDK.Poll()
		if err != nil {
			return false, fmt.Errorf("poll: %w", err)
		}
		if r.Has(s.StartCode) {
			return true, nil
		}
		if !s.sleepTick(ctx) {
			return false, nil
		}
	}
}

// record runs the sampling loop. The sink is closed on every way out;
// a close failure surfaces unless a loop error already did.
func (s *Session) record(ctx context.Context, sk *sink.Sink) (err error) {
	defer func() {
		if cerr := sk.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	lastCount := -1
	for {
		if ctx.Err() != nil {
			return nil
		}

		r, perr := s.SDK.Poll()
		if perr != nil {
			return fmt.Errorf("poll: %w", perr)
		}

		if n := len(r.Entries); n != lastCount {
			fmt.Fprintf(s.Out, "Keys pressed: %d\n", n)
			lastCount = n
		}

		// The tick that carries the stop key is still logged, so the
		// record of the keystroke that ended the session survives.
		stop := r.Has(s.StopCode)
		if aerr := sk.Append(record.Format(r)); aerr != nil {
			return aerr
		}
		if stop {
			return nil
		}
		if !s.sleepTick(ctx) {
			return nil
		}
	}
}

// sleepTick waits one cadence interval. False means the context ended.
func (s *Session) sleepTick(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(s.Tick):
		return true
	}
}

func keyName(code uint16) string {
	switch code {
	case reading.ScanCodeSpace:
		return "Space"
	case reading.ScanCodeEsc:
		return "Esc"
	default:
		return fmt.Sprintf("scan code %d", code)
	}
}
