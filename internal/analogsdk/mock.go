package analogsdk

import (
	"github.com/tsellick/keytrace/internal/reading"
)

// MockStep is one scripted poll result.
type MockStep struct {
	Reading reading.Reading
	Err     error
}

// Mock is a scripted stand-in for the native SDK, used by control-loop
// tests. Poll consumes Steps in order; once the script runs out it
// returns empty readings with an advancing timestamp.
type Mock struct {
	Devices int
	InitErr error
	Steps   []MockStep

	Inits     int
	Shutdowns int

	step int
	now  float64
}

func (m *Mock) Initialize() (int, error) {
	m.Inits++
	if m.InitErr != nil {
		return 0, m.InitErr
	}
	if m.Devices == 0 {
		m.Devices = 1
	}
	return m.Devices, nil
}

func (m *Mock) Poll() (reading.Reading, error) {
	if m.step < len(m.Steps) {
		s := m.Steps[m.step]
		m.step++
		return s.Reading, s.Err
	}
	m.now += 0.001
	return reading.Reading{Timestamp: m.now}, nil
}

func (m *Mock) Shutdown() {
	m.Shutdowns++
}
