// Package clock abstracts time so request handling and estimate timestamps
// can be tested deterministically.
package clock

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Clock is the time source used across the service. Production code uses
// RealClock; tests inject MockClock.
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// NowUnixMilli returns the current time as Unix milliseconds
	NowUnixMilli() int64
}

// RealClock reads the system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) NowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

// MockClock is a thread-safe, manually controlled Clock for tests.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock creates a MockClock pinned to t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *MockClock) NowUnixMilli() int64 {
	return m.Now().UnixMilli()
}

// Set pins the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock by d. Negative durations move it backwards.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// EnvironmentClock resolves time from an environment variable, then a file,
// then falls back to system time. The sources are re-read on every call so a
// test harness can move time without restarting the process.
type EnvironmentClock struct {
	envVar   string
	filePath string
	location *time.Location
}

// NewEnvironmentClock creates an EnvironmentClock. Either source may be
// empty; with both empty it behaves like RealClock.
func NewEnvironmentClock(envVar string, filePath string, location *time.Location) *EnvironmentClock {
	return &EnvironmentClock{
		envVar:   envVar,
		filePath: filePath,
		location: location,
	}
}

func (e *EnvironmentClock) Now() time.Time {
	if e.envVar != "" {
		if t, err := e.parseTime(os.Getenv(e.envVar)); err == nil {
			return t
		}
	}
	if e.filePath != "" {
		if data, err := os.ReadFile(e.filePath); err == nil {
			if t, err := e.parseTime(string(data)); err == nil {
				return t
			}
		}
	}
	if e.envVar != "" || e.filePath != "" {
		slog.Warn("EnvironmentClock: no usable time source, falling back to system time",
			slog.String("envVar", e.envVar), slog.String("filePath", e.filePath))
	}
	return time.Now()
}

func (e *EnvironmentClock) NowUnixMilli() int64 {
	return e.Now().UnixMilli()
}

// parseTime accepts RFC3339, "2006-01-02 15:04:05", or a bare date. The
// zoneless forms need a configured location.
func (e *EnvironmentClock) parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty time value")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	if e.location == nil {
		return time.Time{}, errors.New("timezone not configured")
	}

	for _, format := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(format, s, e.location); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse time %q", s)
}
