// Package clock provides an injectable time source so that response
// timestamps are testable.
package clock

import "time"

// Clock abstracts the current time.
type Clock interface {
	Now() time.Time
	NowUnixMilli() int64
}

// SystemClock returns the real system time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) NowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

// FakeClock returns a fixed time for tests.
type FakeClock struct {
	FixedTime time.Time
}

func (f *FakeClock) Now() time.Time {
	return f.FixedTime
}

func (f *FakeClock) NowUnixMilli() int64 {
	return f.FixedTime.UnixMilli()
}
