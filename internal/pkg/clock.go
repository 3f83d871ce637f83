package pkg

import "time"

// Timer is a pending deferred call.
type Timer interface {
	// Stop prevents the call from running. It returns false if the call already ran or was stopped.
	Stop() bool
}

// Clock schedules deferred calls.
type Clock interface {
	AfterFunc(delay time.Duration, f func()) Timer
}

type realClock struct{}

// NewClock - returns a Clock backed by time.AfterFunc.
func NewClock() Clock {
	return realClock{}
}

func (realClock) AfterFunc(delay time.Duration, f func()) Timer {
	return time.AfterFunc(delay, f)
}
