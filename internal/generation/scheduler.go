package generation

import "time"

// Task is a scheduled callback that can be cancelled
type Task interface {
	Stop() bool
}

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// timerScheduler schedules on the runtime timer heap
type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// TimerScheduler returns the default scheduler backed by time.AfterFunc
func TimerScheduler() Scheduler {
	return timerScheduler{}
}
