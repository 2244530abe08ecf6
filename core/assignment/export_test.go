package assignment

import (
	"time"

	"github.com/google/uuid"
)

// MockClock pins the service clock and file refs until the returned func is called.
func MockClock(now time.Time, ref uuid.UUID) (reset func()) {
	nowFunc = func() time.Time { return now }
	newFileRef = func() uuid.UUID { return ref }
	return func() {
		nowFunc = time.Now
		newFileRef = uuid.New
	}
}
