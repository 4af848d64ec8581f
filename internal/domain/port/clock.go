package port

import "time"

// Clock abstracts time so the simulated analysis delay can be driven by tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}
