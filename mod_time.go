package neon

import (
	"time"
)

// Time is the clock of the current tick. Now is the host frame timestamp in
// milliseconds; Dt is zero on the first tick.
type Time struct {
	Now   float64
	Dt    time.Duration
	Frame uint64
}

// Advance moves the clock to the timestamp of a new tick.
func (t *Time) Advance(now float64) {
	if t.Frame > 0 {
		t.Dt = time.Duration((now - t.Now) * float64(time.Millisecond))
	}
	t.Now = now
	t.Frame++
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{})
}
