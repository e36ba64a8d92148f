package mines

import "time"

// Clock counts whole seconds of play. It starts on the first reveal,
// stops at the terminal state and never restarts within one game.
type Clock struct {
	Now       func() time.Time `json:"-"`
	StartedAt time.Time
	EndedAt   time.Time
}

func (c *Clock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Clock) Start() {
	if c.StartedAt.IsZero() {
		c.StartedAt = c.now()
	}
}

func (c *Clock) Stop() {
	if !c.StartedAt.IsZero() && c.EndedAt.IsZero() {
		c.EndedAt = c.now()
	}
}

func (c *Clock) Running() bool {
	return !c.StartedAt.IsZero() && c.EndedAt.IsZero()
}

// ElapsedSeconds reports whole seconds between start and end, or start
// and now while the clock is running. Zero before the first reveal.
func (c *Clock) ElapsedSeconds() int {
	if c.StartedAt.IsZero() {
		return 0
	}
	end := c.EndedAt
	if end.IsZero() {
		end = c.now()
	}
	return int(end.Sub(c.StartedAt) / time.Second)
}
