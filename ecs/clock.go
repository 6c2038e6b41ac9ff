package ecs

// DefaultDelta matches ebiten's default 60 ticks per second.
const DefaultDelta = float32(1.0 / 60.0)

// Clock is the world's fixed-step time resource, in seconds.
type Clock struct {
	Delta   float32
	Elapsed float32
	Frame   uint64
}

func (c *Clock) advance() {
	if c.Delta <= 0 {
		c.Delta = DefaultDelta
	}
	c.Elapsed += c.Delta
	c.Frame++
}
