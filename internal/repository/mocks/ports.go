package mocks

import (
	"fmt"
	"sync"
	"time"
)

// SeqIDGen は id-1, id-2 ... を返す。
type SeqIDGen struct {
	mu     sync.Mutex
	Prefix string
	n      int
}

func (g *SeqIDGen) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

// FixedClock はSetで進められる時計。
type FixedClock struct {
	mu sync.Mutex
	T  time.Time
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.T
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.T = t
}
