package server

import (
	"sync"

	"golang.org/x/time/rate"
)

// ipLimiter rate-limits accepted connections per peer IP. Off unless
// configured; the default behavior is unbounded fan-out.
type ipLimiter struct {
	mu    sync.Mutex
	m     map[string]*rate.Limiter
	rps   rate.Limit
	burst int
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	if burst <= 0 {
		burst = 10
	}
	return &ipLimiter{
		m:     make(map[string]*rate.Limiter),
		rps:   rate.Limit(rps),
		burst: burst,
	}
}

func (p *ipLimiter) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.m[key]; ok {
		return l
	}
	l := rate.NewLimiter(p.rps, p.burst)
	p.m[key] = l
	return l
}

func (p *ipLimiter) allow(key string) bool {
	return p.get(key).Allow()
}
