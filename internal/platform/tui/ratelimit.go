package tui

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures per-IP limits on new SSH sessions.
type RateLimitConfig struct {
	SessionsPerSecond float64       // Sustained rate of new sessions per IP
	Burst             int           // Sessions an IP may open back to back
	MaxPerIP          int           // Concurrent sessions per IP; 0 means unlimited
	CleanupInterval   time.Duration // How often to forget idle IPs
}

// DefaultRateLimitConfig allows a burst of 5 sessions, then one every 5s.
var DefaultRateLimitConfig = RateLimitConfig{
	SessionsPerSecond: 0.2,
	Burst:             5,
	MaxPerIP:          4,
	CleanupInterval:   5 * time.Minute,
}

// ipEntry tracks one client address.
type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // Unix nanoseconds
	active   atomic.Int32
}

// IPRateLimiter limits how fast and how many sessions each client IP opens.
type IPRateLimiter struct {
	entries  sync.Map // map[string]*ipEntry
	config   RateLimitConfig
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once

	allowed  atomic.Uint64
	rejected atomic.Uint64
}

// NewIPRateLimiter creates a limiter and starts its cleanup loop.
func NewIPRateLimiter(cfg RateLimitConfig) *IPRateLimiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultRateLimitConfig.CleanupInterval
	}
	rl := &IPRateLimiter{
		config:   cfg,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop stops the cleanup goroutine.
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopChan)
	})
}

func (rl *IPRateLimiter) entry(ip string) *ipEntry {
	now := rl.now().UnixNano()
	if v, ok := rl.entries.Load(ip); ok {
		e := v.(*ipEntry)
		e.lastSeen.Store(now)
		return e
	}
	e := &ipEntry{limiter: rate.NewLimiter(rate.Limit(rl.config.SessionsPerSecond), rl.config.Burst)}
	e.lastSeen.Store(now)
	actual, _ := rl.entries.LoadOrStore(ip, e)
	return actual.(*ipEntry)
}

// Allow reports whether ip may open a new session now.
func (rl *IPRateLimiter) Allow(ip string) bool {
	if rl.entry(ip).limiter.AllowN(rl.now(), 1) {
		rl.allowed.Add(1)
		return true
	}
	rl.rejected.Add(1)
	return false
}

// Acquire reserves a concurrent session slot for ip. Every successful
// Acquire must be paired with Release.
func (rl *IPRateLimiter) Acquire(ip string) bool {
	if rl.config.MaxPerIP <= 0 {
		return true
	}
	e := rl.entry(ip)
	for {
		current := e.active.Load()
		if int(current) >= rl.config.MaxPerIP {
			rl.rejected.Add(1)
			return false
		}
		if e.active.CompareAndSwap(current, current+1) {
			return true
		}
	}
}

// Release frees a slot taken by Acquire.
func (rl *IPRateLimiter) Release(ip string) {
	if rl.config.MaxPerIP <= 0 {
		return
	}
	if v, ok := rl.entries.Load(ip); ok {
		v.(*ipEntry).active.Add(-1)
	}
}

// Stats returns how many sessions were allowed and rejected.
func (rl *IPRateLimiter) Stats() (allowed, rejected uint64) {
	return rl.allowed.Load(), rl.rejected.Load()
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopChan:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

// cleanup forgets IPs that have been idle for two intervals and hold no session.
func (rl *IPRateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.config.CleanupInterval * 2).UnixNano()
	rl.entries.Range(func(key, value any) bool {
		e := value.(*ipEntry)
		if e.lastSeen.Load() < cutoff && e.active.Load() == 0 {
			rl.entries.Delete(key)
		}
		return true
	})
}

// remoteIP extracts the host part of a remote address.
func remoteIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
