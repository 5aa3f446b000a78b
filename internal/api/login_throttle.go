package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
)

// loginThrottle tracks failed login attempts per client key in a sliding
// window. Successful logins reset the key.
type loginThrottle struct {
	mu       sync.Mutex
	failures map[string][]time.Time
}

func newLoginThrottle() *loginThrottle {
	return &loginThrottle{failures: make(map[string][]time.Time)}
}

func (throttle *loginThrottle) blocked(key string, now time.Time) bool {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	return len(throttle.pruneLocked(key, now)) >= loginAttemptLimit
}

func (throttle *loginThrottle) recordFailure(key string, now time.Time) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	throttle.failures[key] = append(throttle.pruneLocked(key, now), now)
}

func (throttle *loginThrottle) reset(key string) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	delete(throttle.failures, key)
}

func (throttle *loginThrottle) pruneLocked(key string, now time.Time) []time.Time {
	threshold := now.Add(-loginAttemptWindow)
	recent := make([]time.Time, 0, len(throttle.failures[key]))
	for _, at := range throttle.failures[key] {
		if at.After(threshold) {
			recent = append(recent, at)
		}
	}
	if len(recent) == 0 {
		delete(throttle.failures, key)
		return recent
	}
	throttle.failures[key] = recent
	return recent
}

func clientThrottleKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
