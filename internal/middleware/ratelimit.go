package middleware

import (
	"net"
	"net/http"
	"sync"

	"github.com/juju/ratelimit"
)

// RateLimiter aplica un bucket por IP. Se usa en /auth para frenar
// fuerza bruta sobre login/register.
type RateLimiter struct {
	mu      sync.RWMutex
	clients map[string]*ratelimit.Bucket

	rate     float64
	capacity int64
}

func NewRateLimiter(ratePerSecond float64, capacity int64) *RateLimiter {
	return &RateLimiter{
		clients:  make(map[string]*ratelimit.Bucket),
		rate:     ratePerSecond,
		capacity: capacity,
	}
}

func (rl *RateLimiter) bucket(clientIP string) *ratelimit.Bucket {
	rl.mu.RLock()
	b, ok := rl.clients[clientIP]
	rl.mu.RUnlock()
	if ok {
		return b
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if b, ok = rl.clients[clientIP]; !ok {
		b = ratelimit.NewBucketWithRate(rl.rate, rl.capacity)
		rl.clients[clientIP] = b
	}
	return b
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if rl.bucket(ip).TakeAvailable(1) == 0 {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
