package httpmiddleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-faster/jx"
)

// Limiter is a sliding window counter keyed by an arbitrary string. The
// previous window's count is weighted by how much it still overlaps the
// sliding window.
type Limiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	prev      float64
	curr      float64
	currStart time.Time
}

// Decision is the outcome of Limiter.Allow.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// NewLimiter allows max events per window for every key.
func NewLimiter(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

// Allow records an event for key at now unless the key is over its limit.
func (l *Limiter) Allow(key string, now time.Time) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{currStart: now.Truncate(l.window)}
		l.buckets[key] = b
	}

	if elapsed := now.Sub(b.currStart); elapsed >= l.window {
		if elapsed >= 2*l.window {
			b.prev = 0
		} else {
			b.prev = b.curr
		}
		b.curr = 0
		b.currStart = now.Truncate(l.window)
	}

	overlap := max(0, 1-now.Sub(b.currStart).Seconds()/l.window.Seconds())
	used := b.prev*overlap + b.curr
	d := Decision{ResetAt: b.currStart.Add(l.window)}
	if used >= float64(l.max) {
		return d
	}

	b.curr++
	d.Allowed = true
	d.Remaining = max(0, int(float64(l.max)-used-1))
	return d
}

// Evict drops keys idle for two full windows.
func (l *Limiter) Evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if now.Sub(b.currStart) >= 2*l.window {
			delete(l.buckets, key)
		}
	}
}

// RunEviction calls Evict every two windows until ctx is done.
func (l *Limiter) RunEviction(ctx context.Context) {
	ticker := time.NewTicker(2 * l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Evict(now)
		}
	}
}

// KeyFunc selects the rate limit key of a request.
type KeyFunc func(r *http.Request) string

// RemoteIP keys requests by the host part of RemoteAddr.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit rejects requests over the limit of their key with 429 and a
// JSON body. Every response carries the X-RateLimit-* headers.
func RateLimit(l *Limiter, key KeyFunc) Middleware {
	if key == nil {
		key = RemoteIP
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			d := l.Allow(key(r), now)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(l.max))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if d.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			retry := max(0, d.ResetAt.Sub(now))
			h.Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		})
	}
}

// writeError writes {"code":N,"message":"..."}.
func writeError(w http.ResponseWriter, code int, msg string) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(e.Bytes())
}
