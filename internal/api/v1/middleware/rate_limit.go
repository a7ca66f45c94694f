package middleware

import (
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"seoinspector/internal/log"
	"seoinspector/internal/util"
)

const (
	clientSweepInterval = time.Minute
	clientIdleTTL       = 5 * time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type clientLimiters struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
}

func newClientLimiters(rps float64, burst int) *clientLimiters {
	l := &clientLimiters{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go l.sweep()
	return l
}

func (l *clientLimiters) sweep() {
	for {
		time.Sleep(clientSweepInterval)
		l.mu.Lock()
		for ip, c := range l.clients {
			if time.Since(c.lastSeen) > clientIdleTTL {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *clientLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

// RateLimit allows each client IP rps requests per second with the given burst.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiters := newClientLimiters(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := util.GetClientIPAddress(r)

			if !limiters.allow(ip) {
				log.Logger.Debug("rate limit exceeded", zap.String("ip", ip))
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
