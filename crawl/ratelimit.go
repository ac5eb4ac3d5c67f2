package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/folio"
	"golang.org/x/time/rate"
)

var _ folio.DomainLimiter = (*HostLimiter)(nil)

// RateLimits configures import politeness. RPS and Burst apply to every
// legacy blog host unless Hosts names an override for it. A non-positive
// rate leaves a host unlimited.
type RateLimits struct {
	RPS   float64
	Burst int
	Hosts map[string]float64
}

// HostLimiter keeps one token bucket per legacy blog host, so an import
// reading pages from a mirror and the original site throttles each
// separately.
type HostLimiter struct {
	limits RateLimits

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter returns a limiter enforcing limits.
func NewHostLimiter(limits RateLimits) *HostLimiter {
	if limits.Burst < 1 {
		limits.Burst = 1
	}
	hosts := make(map[string]float64, len(limits.Hosts))
	for h, rps := range limits.Hosts {
		hosts[strings.ToLower(h)] = rps
	}
	limits.Hosts = hosts
	return &HostLimiter{limits: limits, buckets: make(map[string]*rate.Limiter)}
}

// Wait blocks until a page may be requested from host. Hosts are matched
// case-insensitively, with any port ignored.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.bucket(host).Wait(ctx)
}

func (l *HostLimiter) bucket(host string) *rate.Limiter {
	host = strings.ToLower(host)
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[host]; ok {
		return b
	}
	rps, ok := l.limits.Hosts[host]
	if !ok {
		rps = l.limits.RPS
	}
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	b := rate.NewLimiter(limit, l.limits.Burst)
	l.buckets[host] = b
	return b
}
