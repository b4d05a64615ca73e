// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Buckets idle for longer than this get swept so the map does not grow with
// every address that ever touched the API.
const bucketStaleAfter = 3 * time.Minute

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterTier is a set of per-IP token buckets sharing one rate and burst.
type limiterTier struct {
	mtx     sync.Mutex
	buckets map[string]*ipBucket
	rate    rate.Limit
	burst   int
}

func newLimiterTier(r rate.Limit, burst int) *limiterTier {
	t := &limiterTier{
		buckets: make(map[string]*ipBucket),
		rate:    r,
		burst:   burst,
	}

	go t.sweep()

	return t
}

func (t *limiterTier) sweep() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		t.mtx.Lock()
		for ip, b := range t.buckets {
			if time.Since(b.lastSeen) > bucketStaleAfter {
				delete(t.buckets, ip)
			}
		}
		t.mtx.Unlock()
	}
}

func (t *limiterTier) limiterFor(ip string) *rate.Limiter {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	b, ok := t.buckets[ip]
	if !ok {
		b = &ipBucket{limiter: rate.NewLimiter(t.rate, t.burst)}
		t.buckets[ip] = b
	}
	b.lastSeen = time.Now()

	return b.limiter
}

func (t *limiterTier) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

var (
	generalTier = newLimiterTier(rate.Every(time.Second), 10)
	authTier    = newLimiterTier(rate.Every(time.Minute), 5)
	uploadTier  = newLimiterTier(rate.Every(time.Minute), 10)
)

// GeneralRateLimit caps each client IP at ten requests per second across the
// whole API.
func GeneralRateLimit() gin.HandlerFunc {
	return generalTier.middleware()
}

// AuthRateLimit keeps the credential endpoints to five attempts per minute
// per IP, which blunts password guessing without locking out a shared NAT.
func AuthRateLimit() gin.HandlerFunc {
	return authTier.middleware()
}

// UploadRateLimit allows ten work file uploads per minute per IP.
func UploadRateLimit() gin.HandlerFunc {
	return uploadTier.middleware()
}
