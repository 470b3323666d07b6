package http

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationType       = "bearer"
	authorizationPayloadKey = "authorization_payload"
)

func AuthMiddleware(tokenService ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeaderKey)
		fields := strings.Fields(header)
		if len(fields) != 2 || strings.ToLower(fields[0]) != authorizationType {
			newErrorResponse(c, http.StatusUnauthorized, "Missing or malformed authorization header")
			return
		}

		payload, err := tokenService.VerifyToken(fields[1])
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(authorizationPayloadKey, payload)
		c.Next()
	}
}

// RoleMiddleware must run after AuthMiddleware.
func RoleMiddleware(role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := getAuthPayload(c, authorizationPayloadKey)
		if !ok {
			newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if payload.Role != role {
			newErrorResponse(c, http.StatusForbidden, "Access denied")
			return
		}
		c.Next()
	}
}

func getAuthPayload(c *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	return payload, ok
}

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP.
type ipRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      rate.Limit
	burst     int
	lastSweep time.Time
}

func newIPRateLimiter(requestsPerMinute int) *ipRateLimiter {
	return &ipRateLimiter{
		visitors:  make(map[string]*visitor),
		rate:      rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:     requestsPerMinute,
		lastSweep: time.Now(),
	}
}

func (rl *ipRateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > limiterIdleTTL {
		for key, v := range rl.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(rl.visitors, key)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func RateLimit(requestsPerMinute int, logger ports.LoggerPort) gin.HandlerFunc {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 20
	}
	limiter := newIPRateLimiter(requestsPerMinute)

	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			logger.Warn("Rate limit exceeded", map[string]interface{}{
				"ip":   c.ClientIP(),
				"path": c.FullPath(),
			})
			c.Header("Retry-After", strconv.Itoa(int(time.Minute.Seconds())/requestsPerMinute+1))
			newErrorResponse(c, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}
		c.Next()
	}
}
