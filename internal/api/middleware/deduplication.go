package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pantry-chef/internal/pkg/common"
)

// sweepEvery bounds how often the fingerprint table is swept for stale entries.
const sweepEvery = time.Minute

// Deduplicator rejects an identical POST body from the same client arriving within the
// window, which is what a double-tapped submit button produces.
type Deduplicator struct {
	window time.Duration

	mu        sync.Mutex
	seen      map[string]time.Time
	lastSweep time.Time
}

func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = time.Second
	}
	return &Deduplicator{
		window:    window,
		seen:      make(map[string]time.Time),
		lastSweep: time.Now(),
	}
}

// Deduplication returns the middleware for a fresh Deduplicator.
func Deduplication(window time.Duration) gin.HandlerFunc {
	return NewDeduplicator(window).Handler()
}

func (d *Deduplicator) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || c.Request.Body == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				AbortWithError(c, common.ErrBodyTooLarge)
				return
			}
			common.LogWarn("failed to read request body", zap.Error(err))
			AbortWithError(c, common.ErrInvalidRequest)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		hash := sha256.Sum256(body)
		fingerprint := c.ClientIP() + ":" + c.Request.URL.Path + ":" + hex.EncodeToString(hash[:])

		if d.duplicate(fingerprint, time.Now()) {
			common.LogInfo("duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			AbortWithError(c, common.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// duplicate records fingerprint and reports whether it was already seen within the window.
func (d *Deduplicator) duplicate(fingerprint string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if now.Sub(d.lastSweep) > sweepEvery {
		for k, t := range d.seen {
			if now.Sub(t) > d.window {
				delete(d.seen, k)
			}
		}
		d.lastSweep = now
	}

	if last, ok := d.seen[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.seen[fingerprint] = now
	return false
}
