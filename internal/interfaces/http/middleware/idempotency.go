package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"charity-pay.backend/pkg/redis"
)

const (
	// LockDuration is how long the in-flight marker is held
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a delivered response is kept for replays
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

func storageKey(signature string) string {
	digest := sha256.Sum256([]byte(signature))
	return "webhook:delivery:" + hex.EncodeToString(digest[:])
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// WebhookReplayMiddleware suppresses duplicate provider deliveries. The
// signature header identifies a delivery: the same secret over the same raw
// bytes always yields the same signature, so a byte-identical retry replays
// the cached response instead of re-running reconciliation. Reconciliation
// itself stays idempotent; this only short-circuits the common retry case.
func WebhookReplayMiddleware(signatureHeader string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sig := c.GetHeader(signatureHeader)
		if sig == "" {
			// No signature: the handler will reject it anyway
			c.Next()
			return
		}

		key := storageKey(sig)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, key)
		if err == nil {
			if val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"code":    "ERR_DELIVERY_IN_PROGRESS",
					"message": "delivery already being processed",
				})
				return
			}
			c.Header("Content-Type", "application/json")
			c.Header("X-Webhook-Replay", "true")
			c.String(http.StatusOK, val)
			c.Abort()
			return
		}
		if err.Error() != "redis: nil" {
			// Redis unavailable: fall through, reconciliation is idempotent
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, key, processingMarker, LockDuration)
		if err != nil || !acquired {
			c.Next()
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = redisSet(ctx, key, w.body.String(), RetentionDuration)
		} else {
			// Let the provider retry
			_ = redisDel(ctx, key)
		}
	}
}
