package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-leavehub/internal/shared/response"
)

const (
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 6 * time.Hour
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency meng-cache respons POST yang membawa header Idempotency-Key.
// Request ulangan dengan key yang sama mendapat respons tersimpan; request
// yang masih berjalan ditolak 409 lewat lock SetNX.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.GetString("user_id"), idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached cachedResponse
			if json.Unmarshal(val, &cached) == nil {
				c.Data(cached.Status, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
		}

		// Expiry pendek supaya lock hilang sendiri kalau proses mati di tengah.
		acquired, _ := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if !acquired {
			response.Error(c, http.StatusConflict, "PROCESSING",
				"Request with this idempotency key is still being processed", nil)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		// Hanya respons sukses yang di-cache: kegagalan boleh dicoba ulang
		// dengan key yang sama.
		status := writer.Status()
		if status >= 200 && status < 300 {
			payload, err := json.Marshal(cachedResponse{
				Status:      status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			})
			if err == nil {
				rdb.Set(ctx, cacheKey, payload, idempotencyCacheTTL)
			}
		}
		rdb.Del(ctx, lockKey)
	}
}
