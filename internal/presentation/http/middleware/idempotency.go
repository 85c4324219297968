package middleware

import (
	"bytes"
	"context"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restropos-api/internal/storage"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// idempotencyRecord is one cached response keyed by client idempotency key.
type idempotencyRecord struct {
	Endpoint     string    `json:"endpoint"`
	ResponseCode int       `json:"responseCode"`
	ResponseBody string    `json:"responseBody"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// IdempotencyGuard replays cached responses for repeated idempotency keys so
// a retried checkout cannot commit twice.
type IdempotencyGuard struct {
	store storage.Store
	mu    sync.Mutex
}

// NewIdempotencyGuard creates a new idempotency guard
func NewIdempotencyGuard(store storage.Store) *IdempotencyGuard {
	return &IdempotencyGuard{store: store}
}

func (g *IdempotencyGuard) load(ctx context.Context) (map[string]idempotencyRecord, error) {
	records := map[string]idempotencyRecord{}
	if _, err := g.store.Get(ctx, storage.KeyIdempotent, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (g *IdempotencyGuard) lookup(ctx context.Context, key string) (*idempotencyRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	records, err := g.load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := records[key]
	if !ok || time.Now().After(rec.ExpiresAt) {
		return nil, nil
	}
	return &rec, nil
}

// remember stores the response under key, pruning expired records as it goes.
func (g *IdempotencyGuard) remember(ctx context.Context, key string, rec idempotencyRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	records, err := g.load(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for k, old := range records {
		if now.After(old.ExpiresAt) {
			delete(records, k)
		}
	}
	records[key] = rec

	return g.store.Set(ctx, storage.KeyIdempotent, records)
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware caches POST responses per idempotency key. Requests without a
// key proceed normally. Only successful responses are cached, so a failed
// checkout can be retried with the same key.
func (g *IdempotencyGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		existing, err := g.lookup(c.Request.Context(), key)
		if err != nil {
			log.Printf("idempotency: lookup failed: %v", err)
			c.Next()
			return
		}
		if existing != nil {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			rec := idempotencyRecord{
				Endpoint:     c.Request.Method + " " + c.FullPath(),
				ResponseCode: c.Writer.Status(),
				ResponseBody: blw.body.String(),
				ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
			}
			if err := g.remember(c.Request.Context(), key, rec); err != nil {
				log.Printf("idempotency: store failed: %v", err)
			}
		}
	}
}
