package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dosada05/court-finder/models"
)

const (
	cachePrefix       = "courts:cache"
	defaultCacheTTL   = 30 * time.Second
	maxCachedBodySize = 4 << 20
)

// ResponseCache keeps public GET responses in Redis. Every committed write
// bumps a generation counter, which retires all earlier entries at once.
type ResponseCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewResponseCache accepts a nil client; the cache then passes requests through.
func NewResponseCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *ResponseCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ResponseCache{rdb: rdb, ttl: ttl, logger: logger}
}

// captureWriter forwards the response and keeps a copy of it.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.buf.Len() <= maxCachedBodySize {
		cw.buf.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

func (c *ResponseCache) generationKey() string {
	return cachePrefix + ":gen"
}

func (c *ResponseCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func cacheKey(gen int64, r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%d:%x", cachePrefix, gen, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

// replayableHeader leaves out headers that outer middleware (CORS) sets on
// every response, so a hit never repeats them.
func replayableHeader(key string) bool {
	key = http.CanonicalHeaderKey(key)
	switch key {
	case "Content-Length", "X-Cache", "Vary":
		return false
	}
	return !strings.HasPrefix(key, "Access-Control-")
}

// cacheable excludes admin requests: a super admin sees admin passwords.
func cacheable(r *http.Request) bool {
	return r.Method == http.MethodGet &&
		r.Header.Get(HeaderAdminSecret) == "" &&
		r.Header.Get("Authorization") == ""
}

func (c *ResponseCache) Middleware(next http.Handler) http.Handler {
	if c == nil || c.rdb == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !cacheable(r) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		gen, err := c.generation(ctx)
		if err != nil {
			c.logger.WarnContext(ctx, "Response cache unavailable", slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}
		key := cacheKey(gen, r)

		if bs, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
			if status, hdr, body, ok := decodePayload(bs); ok {
				for k, vals := range hdr {
					if !replayableHeader(k) {
						continue
					}
					w.Header().Del(k)
					for _, v := range vals {
						w.Header().Add(k, v)
					}
				}
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(status)
				_, _ = w.Write(body)
				return
			}
		}

		w.Header().Set("X-Cache", "MISS")
		cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(cw, r)

		if cw.status != http.StatusOK || cw.buf.Len() > maxCachedBodySize {
			return
		}
		hdr := make(http.Header)
		for k, vals := range w.Header() {
			if replayableHeader(k) {
				hdr[k] = append([]string(nil), vals...)
			}
		}
		payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
		if err != nil {
			return
		}
		if err := c.rdb.Set(context.WithoutCancel(ctx), key, payload, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "Failed to store cached response", slog.Any("error", err))
		}
	})
}

// Publish invalidates every cached response.
func (c *ResponseCache) Publish(ctx context.Context, _ models.VenueEvent) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	if err := c.rdb.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("invalidate response cache: %w", err)
	}
	return nil
}
