package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/court-finder/models"
)

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func newMiniRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte("[\n\t{}\n]"))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, "[\n\t{}\n]", string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0})
	assert.False(t, ok)
}

func TestCacheable(t *testing.T) {
	get := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
	assert.True(t, cacheable(get))

	post := httptest.NewRequest(http.MethodPost, "/api/venues", nil)
	assert.False(t, cacheable(post))

	admin := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
	admin.Header.Set(HeaderAdminSecret, "x")
	assert.False(t, cacheable(admin))

	bearer := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
	bearer.Header.Set("Authorization", "Bearer x")
	assert.False(t, cacheable(bearer))
}

func TestCacheKeyDependsOnGenerationAndQuery(t *testing.T) {
	a := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
	b := httptest.NewRequest(http.MethodGet, "/api/venues?sport=1", nil)

	assert.Equal(t, cacheKey(1, a), cacheKey(1, a))
	assert.NotEqual(t, cacheKey(1, a), cacheKey(2, a))
	assert.NotEqual(t, cacheKey(1, a), cacheKey(1, b))
}

func TestResponseCacheWithoutRedis(t *testing.T) {
	var calls int
	cache := NewResponseCache(nil, 0, testLogger())
	h := cache.Middleware(countingHandler(&calls))

	for range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/venues", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, cache.Publish(context.Background(), models.VenueEvent{Type: models.EventVenueCreated}))
}

func TestResponseCacheDegradesWhenRedisIsDown(t *testing.T) {
	var calls int
	cache := NewResponseCache(unreachableRedis(t), time.Minute, testLogger())
	h := cache.Middleware(countingHandler(&calls))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/venues", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
	assert.Equal(t, 1, calls)
	assert.Error(t, cache.Publish(context.Background(), models.VenueEvent{Type: models.EventVenueCreated}))
}

func TestResponseCacheHitAndInvalidation(t *testing.T) {
	var calls int
	body := `[{"id":1}]`
	listing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	cache := NewResponseCache(newMiniRedis(t), time.Minute, testLogger())
	h := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	})(cache.Middleware(listing))

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
		req.Header.Set("Origin", "https://map.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := get()
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, []string{"*"}, first.Header().Values("Access-Control-Allow-Origin"))
	assert.Equal(t, body, first.Body.String())

	second := get()
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, []string{"*"}, second.Header().Values("Access-Control-Allow-Origin"))
	assert.Len(t, second.Header().Values("Vary"), len(first.Header().Values("Vary")))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.Equal(t, body, second.Body.String())
	assert.Equal(t, 1, calls)

	body = `[{"id":1},{"id":2}]`
	require.NoError(t, cache.Publish(context.Background(), models.VenueEvent{Type: models.EventVenueCreated}))

	third := get()
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Equal(t, body, third.Body.String())
	assert.Equal(t, 2, calls)
}

func TestResponseCacheSkipsAdminRequests(t *testing.T) {
	var calls int
	cache := NewResponseCache(newMiniRedis(t), time.Minute, testLogger())
	h := cache.Middleware(countingHandler(&calls))

	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
		req.Header.Set(HeaderAdminSecret, "super")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, calls)
}

func TestReplayableHeader(t *testing.T) {
	assert.True(t, replayableHeader("Content-Type"))
	assert.False(t, replayableHeader("access-control-allow-origin"))
	assert.False(t, replayableHeader("Vary"))
	assert.False(t, replayableHeader("Content-Length"))
	assert.False(t, replayableHeader("X-Cache"))
}
