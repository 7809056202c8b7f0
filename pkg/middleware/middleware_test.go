package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"tastepalette/internal/models/db_models"
	mem "tastepalette/pkg/memcache"
	"tastepalette/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct {
	user *db_models.User
	err  error
}

func (f *fakeAuth) Authenticate(ctx context.Context, token string) (*db_models.User, *utils.SessionClaims, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	if token != "good" {
		return nil, nil, utils.ErrUnauthorized
	}
	claims := &utils.SessionClaims{}
	claims.ID = "session-1"
	return f.user, claims, nil
}

func TestSessionAuthMiddleware(t *testing.T) {
	user := &db_models.User{Email: "ana@example.com"}
	user.ID = uuid.New()

	r := gin.New()
	r.Use(SessionAuthMiddleware(&fakeAuth{user: user}))
	r.GET("/me", func(c *gin.Context) {
		if CurrentUser(c) != user || CurrentUserID(c) != user.ID || CurrentSessionID(c) != "session-1" {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	cases := map[string]struct {
		header string
		want   int
	}{
		"missing header": {"", http.StatusUnauthorized},
		"not bearer":     {"Basic abc", http.StatusUnauthorized},
		"bad token":      {"Bearer nope", http.StatusUnauthorized},
		"good token":     {"Bearer good", http.StatusOK},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestSessionAuthMiddlewareStoreFailure(t *testing.T) {
	r := gin.New()
	r.Use(SessionAuthMiddleware(&fakeAuth{err: utils.ErrDatabaseError}))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(mem.NewWindowCounter(), 2, time.Minute))
	r.POST("/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("other clients must not be limited, got %d", w.Code)
	}
}

type brokenStore struct{}

func (brokenStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("connection refused")
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(brokenStore{}, 1, time.Minute))
	r.POST("/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected store errors to let requests through, got %d", w.Code)
		}
	}
}

type fakeRedis struct {
	counts     map[string]int64
	expiries   map[string]time.Duration
	expireErrs int
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeRedis) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	if f.expireErrs > 0 {
		f.expireErrs--
		return redis.NewBoolResult(false, errors.New("i/o timeout"))
	}
	f.expiries[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) TTL(ctx context.Context, key string) *redis.DurationCmd {
	if d, ok := f.expiries[key]; ok {
		return redis.NewDurationResult(d, nil)
	}
	return redis.NewDurationResult(-1, nil)
}

func TestRedisStoreReappliesLostExpiry(t *testing.T) {
	fake := &fakeRedis{counts: map[string]int64{}, expiries: map[string]time.Duration{}, expireErrs: 1}
	store := &redisRateLimitStore{client: fake}
	ctx := context.Background()

	if _, _, err := store.Incr(ctx, "k", time.Minute); err == nil {
		t.Fatalf("expected the failed expire to surface")
	}
	if _, ok := fake.expiries["k"]; ok {
		t.Fatalf("expiry should not be set yet")
	}

	count, ttl, err := store.Incr(ctx, "k", time.Minute)
	if err != nil {
		t.Fatalf("incr: %v", err)
	}
	if count != 2 || ttl != time.Minute || fake.expiries["k"] != time.Minute {
		t.Fatalf("expected the window to be applied on the next hit, got count=%d ttl=%s expiries=%v", count, ttl, fake.expiries)
	}

	if _, ttl, _ := store.Incr(ctx, "k", time.Hour); ttl != time.Minute {
		t.Fatalf("an existing expiry must be kept, got %s", ttl)
	}
}

func TestTraceIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(TraceIDHeader, incoming)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(TraceIDHeader) != incoming || w.Body.String() != incoming {
		t.Fatalf("expected incoming trace id to be reused")
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(TraceIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if _, err := uuid.Parse(w.Header().Get(TraceIDHeader)); err != nil {
		t.Fatalf("invalid incoming trace id should be replaced, got %q", w.Header().Get(TraceIDHeader))
	}
}
