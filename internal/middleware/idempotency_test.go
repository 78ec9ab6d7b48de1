package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func newIdempotentRouter(t *testing.T, calls *int) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	r := gin.New()
	r.POST("/leave",
		func(c *gin.Context) { c.Set("user_id", "u1"); c.Next() },
		Idempotency(rdb),
		func(c *gin.Context) {
			*calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)
	return r, mock
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	return postBodyWithKey(r, key, "")
}

func postBodyWithKey(r *gin.Engine, key, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leave", strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	cacheKey := "idemp:/leave:u1:abc"
	lockKey := cacheKey + ":lock"

	t.Run("first call runs handler and caches response", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		payload, _ := json.Marshal(cachedResponse{
			Status:      http.StatusCreated,
			Body:        `{"ok":true}`,
			Fingerprint: requestFingerprint(nil),
		})
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, string(payload), idempotencyCacheTTL).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := postWithKey(r, "abc")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat replays cached response", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		payload, _ := json.Marshal(cachedResponse{
			Status:      http.StatusCreated,
			Body:        `{"ok":true}`,
			Fingerprint: requestFingerprint(nil),
		})
		mock.ExpectGet(cacheKey).SetVal(string(payload))

		w := postWithKey(r, "abc")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same key with a different body is rejected", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		first := `{"start_date":"2024-03-01","end_date":"2024-03-03"}`
		payload, _ := json.Marshal(cachedResponse{
			Status:      http.StatusCreated,
			Body:        `{"ok":true}`,
			Fingerprint: requestFingerprint([]byte(first)),
		})
		mock.ExpectGet(cacheKey).SetVal(string(payload))

		w := postBodyWithKey(r, "abc", `{"start_date":"2024-04-01","end_date":"2024-04-03"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "IDEMPOTENCY_KEY_REUSED")
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same key with the same body replays", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		body := `{"start_date":"2024-03-01","end_date":"2024-03-03"}`
		payload, _ := json.Marshal(cachedResponse{
			Status:      http.StatusCreated,
			Body:        `{"ok":true}`,
			Fingerprint: requestFingerprint([]byte(body)),
		})
		mock.ExpectGet(cacheKey).SetVal(string(payload))

		w := postBodyWithKey(r, "abc", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, 0, calls)
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(false)

		w := postWithKey(r, "abc")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.Equal(t, 0, calls)
	})

	t.Run("redis outage fails open", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		mock.ExpectGet(cacheKey).SetErr(errors.New("dial tcp: refused"))

		w := postWithKey(r, "abc")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("no header skips redis", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		w := postWithKey(r, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
