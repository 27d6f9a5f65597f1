package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewLoginRateLimiter(3, time.Minute)
	defer rl.Close()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"), "4. deneme reddedilmeli")

	// Farklı IP etkilenmez.
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestResetClearsCounter(t *testing.T) {
	rl := NewLoginRateLimiter(2, time.Minute)
	defer rl.Close()

	rl.Allow("1.2.3.4")
	rl.Allow("1.2.3.4")
	assert.False(t, rl.Allow("1.2.3.4"))

	rl.Reset("1.2.3.4")
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestWindowExpiry(t *testing.T) {
	rl := NewLoginRateLimiter(1, 50*time.Millisecond)
	defer rl.Close()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"), "pencere dolunca sayaç sıfırlanmalı")
}

func TestRetryAfterSeconds(t *testing.T) {
	rl := NewLoginRateLimiter(1, time.Minute)
	defer rl.Close()

	assert.Zero(t, rl.RetryAfterSeconds("1.2.3.4"), "bucket yokken 0 dönmeli")

	rl.Allow("1.2.3.4")
	retry := rl.RetryAfterSeconds("1.2.3.4")
	assert.Greater(t, retry, 0)
	assert.LessOrEqual(t, retry, 61)
}

func TestExtractIP(t *testing.T) {
	newReq := func(remoteAddr string, headers map[string]string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/api/account/login", nil)
		r.RemoteAddr = remoteAddr
		for k, v := range headers {
			r.Header.Set(k, v)
		}
		return r
	}

	// X-Forwarded-For öncelikli, ilk IP alınır.
	r := newReq("10.0.0.1:1234", map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.2"})
	assert.Equal(t, "1.2.3.4", ExtractIP(r))

	// X-Real-IP ikinci sırada.
	r = newReq("10.0.0.1:1234", map[string]string{"X-Real-IP": "5.6.7.8"})
	assert.Equal(t, "5.6.7.8", ExtractIP(r))

	// Header yoksa RemoteAddr'dan host ayrılır.
	r = newReq("9.9.9.9:5555", nil)
	require.Equal(t, "9.9.9.9", ExtractIP(r))
}
