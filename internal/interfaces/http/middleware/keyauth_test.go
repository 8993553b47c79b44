package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSignKey(t *testing.T) {
	at := time.Unix(1700000123, 0)

	key := SignKey("secret", at)
	assert.NotEmpty(t, key)
	assert.NotContains(t, key, "=")
	assert.NotContains(t, key, "/")
	assert.NotContains(t, key, "+")

	// Same 7-digit window
	assert.Equal(t, key, SignKey("secret", time.Unix(1700000999, 0)))
	// Next window
	assert.NotEqual(t, key, SignKey("secret", time.Unix(1700001000, 0)))
	// Different secret
	assert.NotEqual(t, key, SignKey("other", at))
}

func TestKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Unix(1700000123, 0)
	valid := SignKey("shared", now)

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{name: "valid key", key: valid, wantStatus: http.StatusOK},
		{name: "missing key", key: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong key", key: "nope", wantStatus: http.StatusUnauthorized},
		{name: "key of previous window", key: SignKey("shared", now.Add(-1000*time.Second)), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(KeyAuth(KeyAuthConfig{Secret: "shared", Now: func() time.Time { return now }}))
			router.GET("/shop", func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			})

			target := "/shop"
			if tt.key != "" {
				target += "?" + url.Values{KeyParam: {tt.key}}.Encode()
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
			}
		})
	}
}
