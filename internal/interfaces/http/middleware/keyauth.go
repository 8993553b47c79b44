package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jens252/billbee-bricklink/internal/interfaces/http/dto"
)

// KeyParam is the query parameter carrying the request signature.
const KeyParam = "Key"

// keyTimestampDigits is how many leading digits of the unix time enter the signature.
// Seven digits make a key valid for a 1000 second window.
const keyTimestampDigits = 7

// KeyAuthConfig configures KeyAuth
type KeyAuthConfig struct {
	Secret string
	// Now defaults to time.Now
	Now func() time.Time
}

// KeyAuth rejects requests whose Key parameter does not match the signature derived
// from the shared secret and the current time window.
func KeyAuth(cfg KeyAuthConfig) gin.HandlerFunc {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		key := c.Query(KeyParam)
		expected := SignKey(cfg.Secret, now())
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"Invalid or missing key",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

// SignKey computes the Key value for secret at time t: the HMAC-SHA256 of the
// secret keyed by the leading digits of the unix timestamp, base64 encoded with
// '=', '/' and '+' removed.
func SignKey(secret string, t time.Time) string {
	ts := strconv.FormatInt(t.Unix(), 10)
	if len(ts) > keyTimestampDigits {
		ts = ts[:keyTimestampDigits]
	}

	mac := hmac.New(sha256.New, []byte(ts))
	mac.Write([]byte(secret))
	encoded := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return strings.NewReplacer("=", "", "/", "", "+", "").Replace(encoded)
}
