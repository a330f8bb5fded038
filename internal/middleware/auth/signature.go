package auth

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body
const SignatureHeader = "X-Minka-Signature"

const rawBodyKey = "raw_body"

// SignatureConfig holds the configuration for webhook signature verification
type SignatureConfig struct {
	Secret string
	Logger *zap.Logger
	// MaxBodyBytes bounds the body read for verification
	MaxBodyBytes int64
}

// Sign returns the hex HMAC-SHA256 of body under secret
func Sign(secret string, body []byte) string {
	return hex.EncodeToString(computeMAC(secret, body))
}

func computeMAC(secret string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return mac.Sum(nil)
}

// SignatureMiddleware rejects requests whose body is not signed with the
// shared webhook secret. The verified body stays readable downstream.
func SignatureMiddleware(config SignatureConfig) echo.MiddlewareFunc {
	maxBytes := config.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			signature := strings.TrimPrefix(c.Request().Header.Get(SignatureHeader), "sha256=")
			if signature == "" {
				config.Logger.Warn("Missing webhook signature", zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Signature header required",
					"code":  "MISSING_SIGNATURE",
				})
			}

			body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBytes+1))
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error": "Failed to read request body",
					"code":  "INVALID_BODY",
				})
			}
			if int64(len(body)) > maxBytes {
				return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{
					"error": "Request body too large",
					"code":  "BODY_TOO_LARGE",
				})
			}

			got, err := hex.DecodeString(signature)
			if err != nil || !hmac.Equal(computeMAC(config.Secret, body), got) {
				config.Logger.Warn("Invalid webhook signature",
					zap.String("path", path),
					zap.String("remote_ip", c.RealIP()))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid signature",
					"code":  "INVALID_SIGNATURE",
				})
			}

			c.Request().Body = io.NopCloser(bytes.NewReader(body))
			c.Set(rawBodyKey, body)
			return next(c)
		}
	}
}

// RawBody returns the body verified by SignatureMiddleware
func RawBody(c echo.Context) []byte {
	body, _ := c.Get(rawBodyKey).([]byte)
	return body
}
