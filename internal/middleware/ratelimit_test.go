package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-seat-reservation/internal/config"
)

func TestAsInt64(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
	}{
		{int64(7), 7},
		{int32(7), 7},
		{7, 7},
		{7.9, 7},
		{"42", 42},
		{"nope", 0},
		{nil, 0},
		{true, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, asInt64(tc.in), "input %#v", tc.in)
	}
}

func TestNewTokenBucketPassThroughWithoutRedis(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/reserve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))
	assert.True(t, called)
}
