package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func throttledRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/bookings/", handler, func(ctx *gin.Context) {
		ctx.Status(http.StatusCreated)
	})
	return router
}

func send(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings/", nil)
	router.ServeHTTP(w, req)
	return w
}

// httptest.NewRequest always uses 192.0.2.1 as the remote address.
const key = throttleKeyPrefix + "192.0.2.1"

func TestBookingThrottleFirstHitSetsExpiry(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Hour).SetVal(true)

	w := send(throttledRouter(BookingThrottle(rdb, 2, time.Hour)))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingThrottleRejectsOverLimit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectIncr(key).SetVal(3)

	w := send(throttledRouter(BookingThrottle(rdb, 2, time.Hour)))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Request was throttled.", gjson.Get(w.Body.String(), "error").String())
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingThrottleFailsOpen(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectIncr(key).SetErr(errors.New("connection refused"))

	w := send(throttledRouter(BookingThrottle(rdb, 2, time.Hour)))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingThrottleDisabledWithoutClient(t *testing.T) {
	w := send(throttledRouter(BookingThrottle(nil, 2, time.Hour)))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSecureHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SecureHeaders)
	router.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
