package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/Gangulr/finace/internal/errors"
)

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperrors.WithMessage(apperrors.ErrPastDate, "Date spent cannot be in the past."))
	})
	r.GET("/wrapped", func(c *gin.Context) {
		_ = c.Error(apperrors.Wrap(apperrors.ErrStoreUnavailable, errors.New("dial tcp: refused")))
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	r.GET("/ok", okHandler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app", http.NoBody))
	assertErrorCode(t, rec, http.StatusBadRequest, "PAST_DATE")
	assert.Equal(t, "Date spent cannot be in the past.", parseBody(t, rec)["message"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wrapped", http.NoBody))
	assertErrorCode(t, rec, http.StatusInternalServerError, "STORE_UNAVAILABLE")
	assert.NotContains(t, rec.Body.String(), "dial tcp")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plain", http.NoBody))
	assertErrorCode(t, rec, http.StatusInternalServerError, "INTERNAL_ERROR")
	assert.Equal(t, "Internal Server Error", parseBody(t, rec)["message"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", http.NoBody))
	assert.Equal(t, http.StatusOK, rec.Code)
}
