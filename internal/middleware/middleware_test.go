package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Logging and metrics observe requests but must never touch what the
// handler wrote. The wrapped router's response has to match the bare
// router's byte for byte.
func TestObservabilityMiddlewarePassesResponsesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	okHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"data":      gin.H{"id": "42", "title": "write report"},
			"message":   "Task retrieved successfully",
			"timestamp": "2026-08-29T00:00:00Z",
		})
	}
	failHandler := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Task not found",
			},
			"timestamp": "2026-08-29T00:00:00Z",
		})
	}

	bare := gin.New()
	bare.GET("/tasks/:id", okHandler)
	bare.GET("/missing/:id", failHandler)

	wrapped := gin.New()
	wrapped.Use(RequestLogger(quietLogger()))
	wrapped.Use(Metrics())
	wrapped.GET("/tasks/:id", okHandler)
	wrapped.GET("/missing/:id", failHandler)

	for _, path := range []string{"/tasks/42", "/missing/42"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)

		bareRec := httptest.NewRecorder()
		bare.ServeHTTP(bareRec, req)

		wrappedRec := httptest.NewRecorder()
		wrapped.ServeHTTP(wrappedRec, req)

		require.Equal(t, bareRec.Code, wrappedRec.Code)
		require.Equal(t, bareRec.Header().Get("Content-Type"), wrappedRec.Header().Get("Content-Type"))
		require.Equal(t, bareRec.Body.Bytes(), wrappedRec.Body.Bytes())
	}
}
