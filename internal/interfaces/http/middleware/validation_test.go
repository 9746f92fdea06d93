package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationTestRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	router := gin.New()
	router.POST("/signup", func(c *gin.Context) {
		var req validationTestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("reports each failed field with its json name", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/signup",
			strings.NewReader(`{"email":"not-an-email","password":"abc"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "VALIDATION_FAILED")
		assert.Contains(t, body, `"email"`)
		assert.Contains(t, body, "Invalid email format")
		assert.Contains(t, body, `"password"`)
		assert.Contains(t, body, "Must be at least 6 characters")
	})

	t.Run("numeric bounds read without the characters suffix", func(t *testing.T) {
		type pricedRequest struct {
			Price int64 `json:"price" binding:"required,min=1"`
		}
		r := gin.New()
		r.POST("/cars", func(c *gin.Context) {
			var req pricedRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				HandleValidationError(c, err)
				return
			}
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cars", strings.NewReader(`{"price":-5}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"price"`)
		assert.Contains(t, body, "Must be at least 1")
		assert.NotContains(t, body, "characters")
	})

	t.Run("valid payload passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/signup",
			strings.NewReader(`{"email":"jane@example.com","password":"secret123"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
