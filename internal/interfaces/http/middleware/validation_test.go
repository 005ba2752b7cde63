package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gmu1026/billing/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cycleRequest struct {
	BillingCycle string `json:"billing_cycle" binding:"required,cycle"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req cycleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func postCycle(t *testing.T, router *gin.Engine, cycle string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(gin.H{"billing_cycle": cycle})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/test", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCycleValidator(t *testing.T) {
	router := newValidationRouter()

	tests := []struct {
		cycle    string
		expected int
	}{
		{"202503", http.StatusOK},
		{"202512", http.StatusOK},
		{"202500", http.StatusBadRequest},
		{"202513", http.StatusBadRequest},
		{"2025-03", http.StatusBadRequest},
		{"25031", http.StatusBadRequest},
		{"", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.cycle, func(t *testing.T) {
			assert.Equal(t, tt.expected, postCycle(t, router, tt.cycle).Code)
		})
	}
}

func TestValidationErrorUsesJSONFieldName(t *testing.T) {
	router := newValidationRouter()

	w := postCycle(t, router, "bad")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "billing_cycle", resp.Error.Details[0].Field)
	assert.Equal(t, "Must be a YYYYMM billing month", resp.Error.Details[0].Message)
}

func TestFormatValidationErrorsCarriesRequestID(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req cycleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	payload, _ := json.Marshal(gin.H{"billing_cycle": "nope"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/test", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDKey, "req-42")
	router.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-42", resp.Error.RequestID)
}
