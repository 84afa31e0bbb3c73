package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/attcrm/backend/internal/domain/shared"
	"github.com/attcrm/backend/internal/interfaces/http/dto"
	"github.com/attcrm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newTestContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.RequestIDKey, "req-123")
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_Responses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "")
		h.Success(c, gin.H{"id": "prop-1"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"id":"prop-1"}}`, w.Body.String())
	})

	t.Run("created", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "")
		h.Created(c, []string{})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("no content", func(t *testing.T) {
		c, w := newTestContext(http.MethodDelete, "")
		h.NoContent(c)
		c.Writer.WriteHeaderNow()
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
		expectedMsg  string
	}{
		{
			name:         "not found",
			err:          shared.NewNotFoundError("Property not found."),
			expectedCode: http.StatusNotFound,
			expectedErr:  dto.ErrCodeNotFound,
			expectedMsg:  "Property not found.",
		},
		{
			name:         "validation",
			err:          shared.NewValidationError("Status is required."),
			expectedCode: http.StatusBadRequest,
			expectedErr:  dto.ErrCodeValidation,
			expectedMsg:  "Status is required.",
		},
		{
			name:         "wrapped domain error",
			err:          fmt.Errorf("add unit: %w", shared.NewValidationError("Unit number is required.")),
			expectedCode: http.StatusBadRequest,
			expectedErr:  dto.ErrCodeValidation,
			expectedMsg:  "Unit number is required.",
		},
		{
			name:         "unknown domain code",
			err:          shared.NewDomainError("SOMETHING_ELSE", "odd"),
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "SOMETHING_ELSE",
			expectedMsg:  "odd",
		},
		{
			name:         "infrastructure error is hidden",
			err:          errors.New("dial tcp: connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedErr:  dto.ErrCodeInternal,
			expectedMsg:  "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "")
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.expectedErr, resp.Code)
			assert.Equal(t, tt.expectedMsg, resp.Error)
			assert.Equal(t, "req-123", resp.RequestID)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "")
		h.HandleError(c, nil)
		assert.Empty(t, w.Body.String())
	})
}

type bindTarget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type validatedTarget struct {
	Name string `json:"name" binding:"required"`
}

func TestBaseHandler_BindJSON(t *testing.T) {
	h := &BaseHandler{}

	t.Run("valid body", func(t *testing.T) {
		c, _ := newTestContext(http.MethodPost, `{"name":"Palm","count":2}`)
		var target bindTarget
		require.True(t, h.BindJSON(c, &target))
		assert.Equal(t, bindTarget{Name: "Palm", Count: 2}, target)
	})

	t.Run("empty body decodes as empty object", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "")
		var target bindTarget
		assert.True(t, h.BindJSON(c, &target))
		assert.Equal(t, bindTarget{}, target)
		assert.Empty(t, w.Body.String())
	})

	tests := []struct {
		name        string
		body        string
		target      any
		expectedErr string
		expectedMsg string
	}{
		{
			name:        "malformed JSON",
			body:        `{"name":`,
			target:      &bindTarget{},
			expectedErr: dto.ErrCodeInvalidJSON,
			expectedMsg: "Invalid request body.",
		},
		{
			name:        "wrong field type",
			body:        `{"count":"two"}`,
			target:      &bindTarget{},
			expectedErr: dto.ErrCodeInvalidJSON,
			expectedMsg: "Invalid request body.",
		},
		{
			name:        "binding validation",
			body:        `{}`,
			target:      &validatedTarget{},
			expectedErr: dto.ErrCodeValidation,
			expectedMsg: "name: this field is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodPost, tt.body)
			assert.False(t, h.BindJSON(c, tt.target))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.expectedErr, resp.Code)
			assert.Equal(t, tt.expectedMsg, resp.Error)
		})
	}

	t.Run("body over the limit", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, `{"name":"`+strings.Repeat("x", 64)+`"}`)
		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 16)
		assert.False(t, h.BindJSON(c, &bindTarget{}))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, dto.ErrCodeBodyTooLarge, decodeError(t, w).Code)
	})
}

type uriTarget struct {
	ID string `uri:"id" binding:"required,max=8"`
}

func TestBaseHandler_BindURI(t *testing.T) {
	h := &BaseHandler{}

	c, _ := newTestContext(http.MethodGet, "")
	c.Params = gin.Params{{Key: "id", Value: "prop-1"}}
	var target uriTarget
	require.True(t, h.BindURI(c, &target))
	assert.Equal(t, "prop-1", target.ID)

	c, w := newTestContext(http.MethodGet, "")
	c.Params = gin.Params{{Key: "id", Value: strings.Repeat("a", 9)}}
	assert.False(t, h.BindURI(c, &uriTarget{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeError(t, w).Code)
}
