package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func perform(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return w, body
}

func TestSuccess(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Success(c, gin.H{"id": "abc"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", w.Code)
	}
	if body.Code != 0 || body.Message != "ok" {
		t.Errorf("body = %+v, expected code 0 message ok", body)
	}
	if body.Data == nil {
		t.Error("data should be present")
	}
}

func TestCreated(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Created(c, gin.H{"id": "abc"})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, expected 201", w.Code)
	}
	if body.Code != 0 || body.Message != "created" {
		t.Errorf("body = %+v, expected code 0 message created", body)
	}
}

func TestError_AppError(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
	}{
		{"bad request", NewBadRequest("invalid input"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("invalid credentials"), http.StatusUnauthorized},
		{"forbidden", NewForbidden("insufficient role"), http.StatusForbidden},
		{"not found", NewNotFound("group not found"), http.StatusNotFound},
		{"conflict", NewConflict("already a member"), http.StatusConflict},
		{"server error", NewServerError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := perform(t, func(c *gin.Context) {
				Error(c, tt.err)
			})

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, expected %d", w.Code, tt.wantStatus)
			}
			if body.Code != tt.wantStatus {
				t.Errorf("body code = %d, expected %d", body.Code, tt.wantStatus)
			}
			if body.Message != tt.err.Message {
				t.Errorf("message = %q, expected %q", body.Message, tt.err.Message)
			}
		})
	}
}

func TestError_WrappedAppError(t *testing.T) {
	wrapped := errorWrap{inner: NewNotFound("todo not found")}

	w, body := perform(t, func(c *gin.Context) {
		Error(c, wrapped)
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", w.Code)
	}
	if body.Message != "todo not found" {
		t.Errorf("message = %q", body.Message)
	}
}

type errorWrap struct{ inner error }

func (e errorWrap) Error() string { return "wrapped: " + e.inner.Error() }
func (e errorWrap) Unwrap() error { return e.inner }

func TestError_UnknownErrorIsOpaque(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Error(c, errors.New("sql: connection refused at 10.1.2.3"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", w.Code)
	}
	if body.Message != "internal server error" {
		t.Errorf("message = %q, internal details must not leak", body.Message)
	}
}
