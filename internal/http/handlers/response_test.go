package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/pagination"
)

func Test_fail_500_LogsAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// capture logs from LoggerFrom(c)
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	// simulate RequestID + request-scoped logger
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-500")
		c.Set("logger", &logger)
		c.Next()
	})

	r.GET("/boom", func(c *gin.Context) {
		fail(c, http.StatusInternalServerError, "internal_error", "kaboom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.RequestID != "rid-500" || resp.Code != "internal_error" || resp.Message != "kaboom" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	// ensure something was logged at error level
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func TestRespondError_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	_, _, parseErr := pagination.Resolve(map[string]string{"start": "x", "end": "1"})

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", domain.ErrQuestionNotFound, http.StatusNotFound, ErrCodeQuestionNotFound},
		{"wrapped not found", fmt.Errorf("update: %w", domain.ErrQuestionNotFound), http.StatusNotFound, ErrCodeQuestionNotFound},
		{"parse", parseErr, http.StatusRequestedRangeNotSatisfiable, ErrCodeParseError},
		{"missing", pagination.ErrMissingParameters, http.StatusRequestedRangeNotSatisfiable, ErrCodeMissingParameters},
		{"invalid", pagination.ErrInvalidParameters, http.StatusRequestedRangeNotSatisfiable, ErrCodeInvalidParameters},
		{"body", &BodyError{Err: errors.New("EOF")}, http.StatusUnprocessableEntity, ErrCodeUnprocessable},
		{"empty id", domain.ErrEmptyQuestionID, http.StatusUnprocessableEntity, ErrCodeUnprocessable},
		{"origin", ErrOriginNotAllowed, http.StatusForbidden, ErrCodeForbidden},
		{"route", ErrRouteNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"method", ErrMethodNotAllowed, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { RespondError(c, tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != tc.status {
				t.Fatalf("status = %d; want %d", w.Code, tc.status)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("json: %v (%s)", err, w.Body.String())
			}
			if resp.Code != tc.code || resp.Message == "" {
				t.Fatalf("body = %+v; want code %q", resp, tc.code)
			}
		})
	}
}

func TestRespondError_UnknownDoesNotLeakMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) { RespondError(c, errors.New("secret detail")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Contains(w.Body.String(), "secret detail") {
		t.Fatalf("internal error message leaked: %s", w.Body.String())
	}
}

func TestBodyError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := error(&BodyError{Err: cause})
	if !errors.Is(err, cause) {
		t.Fatalf("BodyError should unwrap to cause")
	}
	if !strings.Contains(err.Error(), "unexpected EOF") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestAck_And_OK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ack", func(c *gin.Context) { ack(c, http.StatusCreated, "done") })
	r.GET("/ok", func(c *gin.Context) { ok(c, http.StatusOK, gin.H{"n": 1}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ack", nil))
	if w.Code != http.StatusCreated || w.Body.String() != "done" {
		t.Fatalf("ack = %d %q", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("ack content-type = %q", ct)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"n":1}` {
		t.Fatalf("ok = %d %q", w.Code, w.Body.String())
	}
}
