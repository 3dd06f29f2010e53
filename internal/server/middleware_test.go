package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/saqif1/AI-Technical-Analysis/internal/common"
)

func newTestServer() *Server {
	return &Server{logger: common.NewSilentLogger()}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func mustNotReach(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not have been reached")
	})
}

func TestCorrelationIDMiddleware(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name   string
		header string
		value  string
		wantID string // empty means "any non-empty generated ID"
	}{
		{name: "generates when absent"},
		{name: "adopts X-Request-ID", header: "X-Request-ID", value: "req-1", wantID: "req-1"},
		{name: "adopts X-Correlation-ID", header: "X-Correlation-ID", value: "corr-1", wantID: "corr-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inContext string
			handler := s.correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inContext, _ = r.Context().Value(correlationIDKey).(string)
			}))

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			echoed := w.Header().Get("X-Correlation-ID")
			if echoed == "" || inContext == "" {
				t.Fatal("expected correlation ID in header and context")
			}
			if echoed != inContext {
				t.Errorf("header %q and context %q disagree", echoed, inContext)
			}
			if tt.wantID != "" && echoed != tt.wantID {
				t.Errorf("expected correlation ID %q, got %q", tt.wantID, echoed)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	s := newTestServer()

	t.Run("sets headers", func(t *testing.T) {
		handler := s.corsMiddleware(okHandler())
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("expected wildcard CORS origin")
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "POST") {
			t.Error("expected POST in allowed methods")
		}
	})

	t.Run("short-circuits preflight", func(t *testing.T) {
		handler := s.corsMiddleware(mustNotReach(t))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/", nil))

		if w.Code != http.StatusOK {
			t.Errorf("expected 200 for preflight, got %d", w.Code)
		}
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	s := newTestServer()

	t.Run("converts panic to 500", func(t *testing.T) {
		handler := s.recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500 after panic, got %d", w.Code)
		}
	})

	t.Run("passes through", func(t *testing.T) {
		handler := s.recoveryMiddleware(okHandler())
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})
}

func TestLoggingMiddleware_PreservesResponse(t *testing.T) {
	s := newTestServer()

	handler := s.loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/", nil))

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201 through logging middleware, got %d", w.Code)
	}
	if w.Body.String() != "created" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestResponseWriter_CountsBytes(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

	n, err := rw.Write([]byte("hello world"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != 11 || rw.bytesWritten != 11 {
		t.Errorf("expected 11 bytes counted, got n=%d bytesWritten=%d", n, rw.bytesWritten)
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	s := newTestServer()

	handler := s.securityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range want {
		if got := w.Header().Get(header); got != value {
			t.Errorf("expected %s=%q, got %q", header, value, got)
		}
	}
	if !strings.Contains(w.Header().Get("Content-Security-Policy"), "default-src") {
		t.Error("expected CSP with default-src directive")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("expected status to pass through, got %d", w.Code)
	}
}

func TestMaxBodySizeMiddleware(t *testing.T) {
	s := newTestServer()

	t.Run("small body readable", func(t *testing.T) {
		handler := s.maxBodySizeMiddleware(1024)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}
			if string(body) != "ticker=SPY" {
				t.Errorf("unexpected body %q", body)
			}
		}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/", strings.NewReader("ticker=SPY")))
	})

	t.Run("oversized body errors on read", func(t *testing.T) {
		handler := s.maxBodySizeMiddleware(10)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := io.ReadAll(r.Body); err == nil {
				t.Error("expected error reading oversized body")
			}
		}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 100))))
	})

	t.Run("GET unaffected", func(t *testing.T) {
		handler := s.maxBodySizeMiddleware(10)(okHandler())
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		if w.Code != http.StatusOK {
			t.Errorf("expected 200 for GET, got %d", w.Code)
		}
	})
}

func TestCSRFMiddleware_SafeMethods(t *testing.T) {
	s := newTestServer()

	for _, method := range []string{"GET", "HEAD", "OPTIONS"} {
		t.Run(method, func(t *testing.T) {
			handler := s.csrfMiddleware(okHandler())
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(method, "/", nil))
			if w.Code != http.StatusOK {
				t.Errorf("expected 200 for %s without token, got %d", method, w.Code)
			}
		})
	}
}

func TestCSRFMiddleware_UnsafeMethods(t *testing.T) {
	s := newTestServer()
	const token = "csrf-token-value"

	tests := []struct {
		name       string
		cookie     string
		header     string
		form       string
		path       string
		wantStatus int
	}{
		{name: "no token rejected", path: "/analyze", wantStatus: http.StatusForbidden},
		{name: "header token accepted", cookie: token, header: token, path: "/analyze", wantStatus: http.StatusOK},
		{name: "form token accepted", cookie: token, form: token, path: "/analyze", wantStatus: http.StatusOK},
		{name: "mismatched header rejected", cookie: token, header: "other", path: "/analyze", wantStatus: http.StatusForbidden},
		{name: "mismatched form rejected", cookie: token, form: "other", path: "/analyze", wantStatus: http.StatusForbidden},
		{name: "api routes skipped", path: "/api/health", wantStatus: http.StatusOK},
		{name: "mcp route skipped", path: "/mcp", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var next http.Handler
			if tt.wantStatus == http.StatusOK {
				next = okHandler()
			} else {
				next = mustNotReach(t)
			}
			handler := s.csrfMiddleware(next)

			var body io.Reader
			if tt.form != "" {
				body = strings.NewReader(url.Values{"_csrf": {tt.form}}.Encode())
			}
			req := httptest.NewRequest("POST", tt.path, body)
			if tt.form != "" {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "_csrf", Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("X-CSRF-Token", tt.header)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestCSRFMiddleware_SetsCookieOnGET(t *testing.T) {
	s := newTestServer()

	handler := s.csrfMiddleware(okHandler())
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	for _, c := range w.Result().Cookies() {
		if c.Name == "_csrf" {
			if c.Value == "" {
				t.Error("CSRF cookie value should not be empty")
			}
			if c.HttpOnly {
				t.Error("CSRF cookie must be readable by the form template path")
			}
			return
		}
	}
	t.Error("expected _csrf cookie on GET response")
}
