package middleware

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMaxUploadSize(t *testing.T) {
	var test_bodies = []struct {
		Body  string
		Valid bool
	}{
		{"small", true},
		{strings.Repeat("a", 16), true},
		{strings.Repeat("a", 17), false},
	}

	for _, tb := range test_bodies {
		var read_err error
		h := MaxUploadSize(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, read_err = io.ReadAll(r.Body)
		}))

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tb.Body))
		h.ServeHTTP(httptest.NewRecorder(), r)

		if tb.Valid && read_err != nil {
			t.Fatalf("expected %d bytes to be accepted, got %s", len(tb.Body), read_err)
		} else if !tb.Valid {
			var max_bytes_err *http.MaxBytesError
			if read_err == nil || !strings.Contains(read_err.Error(), "too large") {
				t.Fatalf("expected %T for %d bytes, got %v", max_bytes_err, len(tb.Body), read_err)
			}
		}
	}
}

func TestTryOnRateLimits(t *testing.T) {
	r := chi.NewRouter()
	r.With(TryOnRateLimits()...).Post("/api/try-on", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var limited *httptest.ResponseRecorder
	for range 2 * TRYON_LIMIT_PER_SECOND {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/try-on", nil))
		if w.Code == http.StatusTooManyRequests {
			limited = w
			break
		}
	}

	if limited == nil {
		t.Fatalf("expected burst of %d requests to be rate limited", 2*TRYON_LIMIT_PER_SECOND)
	}

	var body map[string]string
	if err := json.Unmarshal(limited.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON body, got %q", limited.Body.String())
	}
	if body["error"] == "" {
		t.Fatal("expected error text in rate limit response")
	}
}

func TestSplitRequestLogger(t *testing.T) {
	err_log_path := filepath.Join(t.TempDir(), "err.log")

	f, err := NewSplitLogFormatter(log.New(io.Discard, "", 0), err_log_path)
	if err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	r.Use(SplitRequestLogger(f))
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fine"))
	})
	r.Get("/bad", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Missing required files", http.StatusBadRequest)
	})

	for _, path := range []string{"/ok", "/bad"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	logged, err := os.ReadFile(err_log_path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(logged), "Err: 400 GET /bad") {
		t.Fatalf("expected /bad to be teed to err log, got %q", logged)
	}
	if !strings.Contains(string(logged), "Missing required files") {
		t.Fatalf("expected status text in err log, got %q", logged)
	}
	if strings.Contains(string(logged), "/ok") {
		t.Fatalf("expected /ok to stay out of err log, got %q", logged)
	}
}

func TestSplitLogFormatterWithoutErrLog(t *testing.T) {
	f, err := NewSplitLogFormatter(log.New(io.Discard, "", 0), "")
	if err != nil {
		t.Fatal(err)
	}
	if f.FileLogger != nil {
		t.Fatal("expected no file logger")
	}

	h := SplitRequestLogger(f)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
