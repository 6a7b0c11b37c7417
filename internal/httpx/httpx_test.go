package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
		Retry5xx:    true,
	}
}

func TestFetchBytesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	body, err := FetchBytes(context.Background(), srv.Client(), srv.URL, fastRetryConfig())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(body) != "hello" {
		t.Errorf("Expected body %q, got %q", "hello", string(body))
	}
}

func TestFetchBytesRetries5xx(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "flaky", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := FetchBytes(context.Background(), srv.Client(), srv.URL, fastRetryConfig())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("Expected body %q, got %q", "ok", string(body))
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestFetchBytesGivesUp(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := FetchBytes(context.Background(), srv.Client(), srv.URL, fastRetryConfig())
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("Expected *HTTPError, got %T: %v", err, err)
	}
	if herr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, herr.StatusCode)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestFetchBytesNonRetryableStatus(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchBytes(context.Background(), srv.Client(), srv.URL, fastRetryConfig())
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("Expected *HTTPError, got %T: %v", err, err)
	}
	if herr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, herr.StatusCode)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestParseRetryAfter(t *testing.T) {
	testCases := []struct {
		name     string
		header   string
		expected time.Duration
	}{
		{"missing", "", 0},
		{"seconds", "5", 5 * time.Second},
		{"negative", "-3", 0},
		{"garbage", "soon", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if tc.header != "" {
				resp.Header.Set("Retry-After", tc.header)
			}
			if got := ParseRetryAfter(resp); got != tc.expected {
				t.Errorf("ParseRetryAfter(%q) = %v, want %v", tc.header, got, tc.expected)
			}
		})
	}
}
