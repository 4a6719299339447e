package aishub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientFetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("MMSI,TSTAMP\n230123000,1700000000\n"))
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	body, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.HasPrefix(body, "MMSI,TSTAMP") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestClientFetchRateLimitBodyPassesThrough(t *testing.T) {
	// The rate-limit sentinel arrives with status 200; the transport must not
	// interpret it, only deliver it.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(RateLimitSentinel))
	}))
	defer srv.Close()

	body, err := NewClient(0).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if body != RateLimitSentinel {
		t.Fatalf("expected sentinel body verbatim, got %q", body)
	}
}

func TestClientFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(0).Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected status in error, got %v", err)
	}
}
