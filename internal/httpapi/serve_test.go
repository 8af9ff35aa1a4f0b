package httpapi

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- ListenAndServe(ctx, "127.0.0.1:0", http.NotFoundHandler()) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

func TestListenAndServe_BadAddr(t *testing.T) {
	if err := ListenAndServe(context.Background(), "256.0.0.1:bad", http.NotFoundHandler()); err == nil {
		t.Fatalf("expected listen error")
	}
}
