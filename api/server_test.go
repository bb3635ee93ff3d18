package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/multierr"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestShutdownClosesEveryResource(t *testing.T) {
	srv := NewServer(":0", http.NotFoundHandler())

	closed := 0
	ok := closerFunc(func() error { closed++; return nil })
	failA := closerFunc(func() error { closed++; return errors.New("db close failed") })
	failB := closerFunc(func() error { closed++; return errors.New("redis close failed") })

	err := Shutdown(context.Background(), srv, ok, failA, nil, failB)
	if closed != 3 {
		t.Fatalf("expected 3 closers to run, got %d", closed)
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("expected 2 aggregated errors, got %d: %v", got, err)
	}
}

func TestNewServerTimeouts(t *testing.T) {
	srv := NewServer(":8080", http.NotFoundHandler())
	if srv.ReadHeaderTimeout == 0 || srv.WriteTimeout == 0 {
		t.Fatal("expected server timeouts to be set")
	}
}
