package app

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"
	"syscall"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog/pkg/logger"
)

func discardLogger() logger.Logger {
	return logger.NewSlogLoggerWithHandler(slog.NewTextHandler(io.Discard, nil))
}

func TestAwaitStop_ReturnsServerError(t *testing.T) {
	httpErrCh := make(chan error, 1)
	grpcErrCh := make(chan error, 1)
	grpcErrCh <- errors.New("listener closed")

	err := awaitStop(discardLogger(), make(chan os.Signal), httpErrCh, grpcErrCh)
	if err == nil || err.Error() != "listener closed" {
		t.Errorf("expected listener closed, got: %v", err)
	}
	close(httpErrCh)
}

func TestAwaitStop_SignalThenServersExit(t *testing.T) {
	before := runtime.NumGoroutine()

	httpErrCh := make(chan error, 1)
	grpcErrCh := make(chan error, 1)
	stop := make(chan os.Signal, 1)
	stop <- syscall.SIGTERM

	if err := awaitStop(discardLogger(), stop, httpErrCh, grpcErrCh); err != nil {
		t.Fatalf("expected nil on signal, got: %v", err)
	}

	// Серверы завершились после остановки
	close(httpErrCh)
	close(grpcErrCh)

	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatalf("forwarding goroutines still running: %d > %d", runtime.NumGoroutine(), before)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
