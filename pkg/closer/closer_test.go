package closer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestClose_LIFOAndNamedErrors(t *testing.T) {
	c := NewCloser(0)

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string, err error) Func {
		return func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return err
		}
	}

	c.Add("postgres", record("postgres", nil))
	c.Add("grpc", record("grpc", errors.New("listener closed")))
	c.Add("http", record("http", nil))

	err := c.Close(context.Background())
	if err == nil || !strings.Contains(err.Error(), "grpc: listener closed") {
		t.Errorf("expected named grpc error, got: %v", err)
	}

	if strings.Join(order, ",") != "http,grpc,postgres" {
		t.Errorf("expected LIFO order, got %v", order)
	}

	if err := c.Close(context.Background()); err != nil {
		t.Errorf("expected second Close to be a no-op, got: %v", err)
	}
	if len(order) != 3 {
		t.Errorf("expected resources closed once, got %v", order)
	}
}

func TestClose_ForcedAfterTimeout(t *testing.T) {
	c := NewCloser(100 * time.Millisecond)

	forced := make(chan struct{}, 1)
	c.Add("postgres", func(ctx context.Context) error {
		forced <- struct{}{}
		return nil
	})
	c.Add("http", func(context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	if err == nil || !strings.Contains(err.Error(), "2 of 2") {
		t.Errorf("expected interrupted shutdown error, got: %v", err)
	}

	select {
	case <-forced:
	default:
		t.Errorf("expected remaining resource to be closed forcibly")
	}
}
