package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerTo(context.Background(), &buf, "rendering")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !bytes.Contains([]byte(buf.String()), []byte("rendering")) {
		t.Errorf("spinner output = %q", buf.String())
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	var buf syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerTo(ctx, &buf, "rendering")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerTo(context.Background(), &buf, "rendering")
	s.Start()
	s.Stop()
	s.Stop()
	s.StopWithSuccess("done")
}
