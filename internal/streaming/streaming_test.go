package streaming

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestDefaultTimeoutWriterConfig(t *testing.T) {
	config := DefaultTimeoutWriterConfig()

	if config.WriteTimeout != 30*time.Second {
		t.Errorf("Expected WriteTimeout=30s, got %v", config.WriteTimeout)
	}

	if config.IdleTimeout != 60*time.Second {
		t.Errorf("Expected IdleTimeout=60s, got %v", config.IdleTimeout)
	}

	if config.MaxDuration != 0 {
		t.Errorf("Expected MaxDuration=0 (unlimited), got %v", config.MaxDuration)
	}

	if config.ChunkSize != 64*1024 {
		t.Errorf("Expected ChunkSize=64KB, got %d", config.ChunkSize)
	}
}

func TestNewTimeoutWriter(t *testing.T) {
	ctx := context.Background()
	w := httptest.NewRecorder()
	config := DefaultTimeoutWriterConfig()

	tw := NewTimeoutWriter(ctx, w, config)
	if tw == nil {
		t.Fatal("NewTimeoutWriter returned nil")
	}
	defer tw.Close()

	if tw.bytesWritten != 0 {
		t.Errorf("Expected bytesWritten=0, got %d", tw.bytesWritten)
	}

	if tw.closed {
		t.Error("Expected closed=false")
	}
}

func TestTimeoutWriterWrite(t *testing.T) {
	ctx := context.Background()
	w := httptest.NewRecorder()
	config := DefaultTimeoutWriterConfig()

	tw := NewTimeoutWriter(ctx, w, config)
	defer tw.Close()

	data := []byte("test data")
	n, err := tw.Write(data)

	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if n != len(data) {
		t.Errorf("Expected to write %d bytes, wrote %d", len(data), n)
	}

	bytesWritten, _ := tw.Stats()
	if bytesWritten != int64(len(data)) {
		t.Errorf("Expected bytes written=%d, got %d", len(data), bytesWritten)
	}

	if w.Body.String() != "test data" {
		t.Errorf("Expected body %q, got %q", "test data", w.Body.String())
	}

	if !w.Flushed {
		t.Error("Expected write to be flushed")
	}
}

func TestTimeoutWriterWriteChunked(t *testing.T) {
	ctx := context.Background()
	w := httptest.NewRecorder()
	config := DefaultTimeoutWriterConfig()
	config.ChunkSize = 4

	tw := NewTimeoutWriter(ctx, w, config)
	defer tw.Close()

	data := []byte(strings.Repeat("x", 17))
	n, err := tw.Write(data)

	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != 17 {
		t.Errorf("Expected to write 17 bytes, wrote %d", n)
	}
	if w.Body.Len() != 17 {
		t.Errorf("Expected 17 bytes in body, got %d", w.Body.Len())
	}
}

func TestTimeoutWriterClose(t *testing.T) {
	ctx := context.Background()
	w := httptest.NewRecorder()
	config := DefaultTimeoutWriterConfig()

	tw := NewTimeoutWriter(ctx, w, config)

	// Close should be safe
	if err := tw.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}

	// Second close should be safe
	if err := tw.Close(); err != nil {
		t.Errorf("Second Close() returned error: %v", err)
	}

	// Write after close should fail
	_, err := tw.Write([]byte("data"))
	if !errors.Is(err, ErrStreamCanceled) {
		t.Errorf("Expected ErrStreamCanceled after close, got %v", err)
	}
}

func TestTimeoutWriterClientGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := httptest.NewRecorder()
	config := DefaultTimeoutWriterConfig()

	tw := NewTimeoutWriter(ctx, w, config)
	defer tw.Close()

	// Simulate client disconnect
	cancel()

	_, err := tw.Write([]byte("data"))
	if !errors.Is(err, ErrClientGone) {
		t.Errorf("Expected ErrClientGone, got %v", err)
	}
}

func TestTimeoutWriterMaxDuration(t *testing.T) {
	ctx := context.Background()
	w := httptest.NewRecorder()
	config := DefaultTimeoutWriterConfig()
	config.MaxDuration = 1 * time.Millisecond

	tw := NewTimeoutWriter(ctx, w, config)
	defer tw.Close()

	time.Sleep(5 * time.Millisecond)

	_, err := tw.Write([]byte("data"))
	if !errors.Is(err, ErrWriteTimeout) {
		t.Errorf("Expected ErrWriteTimeout after MaxDuration, got %v", err)
	}
}
