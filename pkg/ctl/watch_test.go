package ctl

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards the frame writer against the test goroutine
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

func TestWatcherRun(t *testing.T) {
	var out syncBuffer
	var mu sync.Mutex
	frames := 0
	w := NewWatcher(10*time.Millisecond, &out, func() (string, error) {
		mu.Lock()
		frames++
		mu.Unlock()
		return "frame\n", nil
	})
	done := make(chan struct{})
	go func() {
		w.Run()
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)
	w.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	mu.Lock()
	n := frames
	mu.Unlock()
	if n < 2 {
		t.Fatal("expect at least two frames, got:", n)
	}
	if !strings.Contains(out.String(), "frame") {
		t.Fatal("missing frame output:", out.String())
	}
}

func TestWatcherRenderError(t *testing.T) {
	var out syncBuffer
	w := NewWatcher(time.Hour, &out, func() (string, error) {
		return "", errors.New("request timeout")
	})
	w.Exchange = "binance"
	w.Symbol = "BTC/USDT"
	w.frame()
	got := out.String()
	if !strings.Contains(got, "BTC/USDT on binance") {
		t.Fatal("missing header:", got)
	}
	if !strings.Contains(got, "network error") {
		t.Fatal("missing error message:", got)
	}
}

func TestWatcherOutputFile(t *testing.T) {
	var out syncBuffer
	frame := 0
	w := NewWatcher(time.Hour, &out, func() (string, error) {
		frame++
		return fmt.Sprintf("frame %d\n", frame), nil
	})
	w.OutputFile = filepath.Join(t.TempDir(), "ticker.txt")
	w.frame()
	w.frame()
	got, err := os.ReadFile(w.OutputFile)
	if err != nil {
		t.Fatal(err.Error())
	}
	if string(got) != "frame 2\n" {
		t.Fatalf("output file should hold the latest frame, got %q", got)
	}
}

func TestWatcherDefaultInterval(t *testing.T) {
	w := NewWatcher(0, &syncBuffer{}, func() (string, error) { return "", nil })
	if w.Interval != 5*time.Second {
		t.Fatal("default interval:", w.Interval)
	}
}
