package ctl

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Algovate/crypto-fetcher/pkg/core"
)

// clearScreen ANSI erase display + cursor home
const clearScreen = "\033[2J\033[H"

// Watcher re-renders a payload at a fixed interval until stopped.
type Watcher struct {
	Interval time.Duration
	Out      io.Writer
	Clear    bool
	Exchange string
	Symbol   string

	// OutputFile receives every rendered frame, so the file always
	// holds the latest snapshot
	OutputFile string

	// Render fetch and format one frame
	Render func() (string, error)

	stopCh chan struct{}
}

func NewWatcher(interval time.Duration, out io.Writer, render func() (string, error)) *Watcher {
	if interval <= 0 {
		interval = time.Second * 5
	}
	return &Watcher{
		Interval: interval,
		Out:      out,
		Render:   render,
		stopCh:   make(chan struct{}),
	}
}

// Run render one frame immediately, then every Interval. A frame error
// is reported and the loop keeps polling, matching the watch contract
// of re-fetching until interrupted.
func (w *Watcher) Run() {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	w.frame()
	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.frame()
		}
	}
}

// Stop end the loop, safe to call once from another goroutine
func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) frame() {
	out, err := w.Render()
	if w.Clear {
		fmt.Fprint(w.Out, clearScreen)
	}
	if w.Exchange != "" {
		fmt.Fprintf(w.Out, "%s on %s, updated %s (Ctrl+C to stop)\n",
			w.Symbol, w.Exchange, time.Now().Format("2006-01-02 15:04:05"))
	}
	if err != nil {
		fmt.Fprintln(w.Out, core.FriendlyMessage(err, w.Exchange, w.Symbol))
		return
	}
	fmt.Fprint(w.Out, out)
	if w.OutputFile != "" {
		err = os.WriteFile(w.OutputFile, []byte(out), 0644)
		if err != nil {
			fmt.Fprintln(w.Out, "write output failed:", err.Error())
		}
	}
}
