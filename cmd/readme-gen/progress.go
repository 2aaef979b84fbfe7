package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// progress prints pipeline checkpoints. Safe for use from batch workers.
type progress struct {
	mu  sync.Mutex
	w   io.Writer
	pct *color.Color
}

func newProgress(w io.Writer) *progress {
	return &progress{w: w, pct: color.New(color.FgCyan)}
}

func (p *progress) Report(step string, percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = p.pct.Fprintf(p.w, "[%3d%%] ", percent)
	_, _ = fmt.Fprintln(p.w, step)
}
