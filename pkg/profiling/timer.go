// Package profiling provides a lightweight hierarchical wall-clock
// profiler plus pprof wiring for cobra commands. Spans cost nothing
// until the profiler is enabled.
package profiling

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Stopper closes a timed span.
type Stopper interface {
	Stop()
}

type stopFunc func()

func (f stopFunc) Stop() { f() }

var noop = stopFunc(func() {})

// frame is one timed region. Children are kept in start order.
type frame struct {
	name     string
	started  time.Time
	elapsed  time.Duration
	children []*frame
}

type profiler struct {
	mu      sync.Mutex
	enabled bool
	// stack[0] is the session root holding the total duration.
	stack []*frame
}

var global profiler

// Enable arms the global profiler and opens the session root frame.
// Further calls are no-ops.
func Enable() {
	global.mu.Lock()
	defer global.mu.Unlock()
	if global.enabled {
		return
	}
	global.enabled = true
	global.stack = []*frame{{started: time.Now()}}
}

// Start opens a span nested under the innermost open one. The returned
// Stopper closes it, typically via defer. While the profiler is
// disabled, Start returns a no-op.
func Start(name string) Stopper {
	global.mu.Lock()
	defer global.mu.Unlock()
	if !global.enabled {
		return noop
	}

	f := &frame{name: name, started: time.Now()}
	parent := global.stack[len(global.stack)-1]
	parent.children = append(parent.children, f)
	global.stack = append(global.stack, f)

	return stopFunc(func() {
		global.mu.Lock()
		defer global.mu.Unlock()
		f.elapsed = time.Since(f.started)
		if n := len(global.stack); n > 1 && global.stack[n-1] == f {
			global.stack = global.stack[:n-1]
		}
	})
}

// Summarize writes the span tree with durations and the share of the
// session total. Nothing is written while the profiler is disabled.
func Summarize(w io.Writer) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if !global.enabled || len(global.stack) == 0 {
		return
	}

	root := global.stack[0]
	if root.elapsed == 0 {
		root.elapsed = time.Since(root.started)
	}

	fmt.Fprintln(w, "\n--- Timing Profile ---")
	for _, child := range root.children {
		writeFrame(w, child, 1, root.elapsed)
	}
	fmt.Fprintln(w, "--------------------")
}

func writeFrame(w io.Writer, f *frame, depth int, total time.Duration) {
	share := 0.0
	if total > 0 {
		share = float64(f.elapsed) / float64(total) * 100
	}
	fmt.Fprintf(w, "%s- %s (%v, %.1f%%)\n",
		strings.Repeat("  ", depth), f.name, f.elapsed.Round(100*time.Microsecond), share)
	for _, child := range f.children {
		writeFrame(w, child, depth+1, total)
	}
}
