package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/hooktools/core/tui/theme"
)

// ProgressReporter redraws a per-file status list while a batch
// validation runs. It owns the whole screen between the first Update
// and Done.
type ProgressReporter struct {
	mu      sync.Mutex
	order   []string
	status  map[string]string
	started time.Time
}

// NewProgressReporter returns a reporter with the clock already running.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{
		status:  map[string]string{},
		started: time.Now(),
	}
}

// Update records the status of one file and redraws the list. Files
// keep the position of their first appearance.
func (p *ProgressReporter) Update(path, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.status[path]; !ok {
		p.order = append(p.order, path)
	}
	p.status[path] = status
	p.redraw()
}

// Done prints the closing summary line.
func (p *ProgressReporter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.started).Round(time.Millisecond)
	fmt.Printf("\nChecked %d files in %s\n", len(p.status), elapsed)
}

func (p *ProgressReporter) redraw() {
	fmt.Print("\033[H\033[2J")
	fmt.Printf("Checking pre-commit files... [%s]\n\n", time.Since(p.started).Round(time.Second))
	for _, path := range p.order {
		status := p.status[path]
		fmt.Printf("%s %s: %s\n", statusIcon(status), path, status)
	}
}

func statusIcon(status string) string {
	t := theme.DefaultTheme
	switch status {
	case "valid":
		return t.Success.Render(theme.IconSuccess)
	case "invalid":
		return t.Error.Render(theme.IconError)
	case "checking":
		return t.Info.Render(theme.IconRunning)
	}
	return t.Muted.Render(theme.IconPending)
}
