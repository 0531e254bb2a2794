package volumetric

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Progress receives coarse progress updates from long running passes.
// Implementations must be safe for concurrent use.
type Progress interface {
	Report(stage string, done, total int)
}

// ProgressFunc adapts a plain function to Progress.
type ProgressFunc func(stage string, done, total int)

// Report calls f.
func (f ProgressFunc) Report(stage string, done, total int) { f(stage, done, total) }

// ConsoleProgress prints "[PROGRESS] stage 12.00%" lines.
type ConsoleProgress struct {
	W  io.Writer // defaults to os.Stdout
	mu sync.Mutex
}

// Report prints one line per call; reports with no total are ignored.
func (c *ConsoleProgress) Report(stage string, done, total int) {
	if total <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.W
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "[PROGRESS] %s %.2f%%\n", stage, float64(done)*100/float64(total))
}

// Tee fans a report out to several sinks, nil entries are skipped.
func Tee(sinks ...Progress) Progress {
	out := make(teeProgress, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type teeProgress []Progress

// frameSetter is implemented by sinks that tag events with a frame number.
type frameSetter interface {
	SetFrame(frame int)
}

func (t teeProgress) SetFrame(frame int) {
	for _, p := range t {
		if fs, ok := p.(frameSetter); ok {
			fs.SetFrame(frame)
		}
	}
}

func (t teeProgress) Report(stage string, done, total int) {
	for _, p := range t {
		p.Report(stage, done, total)
	}
}

// progressCounter is shared by the workers of one pass. It forwards roughly
// every 1% and always the final unit.
type progressCounter struct {
	sink      Progress
	stage     string
	total     int64
	nextPrint int64
	done      atomic.Int64
}

func newProgressCounter(sink Progress, stage string, total int) *progressCounter {
	if sink == nil || total <= 0 {
		return nil
	}
	nextPrint := int64(1)
	if total >= 100 {
		nextPrint = int64(total / 100) // ~1%
	}
	return &progressCounter{sink: sink, stage: stage, total: int64(total), nextPrint: nextPrint}
}

func (c *progressCounter) add(n int) {
	if c == nil {
		return
	}
	fired := c.done.Add(int64(n))
	prev := fired - int64(n)
	if fired == c.total || prev/c.nextPrint != fired/c.nextPrint {
		c.sink.Report(c.stage, int(fired), int(c.total))
	}
}
