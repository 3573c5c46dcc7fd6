package renderer

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to a stream
type DefaultLogger struct {
	out io.Writer
}

// Printf implements core.Logger
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}

// NewDefaultLogger creates a logger writing to stderr
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{out: os.Stderr}
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{out: w}
}

// Progress counts finished pixels and reports the percentage whenever
// its integer value changes. It is the only state workers contend on.
type Progress struct {
	mu          sync.Mutex
	total       int
	done        int
	lastPercent int
	logger      core.Logger
}

// NewProgress creates a counter for total tasks
func NewProgress(total int, logger core.Logger) *Progress {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Progress{total: total, lastPercent: -1, logger: logger}
}

// Increment records one finished task
func (p *Progress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if p.total <= 0 {
		return
	}
	percent := p.done * 100 / p.total
	if percent != p.lastPercent {
		p.lastPercent = percent
		p.logger.Printf("\r%d%% ", percent)
	}
}

// Done returns the number of finished tasks
func (p *Progress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}
