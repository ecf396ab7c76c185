package watcher

import (
	"context"
	"time"

	"github.com/kinview/kinview/pkg/logging"
)

// Debouncer batches rapid change events so one editor save (often several
// fsnotify events) triggers a single reload. An event is released after a
// quiet period with no further changes, or after maxWait at the latest.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a debouncer over an event channel
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Events returns the debounced event channel
func (d *Debouncer) Events() <-chan ChangeEvent {
	return d.output
}

// Start begins processing events until ctx is done
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Debouncer) run(ctx context.Context) {
	var (
		pending  *ChangeEvent
		count    int
		quiet    <-chan time.Time
		deadline <-chan time.Time
	)

	flush := func() {
		if pending == nil {
			return
		}
		logging.Debug("flushing debounced changes", "count", count)
		d.output <- *pending
		pending = nil
		count = 0
		quiet = nil
		deadline = nil
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				return
			}
			if pending == nil {
				deadline = time.After(d.maxWait)
			}
			pending = &event
			count++
			quiet = time.After(d.quietPeriod)

		case <-quiet:
			flush()

		case <-deadline:
			flush()
		}
	}
}
