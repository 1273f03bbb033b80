package basepage

import (
	"context"
	"time"
)

// Defaults for the retry budget. The 25% poll growth per iteration keeps
// early retries snappy while backing off on slow pages.
const (
	DefaultTimeout = 30 * time.Second
	DefaultPoll    = 500 * time.Millisecond

	pollGrowthNum = 5
	pollGrowthDen = 4
)

// Wait runs a check until it succeeds or the budget runs out.
// A zero Timeout means exactly one attempt with no sleeping.
type Wait struct {
	Timeout time.Duration
	Poll    time.Duration
}

// Until calls check until it reports done, returns a non-nil error, or the
// budget is exhausted. Errors from check abort immediately; timeouts are
// reported as ErrWaitTimeout and context cancellation as ctx.Err().
func (w Wait) Until(ctx context.Context, check func(ctx context.Context) (bool, error)) error {
	poll := w.Poll
	if poll <= 0 {
		poll = DefaultPoll
	}

	deadline := time.Now().Add(w.Timeout)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if w.Timeout <= 0 || !time.Now().Add(poll).Before(deadline) {
			return ErrWaitTimeout
		}

		select {
		case <-time.After(poll):
		case <-ctx.Done():
			return ctx.Err()
		}
		poll = nextPoll(poll)
	}
}

func nextPoll(poll time.Duration) time.Duration {
	return poll * pollGrowthNum / pollGrowthDen
}
