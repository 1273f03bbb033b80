package basepage

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrElementNotFound indicates that no element matched the locator
	// within the retry budget.
	ErrElementNotFound = errors.New("element not found")

	// ErrStaleElement indicates that an element handle is no longer valid,
	// likely due to a page navigation or DOM modification between find and act.
	ErrStaleElement = errors.New("element is stale or detached from the document")

	// ErrNotInteractable indicates that an element was found but could not
	// receive the requested action.
	ErrNotInteractable = errors.New("element is not interactable")

	// ErrWaitTimeout is returned by Wait.Until when the budget ran out
	// before the condition held.
	ErrWaitTimeout = errors.New("timed out waiting for condition")
)

// NotFoundError reports an exhausted retry budget for a locator.
// It unwraps to ErrElementNotFound.
type NotFoundError struct {
	Locator   Locator
	Condition string
	Timeout   time.Duration
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s element matched %s within %v", e.Condition, e.Locator, e.Timeout)
}

func (e *NotFoundError) Unwrap() error { return ErrElementNotFound }

// ValidationError reports locator parameters rejected before any driver
// interaction took place. It is never retried.
type ValidationError struct {
	Locator Locator
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameters for %s: %s", e.Locator, e.Reason)
}
