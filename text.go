package basepage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// EnterText types text into a visible element. By default the field is
// clicked first to take focus; WithClear empties it before typing and
// WithEnter presses enter afterwards.
func (p *Page) EnterText(ctx context.Context, loc Locator, text string, opts ...CallOption) error {
	o := newCallOpts(opts)
	el, err := p.first(ctx, loc, Visible, o)
	if err != nil {
		return err
	}

	if o.withClick {
		if err := el.Click(ctx); err != nil {
			return fmt.Errorf("focus %s: %w", loc, err)
		}
	}
	if o.withClear {
		if err := el.Clear(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", loc, err)
		}
	}
	if o.withEnter {
		text += "\n"
	}
	if err := el.SendKeys(ctx, text); err != nil {
		return fmt.Errorf("enter text into %s: %w", loc, err)
	}
	return nil
}

// EraseText removes text from a visible element, either by clearing the
// field (WithClear) or by a number of backspace presses (WithBackspaces).
func (p *Page) EraseText(ctx context.Context, loc Locator, opts ...CallOption) error {
	o := newCallOpts(opts)
	el, err := p.first(ctx, loc, Visible, o)
	if err != nil {
		return err
	}

	if o.withClick {
		if err := el.Click(ctx); err != nil {
			return fmt.Errorf("focus %s: %w", loc, err)
		}
	}
	if o.withClear {
		if err := el.Clear(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", loc, err)
		}
	}
	if o.backspaces > 0 {
		if err := el.SendKeys(ctx, strings.Repeat("\b", o.backspaces)); err != nil {
			return fmt.Errorf("backspace %s: %w", loc, err)
		}
	}
	return nil
}

// Text returns the text of the first visible matching element, falling
// back to its value attribute when the text is empty (inputs).
func (p *Page) Text(ctx context.Context, loc Locator, opts ...CallOption) (string, error) {
	el, err := p.first(ctx, loc, Visible, newCallOpts(opts))
	if err != nil {
		return "", err
	}
	return p.textOf(ctx, el)
}

func (p *Page) textOf(ctx context.Context, el Element) (string, error) {
	text, err := el.Text(ctx)
	if err != nil {
		return "", err
	}
	if text != "" {
		return text, nil
	}
	value, _, err := el.Attribute(ctx, "value")
	if err != nil {
		return "", err
	}
	return value, nil
}

// Attribute returns the named attribute of the first present matching
// element. A missing attribute reports ErrElementNotFound.
func (p *Page) Attribute(ctx context.Context, loc Locator, name string, opts ...CallOption) (string, error) {
	el, err := p.first(ctx, loc, Present, newCallOpts(opts))
	if err != nil {
		return "", err
	}
	value, ok, err := el.Attribute(ctx, name)
	if err != nil {
		return "", fmt.Errorf("read attribute %q of %s: %w", name, loc, err)
	}
	if !ok {
		return "", fmt.Errorf("attribute %q of %s: %w", name, loc, ErrElementNotFound)
	}
	return value, nil
}

// IsElementWithTextPresent makes a single pass over the elements matching
// loc and reports the first whose text (or value) matches. No waiting.
func (p *Page) IsElementWithTextPresent(ctx context.Context, loc Locator, text string, opts ...CallOption) (Element, bool, error) {
	o := newCallOpts(opts)
	zero := time.Duration(0)
	o.timeout = &zero

	els, err := p.allIn(ctx, p.driver, loc, Present, o)
	if err != nil {
		if errors.Is(err, ErrElementNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	for _, el := range els {
		actual, err := p.textOf(ctx, el)
		if err != nil {
			if errors.Is(err, ErrStaleElement) {
				continue
			}
			return nil, false, err
		}
		actual = strings.TrimSpace(actual)
		if o.exact && actual == text {
			return el, true, nil
		}
		if !o.exact && strings.Contains(actual, text) {
			return el, true, nil
		}
	}
	return nil, false, nil
}

// ElementWithText waits for an element matching loc whose text (or value)
// contains text, or equals it with ExactMatch.
func (p *Page) ElementWithText(ctx context.Context, loc Locator, text string, opts ...CallOption) (Element, error) {
	o := newCallOpts(opts)
	timeout := p.timeoutFor(o)

	var found Element
	w := Wait{Timeout: timeout, Poll: p.poll}
	err := w.Until(ctx, func(ctx context.Context) (bool, error) {
		el, ok, err := p.IsElementWithTextPresent(ctx, loc, text, opts...)
		if err != nil {
			return false, err
		}
		found = el
		return ok, nil
	})
	if err != nil {
		if errors.Is(err, ErrWaitTimeout) {
			return nil, &NotFoundError{Locator: loc, Condition: fmt.Sprintf("with text %q", text), Timeout: timeout}
		}
		return nil, err
	}
	return found, nil
}

// WaitUntilGone blocks until no matching element is attached and visible,
// the usual way to wait out spinners and modals.
func (p *Page) WaitUntilGone(ctx context.Context, loc Locator, opts ...CallOption) error {
	o := newCallOpts(opts)
	timeout := p.timeoutFor(o)

	resolved, err := p.resolve(loc, o.params)
	if err != nil {
		return err
	}

	w := Wait{Timeout: timeout, Poll: p.poll}
	err = w.Until(ctx, func(ctx context.Context) (bool, error) {
		els, err := p.driver.FindElements(ctx, resolved)
		if err != nil {
			// A stale tree here means the old elements are gone.
			if errors.Is(err, ErrStaleElement) {
				return true, nil
			}
			return false, err
		}
		for _, el := range els {
			shown, err := el.Displayed(ctx)
			if err != nil {
				if errors.Is(err, ErrStaleElement) {
					continue
				}
				return false, err
			}
			if shown {
				return false, nil
			}
		}
		return true, nil
	})
	if errors.Is(err, ErrWaitTimeout) {
		return fmt.Errorf("element %s never disappeared within %v: %w", resolved, timeout, ErrWaitTimeout)
	}
	return err
}

// WaitForText waits until every element matching loc has non-empty text
// and returns them.
func (p *Page) WaitForText(ctx context.Context, loc Locator, opts ...CallOption) ([]Element, error) {
	o := newCallOpts(opts)
	timeout := p.timeoutFor(o)
	zero := time.Duration(0)

	probe := o
	probe.timeout = &zero

	var populated []Element
	w := Wait{Timeout: timeout, Poll: p.poll}
	err := w.Until(ctx, func(ctx context.Context) (bool, error) {
		els, err := p.allIn(ctx, p.driver, loc, Present, probe)
		if err != nil {
			if errors.Is(err, ErrElementNotFound) {
				return false, nil
			}
			return false, err
		}
		for _, el := range els {
			text, err := p.textOf(ctx, el)
			if err != nil {
				if errors.Is(err, ErrStaleElement) {
					return false, nil
				}
				return false, err
			}
			if text == "" {
				return false, nil
			}
		}
		populated = els
		return true, nil
	})
	if err != nil {
		if errors.Is(err, ErrWaitTimeout) {
			return nil, &NotFoundError{Locator: loc, Condition: "with populated text", Timeout: timeout}
		}
		return nil, err
	}
	return populated, nil
}

// WaitForAttribute waits until the named attribute of the first present
// matching element contains value. The element is re-found on every poll
// to dodge stale handles.
func (p *Page) WaitForAttribute(ctx context.Context, loc Locator, name, value string, opts ...CallOption) error {
	o := newCallOpts(opts)
	timeout := p.timeoutFor(o)
	zero := time.Duration(0)

	probe := o
	probe.timeout = &zero

	w := Wait{Timeout: timeout, Poll: p.poll}
	err := w.Until(ctx, func(ctx context.Context) (bool, error) {
		el, err := p.first(ctx, loc, Present, probe)
		if err != nil {
			if errors.Is(err, ErrElementNotFound) {
				return false, nil
			}
			return false, err
		}
		actual, ok, err := el.Attribute(ctx, name)
		if err != nil {
			if errors.Is(err, ErrStaleElement) {
				return false, nil
			}
			return false, err
		}
		return ok && strings.Contains(actual, value), nil
	})
	if errors.Is(err, ErrWaitTimeout) {
		return fmt.Errorf("attribute %q of %s never contained %q within %v: %w", name, loc, value, timeout, ErrWaitTimeout)
	}
	return err
}
