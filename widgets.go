package basepage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// SelectByValue sets the value of a select element and fires its change
// event, matching by the option's value attribute.
func (p *Page) SelectByValue(ctx context.Context, loc Locator, value string, opts ...CallOption) error {
	el, err := p.first(ctx, loc, Present, newCallOpts(opts))
	if err != nil {
		return err
	}
	if err := el.SetValue(ctx, value); err != nil {
		return fmt.Errorf("select value %q in %s: %w", value, loc, err)
	}
	return nil
}

// SelectByText opens a drop-down and clicks the option whose text matches
// optionText (substring, or whole text with ExactMatch).
func (p *Page) SelectByText(ctx context.Context, dropDown, option Locator, optionText string, opts ...CallOption) error {
	o := newCallOpts(opts)
	if err := p.Click(ctx, dropDown, opts...); err != nil {
		return err
	}

	els, err := p.allIn(ctx, p.driver, option, Present, o)
	if err != nil {
		return err
	}
	for _, el := range els {
		text, err := p.textOf(ctx, el)
		if err != nil {
			if errors.Is(err, ErrStaleElement) {
				continue
			}
			return err
		}
		text = strings.TrimSpace(text)
		if (o.exact && text == optionText) || (!o.exact && strings.Contains(text, optionText)) {
			if err := el.Click(ctx); err != nil {
				return fmt.Errorf("click option %q in %s: %w", optionText, option, err)
			}
			return nil
		}
	}
	return fmt.Errorf("option with text %q in %s: %w", optionText, option, ErrElementNotFound)
}

// SelectByLocator opens a drop-down and clicks the option identified by
// its own locator.
func (p *Page) SelectByLocator(ctx context.Context, dropDown, option Locator, opts ...CallOption) error {
	if err := p.Click(ctx, dropDown, opts...); err != nil {
		return err
	}
	return p.Click(ctx, option, opts...)
}

// Hover moves the pointer onto the first visible matching element and
// returns its handle so the caller can act on whatever opened.
func (p *Page) Hover(ctx context.Context, loc Locator, opts ...CallOption) (Element, error) {
	el, err := p.first(ctx, loc, Visible, newCallOpts(opts))
	if err != nil {
		return nil, err
	}
	if err := el.Hover(ctx); err != nil {
		return nil, fmt.Errorf("hover %s: %w", loc, err)
	}
	return el, nil
}

// Unhover parks the pointer at the viewport origin, closing whatever the
// previous hover opened. A stale hover target is already closed and not
// an error.
func (p *Page) Unhover(ctx context.Context) error {
	if err := p.driver.MoveMouse(ctx, 0, 0); err != nil && !errors.Is(err, ErrStaleElement) {
		return fmt.Errorf("unhover: %w", err)
	}
	return nil
}

// WithHover hovers loc, runs fn, and closes the hover again regardless of
// fn's outcome.
func (p *Page) WithHover(ctx context.Context, loc Locator, fn func(ctx context.Context) error, opts ...CallOption) error {
	if _, err := p.Hover(ctx, loc, opts...); err != nil {
		return err
	}
	defer p.Unhover(ctx) //nolint:errcheck // closing the hover is best effort
	return fn(ctx)
}

// DragAndDrop drags the first visible source element onto the first
// visible target element.
func (p *Page) DragAndDrop(ctx context.Context, source, target Locator, opts ...CallOption) error {
	o := newCallOpts(opts)
	src, err := p.first(ctx, source, Visible, o)
	if err != nil {
		return err
	}
	dst, err := p.first(ctx, target, Visible, o)
	if err != nil {
		return err
	}
	if err := p.driver.DragAndDrop(ctx, src, dst); err != nil {
		return fmt.Errorf("drag %s onto %s: %w", source, target, err)
	}
	return nil
}

// DragAndDropBy drags the first visible source element by a viewport
// offset, for targets that are coordinates rather than elements.
func (p *Page) DragAndDropBy(ctx context.Context, source Locator, dx, dy float64, opts ...CallOption) error {
	src, err := p.first(ctx, source, Visible, newCallOpts(opts))
	if err != nil {
		return err
	}
	if err := p.driver.DragAndDropBy(ctx, src, dx, dy); err != nil {
		return fmt.Errorf("drag %s by (%v,%v): %w", source, dx, dy, err)
	}
	return nil
}
