// Package basepage is a thin convenience layer over a browser-automation
// driver, meant to shorten page-object test code. Every operation is a
// single linear sequence: resolve the locator once, poll the driver's
// read-only find primitive until a condition holds or the budget runs
// out, apply exactly one action, and return the result or a typed error.
//
// The wrapper keeps no state between calls. Element handles are used at
// most once, immediately after finding them, and then discarded. A driver
// session is assumed to be owned by a single sequential caller.
package basepage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Page wraps a Driver with find-with-retry element actions.
type Page struct {
	driver   Driver
	resolver Resolver
	logger   *zap.Logger
	timeout  time.Duration
	poll     time.Duration
}

// Option configures a Page at construction.
type Option func(*Page)

// WithResolver sets the consumer-supplied locator resolver.
func WithResolver(r Resolver) Option {
	return func(p *Page) { p.resolver = r }
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(p *Page) { p.logger = l }
}

// WithDefaultTimeout sets the explicit wait applied when a call carries
// no timeout override.
func WithDefaultTimeout(d time.Duration) Option {
	return func(p *Page) { p.timeout = d }
}

// WithDefaultPoll sets the initial poll interval of the retry loop.
func WithDefaultPoll(d time.Duration) Option {
	return func(p *Page) { p.poll = d }
}

// New returns a Page around driver. Unless overridden, locators are
// resolved by TemplateResolver and waits use DefaultTimeout/DefaultPoll.
func New(driver Driver, opts ...Option) *Page {
	p := &Page{
		driver:   driver,
		resolver: TemplateResolver{},
		logger:   zap.NewNop(),
		timeout:  DefaultTimeout,
		poll:     DefaultPoll,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("basepage")
	return p
}

// Driver returns the wrapped driver.
func (p *Page) Driver() Driver { return p.driver }

// CallOption adjusts a single wrapper call.
type CallOption func(*callOpts)

type callOpts struct {
	params     Params
	timeout    *time.Duration
	withClick  bool
	withClear  bool
	withEnter  bool
	backspaces int
	exact      bool
}

// WithParams supplies substitution values for the locator template.
func WithParams(params Params) CallOption {
	return func(o *callOpts) { o.params = params }
}

// WithTimeout overrides the page's explicit wait for this call.
// Zero means a single immediate attempt.
func WithTimeout(d time.Duration) CallOption {
	return func(o *callOpts) { o.timeout = &d }
}

// WithoutClick skips the focusing click before EnterText/EraseText.
func WithoutClick() CallOption {
	return func(o *callOpts) { o.withClick = false }
}

// WithClear clears the field before text entry or erasure.
func WithClear() CallOption {
	return func(o *callOpts) { o.withClear = true }
}

// WithEnter presses the enter key after text entry.
func WithEnter() CallOption {
	return func(o *callOpts) { o.withEnter = true }
}

// WithBackspaces erases by pressing backspace n times.
func WithBackspaces(n int) CallOption {
	return func(o *callOpts) { o.backspaces = n }
}

// ExactMatch requires whole-text equality in text searches instead of
// substring containment.
func ExactMatch() CallOption {
	return func(o *callOpts) { o.exact = true }
}

func newCallOpts(opts []CallOption) callOpts {
	o := callOpts{withClick: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// -- Find core --

func (p *Page) resolve(loc Locator, params Params) (Locator, error) {
	resolved, err := p.resolver.Resolve(loc, params)
	if err != nil {
		return Locator{}, err
	}
	return resolved, nil
}

func (p *Page) timeoutFor(o callOpts) time.Duration {
	if o.timeout != nil {
		return *o.timeout
	}
	return p.timeout
}

// allIn resolves loc exactly once, then polls f's find primitive until at
// least one element satisfies cond or the budget runs out. Stale handles
// observed while polling are skipped; the next poll re-finds them.
func (p *Page) allIn(ctx context.Context, f finder, loc Locator, cond Condition, o callOpts) ([]Element, error) {
	resolved, err := p.resolve(loc, o.params)
	if err != nil {
		return nil, err
	}

	timeout := p.timeoutFor(o)
	var matched []Element
	w := Wait{Timeout: timeout, Poll: p.poll}
	err = w.Until(ctx, func(ctx context.Context) (bool, error) {
		matched = matched[:0]
		els, err := f.FindElements(ctx, resolved)
		if err != nil {
			if errors.Is(err, ErrStaleElement) {
				return false, nil
			}
			return false, err
		}
		for _, el := range els {
			ok, err := cond.Test(ctx, el)
			if err != nil {
				if errors.Is(err, ErrStaleElement) {
					continue
				}
				return false, err
			}
			if ok {
				matched = append(matched, el)
			}
		}
		if len(matched) == 0 {
			p.logger.Debug("no matching element yet",
				zap.Stringer("locator", resolved),
				zap.String("condition", cond.Name))
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		if errors.Is(err, ErrWaitTimeout) {
			return nil, &NotFoundError{Locator: resolved, Condition: cond.Name, Timeout: timeout}
		}
		return nil, err
	}
	return matched, nil
}

func (p *Page) firstIn(ctx context.Context, f finder, loc Locator, cond Condition, o callOpts) (Element, error) {
	els, err := p.allIn(ctx, f, loc, cond, o)
	if err != nil {
		return nil, err
	}
	return els[0], nil
}

func (p *Page) first(ctx context.Context, loc Locator, cond Condition, o callOpts) (Element, error) {
	return p.firstIn(ctx, p.driver, loc, cond, o)
}

// -- Element getters --

// PresentElement returns the first element attached to the DOM.
func (p *Page) PresentElement(ctx context.Context, loc Locator, opts ...CallOption) (Element, error) {
	return p.first(ctx, loc, Present, newCallOpts(opts))
}

// VisibleElement returns the first element both present and displayed.
func (p *Page) VisibleElement(ctx context.Context, loc Locator, opts ...CallOption) (Element, error) {
	return p.first(ctx, loc, Visible, newCallOpts(opts))
}

// PresentElements returns all elements attached to the DOM.
func (p *Page) PresentElements(ctx context.Context, loc Locator, opts ...CallOption) ([]Element, error) {
	return p.allIn(ctx, p.driver, loc, Present, newCallOpts(opts))
}

// VisibleElements returns all elements both present and displayed.
func (p *Page) VisibleElements(ctx context.Context, loc Locator, opts ...CallOption) ([]Element, error) {
	return p.allIn(ctx, p.driver, loc, Visible, newCallOpts(opts))
}

// PresentChild returns the first child of parent matching loc.
func (p *Page) PresentChild(ctx context.Context, parent Element, loc Locator, opts ...CallOption) (Element, error) {
	return p.firstIn(ctx, parent, loc, Present, newCallOpts(opts))
}

// VisibleChild returns the first displayed child of parent matching loc.
func (p *Page) VisibleChild(ctx context.Context, parent Element, loc Locator, opts ...CallOption) (Element, error) {
	return p.firstIn(ctx, parent, loc, Visible, newCallOpts(opts))
}

// PresentChildren returns all children of parent matching loc.
func (p *Page) PresentChildren(ctx context.Context, parent Element, loc Locator, opts ...CallOption) ([]Element, error) {
	return p.allIn(ctx, parent, loc, Present, newCallOpts(opts))
}

// VisibleChildren returns all displayed children of parent matching loc.
func (p *Page) VisibleChildren(ctx context.Context, parent Element, loc Locator, opts ...CallOption) ([]Element, error) {
	return p.allIn(ctx, parent, loc, Visible, newCallOpts(opts))
}

// -- Click family --

// Click waits for a clickable element and clicks it once.
func (p *Page) Click(ctx context.Context, loc Locator, opts ...CallOption) error {
	return p.click(ctx, loc, newCallOpts(opts))
}

// AltClick clicks with the alt key held.
func (p *Page) AltClick(ctx context.Context, loc Locator, opts ...CallOption) error {
	return p.click(ctx, loc, newCallOpts(opts), ModAlt)
}

// ShiftClick clicks with the shift key held.
func (p *Page) ShiftClick(ctx context.Context, loc Locator, opts ...CallOption) error {
	return p.click(ctx, loc, newCallOpts(opts), ModShift)
}

// CtrlClick clicks with the control key held.
func (p *Page) CtrlClick(ctx context.Context, loc Locator, opts ...CallOption) error {
	return p.click(ctx, loc, newCallOpts(opts), ModCtrl)
}

func (p *Page) click(ctx context.Context, loc Locator, o callOpts, mods ...Modifier) error {
	el, err := p.first(ctx, loc, Clickable, o)
	if err != nil {
		return err
	}
	// The mutating step runs once; a stale or non-interactable failure
	// here bubbles to the caller unretried.
	if err := el.Click(ctx, mods...); err != nil {
		return fmt.Errorf("click %s: %w", loc, err)
	}
	return nil
}

// ScrollIntoView scrolls the first matching element into the viewport.
func (p *Page) ScrollIntoView(ctx context.Context, loc Locator, opts ...CallOption) error {
	el, err := p.first(ctx, loc, Present, newCallOpts(opts))
	if err != nil {
		return err
	}
	if err := el.ScrollIntoView(ctx); err != nil {
		return fmt.Errorf("scroll %s into view: %w", loc, err)
	}
	return nil
}

// Upload sends file paths to a file input. The input has to be visible,
// which usually means styling it display-block in the fixture.
func (p *Page) Upload(ctx context.Context, loc Locator, paths []string, opts ...CallOption) error {
	el, err := p.first(ctx, loc, Visible, newCallOpts(opts))
	if err != nil {
		return err
	}
	if err := el.SetFiles(ctx, paths...); err != nil {
		return fmt.Errorf("upload to %s: %w", loc, err)
	}
	return nil
}
