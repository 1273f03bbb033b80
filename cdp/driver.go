// Package cdp adapts a chromedp browser session to the basepage driver
// surface. Every method expects a context created by chromedp.NewContext;
// the driver itself holds no connection state.
package cdp

import (
	"context"
	"fmt"
	"strings"

	cdpproto "github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/basepage"
)

// Driver implements basepage.Driver over the Chrome DevTools Protocol.
type Driver struct {
	logger *zap.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for protocol-level diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// New returns a Driver. The browser session travels in the context passed
// to each call, so one Driver can serve any number of tabs.
func New(opts ...Option) *Driver {
	d := &Driver{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.Named("cdp")
	return d
}

// Navigate loads url in the tab owned by ctx and blocks until the page
// load event fires.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	d.logger.Debug("navigating", zap.String("url", url))
	if err := chromedp.Run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// FindElements returns all elements currently matching loc without
// waiting. An empty page is an empty slice, not an error.
func (d *Driver) FindElements(ctx context.Context, loc basepage.Locator) ([]basepage.Element, error) {
	sel, by, _, err := translate(loc)
	if err != nil {
		return nil, err
	}

	var nodes []*cdpproto.Node
	if err := chromedp.Run(ctx, chromedp.Nodes(sel, &nodes, by, chromedp.AtLeast(0))); err != nil {
		return nil, classify(err)
	}

	els := make([]basepage.Element, 0, len(nodes))
	for _, n := range nodes {
		els = append(els, &element{node: n, logger: d.logger})
	}
	return els, nil
}

// MoveMouse moves the pointer to an absolute viewport position.
func (d *Driver) MoveMouse(ctx context.Context, x, y float64) error {
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return input.DispatchMouseEvent(input.MouseMoved, x, y).Do(ctx)
	}))
	return classify(err)
}

// DragAndDrop drags source onto target with a pressed-move-release
// sequence through the midpoint, which is enough for HTML5 sortable
// widgets that track mousemove.
func (d *Driver) DragAndDrop(ctx context.Context, source, target basepage.Element) error {
	src, err := ownElement(source)
	if err != nil {
		return err
	}
	dst, err := ownElement(target)
	if err != nil {
		return err
	}

	err = chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		from, err := src.center(ctx)
		if err != nil {
			return err
		}
		to, err := dst.center(ctx)
		if err != nil {
			return err
		}
		return drag(ctx, from, to)
	}))
	return classify(err)
}

// DragAndDropBy drags source by a viewport offset.
func (d *Driver) DragAndDropBy(ctx context.Context, source basepage.Element, dx, dy float64) error {
	src, err := ownElement(source)
	if err != nil {
		return err
	}

	err = chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		from, err := src.center(ctx)
		if err != nil {
			return err
		}
		return drag(ctx, from, point{x: from.x + dx, y: from.y + dy})
	}))
	return classify(err)
}

func drag(ctx context.Context, from, to point) error {
	steps := []*input.DispatchMouseEventParams{
		input.DispatchMouseEvent(input.MousePressed, from.x, from.y).
			WithButton(input.Left).
			WithClickCount(1),
		input.DispatchMouseEvent(input.MouseMoved, (from.x+to.x)/2, (from.y+to.y)/2).
			WithButton(input.Left),
		input.DispatchMouseEvent(input.MouseMoved, to.x, to.y).
			WithButton(input.Left),
		input.DispatchMouseEvent(input.MouseReleased, to.x, to.y).
			WithButton(input.Left).
			WithClickCount(1),
	}
	for _, step := range steps {
		if err := step.Do(ctx); err != nil {
			return err
		}
	}
	return nil
}

func ownElement(el basepage.Element) (*element, error) {
	e, ok := el.(*element)
	if !ok {
		return nil, fmt.Errorf("element %T was not produced by this driver", el)
	}
	return e, nil
}

// translate maps a locator onto a chromedp selector and query option.
// The xpath flag tells child queries to scope by path prefix instead of
// FromNode, since BySearch ignores node scoping.
func translate(loc basepage.Locator) (sel string, by chromedp.QueryOption, xpath bool, err error) {
	switch loc.Strategy {
	case basepage.ByID:
		return fmt.Sprintf(`[id=%q]`, loc.Selector), chromedp.ByQueryAll, false, nil
	case basepage.ByName:
		return fmt.Sprintf(`[name=%q]`, loc.Selector), chromedp.ByQueryAll, false, nil
	case basepage.ByCSS:
		return loc.Selector, chromedp.ByQueryAll, false, nil
	case basepage.ByClassName:
		return "." + loc.Selector, chromedp.ByQueryAll, false, nil
	case basepage.ByTagName:
		return loc.Selector, chromedp.ByQueryAll, false, nil
	case basepage.ByXPath:
		return loc.Selector, chromedp.BySearch, true, nil
	case basepage.ByLinkText:
		return fmt.Sprintf(`//a[normalize-space(.)=%s]`, xpathLiteral(loc.Selector)), chromedp.BySearch, true, nil
	default:
		return "", nil, false, fmt.Errorf("unsupported locator strategy %q", loc.Strategy)
	}
}

// xpathLiteral quotes s as an XPath string literal. XPath 1.0 has no
// escaping, so text containing both quote kinds is stitched with concat.
func xpathLiteral(s string) string {
	switch {
	case !strings.Contains(s, `'`):
		return `'` + s + `'`
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	default:
		parts := strings.Split(s, `'`)
		for i, p := range parts {
			parts[i] = `'` + p + `'`
		}
		return "concat(" + strings.Join(parts, `, "'", `) + ")"
	}
}

// classify maps protocol errors about vanished nodes onto
// basepage.ErrStaleElement so the wrapper can re-find and retry.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "Could not find node") ||
		strings.Contains(msg, "No node with given id") ||
		strings.Contains(msg, "node with given id does not belong") {
		return fmt.Errorf("%w: %v", basepage.ErrStaleElement, err)
	}
	return err
}
