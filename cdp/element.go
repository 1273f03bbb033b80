package cdp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	cdpproto "github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/basepage"
)

// element is a transient handle around a resolved DOM node. A navigation
// or DOM rewrite invalidates the node ID; operations then surface
// basepage.ErrStaleElement.
type element struct {
	node   *cdpproto.Node
	logger *zap.Logger
}

func (e *element) ids() []cdpproto.NodeID {
	return []cdpproto.NodeID{e.node.NodeID}
}

// FindElements returns the element's descendants matching loc. CSS-style
// strategies scope with FromNode; xpath strategies prepend the node's
// absolute path because the DevTools search runs document-wide.
func (e *element) FindElements(ctx context.Context, loc basepage.Locator) ([]basepage.Element, error) {
	sel, by, xpath, err := translate(loc)
	if err != nil {
		return nil, err
	}

	var nodes []*cdpproto.Node
	var action chromedp.Action
	if xpath {
		action = chromedp.Nodes(scopeXPath(e.node, sel), &nodes, by, chromedp.AtLeast(0))
	} else {
		action = chromedp.Nodes(sel, &nodes, by, chromedp.FromNode(e.node), chromedp.AtLeast(0))
	}
	if err := chromedp.Run(ctx, action); err != nil {
		return nil, classify(err)
	}

	els := make([]basepage.Element, 0, len(nodes))
	for _, n := range nodes {
		els = append(els, &element{node: n, logger: e.logger})
	}
	return els, nil
}

func scopeXPath(node *cdpproto.Node, sel string) string {
	sel = strings.TrimPrefix(sel, ".")
	return node.FullXPath() + sel
}

// Click clicks the element once. Without modifiers chromedp's click
// handles scrolling and hit-testing; with modifiers the raw mouse events
// are dispatched at the element's center so the modifier bits go through.
func (e *element) Click(ctx context.Context, mods ...basepage.Modifier) error {
	if len(mods) == 0 {
		err := chromedp.Run(ctx,
			chromedp.ScrollIntoView(e.ids(), chromedp.ByNodeID),
			chromedp.Click(e.ids(), chromedp.ByNodeID),
		)
		return classify(err)
	}

	var modifiers input.Modifier
	for _, m := range mods {
		modifiers |= input.Modifier(m)
	}

	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		if err := dom.ScrollIntoViewIfNeeded().WithNodeID(e.node.NodeID).Do(ctx); err != nil {
			return err
		}
		c, err := e.center(ctx)
		if err != nil {
			return err
		}
		press := input.DispatchMouseEvent(input.MousePressed, c.x, c.y).
			WithButton(input.Left).
			WithClickCount(1).
			WithModifiers(modifiers)
		if err := press.Do(ctx); err != nil {
			return err
		}
		release := input.DispatchMouseEvent(input.MouseReleased, c.x, c.y).
			WithButton(input.Left).
			WithClickCount(1).
			WithModifiers(modifiers)
		return release.Do(ctx)
	}))
	return classify(err)
}

// SendKeys types text into the element key by key.
func (e *element) SendKeys(ctx context.Context, text string) error {
	return classify(chromedp.Run(ctx, chromedp.SendKeys(e.ids(), text, chromedp.ByNodeID)))
}

// Clear empties the element's value.
func (e *element) Clear(ctx context.Context) error {
	return classify(chromedp.Run(ctx, chromedp.Clear(e.ids(), chromedp.ByNodeID)))
}

const setValueJS = `function(value) {
	this.value = value;
	this.dispatchEvent(new Event('input', { bubbles: true }));
	this.dispatchEvent(new Event('change', { bubbles: true }));
}`

// SetValue assigns the element's value property and fires the input and
// change events, so framework listeners see it like a user edit. Plain
// attribute assignment would leave selects and reactive forms unaware.
func (e *element) SetValue(ctx context.Context, value string) error {
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(e.node.NodeID).Do(ctx)
		if err != nil {
			return err
		}
		arg, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, exc, err := runtime.CallFunctionOn(setValueJS).
			WithObjectID(obj.ObjectID).
			WithArguments([]*runtime.CallArgument{{Value: arg}}).
			Do(ctx)
		if err != nil {
			return err
		}
		if exc != nil {
			text := exc.Text
			if exc.Exception != nil && exc.Exception.Description != "" {
				text = exc.Exception.Description
			}
			return fmt.Errorf("set value threw: %s", text)
		}
		return nil
	}))
	return classify(err)
}

// SetFiles attaches local file paths to a file input.
func (e *element) SetFiles(ctx context.Context, paths ...string) error {
	return classify(chromedp.Run(ctx, chromedp.SetUploadFiles(e.ids(), paths, chromedp.ByNodeID)))
}

// Text returns the element's visible text.
func (e *element) Text(ctx context.Context) (string, error) {
	var text string
	if err := chromedp.Run(ctx, chromedp.Text(e.ids(), &text, chromedp.ByNodeID)); err != nil {
		return "", classify(err)
	}
	return text, nil
}

// Attribute reports the attribute value and whether it is present.
func (e *element) Attribute(ctx context.Context, name string) (string, bool, error) {
	var value string
	var ok bool
	if err := chromedp.Run(ctx, chromedp.AttributeValue(e.ids(), name, &value, &ok, chromedp.ByNodeID)); err != nil {
		return "", false, classify(err)
	}
	return value, ok, nil
}

// Displayed reports whether the element is rendered with a non-empty box.
// Nodes detached from layout (display:none, zero size) have no box model
// and count as hidden rather than as an error.
func (e *element) Displayed(ctx context.Context) (bool, error) {
	var box *dom.BoxModel
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		b, err := dom.GetBoxModel().WithNodeID(e.node.NodeID).Do(ctx)
		box = b
		return err
	}))
	if err != nil {
		if strings.Contains(err.Error(), "Could not compute box model") {
			return false, nil
		}
		return false, classify(err)
	}
	return box != nil && len(box.Content) >= 8 && box.Width > 0 && box.Height > 0, nil
}

// Enabled reports whether the element accepts interaction, judged by the
// disabled and aria-disabled attributes.
func (e *element) Enabled(ctx context.Context) (bool, error) {
	_, disabled, err := e.Attribute(ctx, "disabled")
	if err != nil {
		return false, err
	}
	if disabled {
		return false, nil
	}
	aria, ok, err := e.Attribute(ctx, "aria-disabled")
	if err != nil {
		return false, err
	}
	return !(ok && aria == "true"), nil
}

// Hover moves the pointer onto the element's center.
func (e *element) Hover(ctx context.Context) error {
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		if err := dom.ScrollIntoViewIfNeeded().WithNodeID(e.node.NodeID).Do(ctx); err != nil {
			return err
		}
		c, err := e.center(ctx)
		if err != nil {
			return err
		}
		return input.DispatchMouseEvent(input.MouseMoved, c.x, c.y).Do(ctx)
	}))
	return classify(err)
}

// ScrollIntoView scrolls the element into the viewport.
func (e *element) ScrollIntoView(ctx context.Context) error {
	return classify(chromedp.Run(ctx, chromedp.ScrollIntoView(e.ids(), chromedp.ByNodeID)))
}

type point struct {
	x, y float64
}

// center returns the centroid of the element's content box. It must run
// inside an ActionFunc so the protocol executor is on ctx.
func (e *element) center(ctx context.Context) (point, error) {
	box, err := dom.GetBoxModel().WithNodeID(e.node.NodeID).Do(ctx)
	if err != nil {
		return point{}, err
	}
	if box == nil || len(box.Content) < 8 {
		return point{}, fmt.Errorf("node %d has no content box: %w", e.node.NodeID, basepage.ErrNotInteractable)
	}
	return point{
		x: (box.Content[0] + box.Content[2] + box.Content[4] + box.Content[6]) / 4,
		y: (box.Content[1] + box.Content[3] + box.Content[5] + box.Content[7]) / 4,
	}, nil
}
