package basepage

import "context"

// Modifier is a keyboard modifier held during a mouse action.
// The bit values match the CDP input domain so drivers can pass them through.
type Modifier int64

const (
	ModAlt   Modifier = 1 << iota // 1
	ModCtrl                       // 2
	ModMeta                       // 4
	ModShift                      // 8
)

// Driver is the surface the wrapper consumes from the underlying
// browser-automation library. A driver session is a shared external
// resource: the wrapper assumes exclusive, sequential use by one caller
// and performs no locking of its own.
type Driver interface {
	// FindElements returns all elements currently matching the locator.
	// An empty result is not an error; the wrapper owns the retrying.
	FindElements(ctx context.Context, loc Locator) ([]Element, error)

	// MoveMouse moves the pointer to an absolute viewport position.
	MoveMouse(ctx context.Context, x, y float64) error

	// DragAndDrop drags source onto target.
	DragAndDrop(ctx context.Context, source, target Element) error

	// DragAndDropBy drags source by a viewport offset.
	DragAndDropBy(ctx context.Context, source Element, dx, dy float64) error
}

// Element is a transient handle to a found UI element, valid only until
// the page changes. The wrapper uses a handle at most once, immediately
// after finding it, and then discards it.
type Element interface {
	FindElements(ctx context.Context, loc Locator) ([]Element, error)

	Click(ctx context.Context, mods ...Modifier) error
	SendKeys(ctx context.Context, text string) error
	Clear(ctx context.Context) error
	SetValue(ctx context.Context, value string) error
	SetFiles(ctx context.Context, paths ...string) error

	Text(ctx context.Context) (string, error)
	// Attribute reports the attribute value and whether it is present.
	Attribute(ctx context.Context, name string) (string, bool, error)
	Displayed(ctx context.Context) (bool, error)
	Enabled(ctx context.Context) (bool, error)

	Hover(ctx context.Context) error
	ScrollIntoView(ctx context.Context) error
}

// finder is satisfied by both Driver and Element, letting the same
// find-with-retry loop serve page-level and child queries.
type finder interface {
	FindElements(ctx context.Context, loc Locator) ([]Element, error)
}
