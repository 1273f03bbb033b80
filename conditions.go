package basepage

import "context"

// Condition is a predicate an element must satisfy before an action is
// applied to it. Conditions only read element state; the wrapper repeats
// them freely while polling.
type Condition struct {
	Name string
	Test func(ctx context.Context, el Element) (bool, error)
}

// Present holds for any element returned by the driver.
var Present = Condition{
	Name: "present",
	Test: func(ctx context.Context, el Element) (bool, error) {
		return true, nil
	},
}

// Visible holds for elements that are displayed.
var Visible = Condition{
	Name: "visible",
	Test: func(ctx context.Context, el Element) (bool, error) {
		return el.Displayed(ctx)
	},
}

// Invisible holds for elements attached to the DOM but not displayed.
// For waiting until no element matches at all, use Page.WaitUntilGone.
var Invisible = Condition{
	Name: "invisible",
	Test: func(ctx context.Context, el Element) (bool, error) {
		shown, err := el.Displayed(ctx)
		if err != nil {
			return false, err
		}
		return !shown, nil
	},
}

// Clickable holds for elements that are both displayed and enabled.
var Clickable = Condition{
	Name: "clickable",
	Test: func(ctx context.Context, el Element) (bool, error) {
		shown, err := el.Displayed(ctx)
		if err != nil || !shown {
			return false, err
		}
		return el.Enabled(ctx)
	},
}
