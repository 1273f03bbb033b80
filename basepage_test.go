package basepage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// -- Fakes --

// fakeElement is an in-memory Element with call counters, so tests can
// assert exactly how often the wrapper touched it.
type fakeElement struct {
	displayed bool
	enabled   bool
	text      string
	attrs     map[string]string
	children  map[string][]Element

	clickErr     error
	keysErr      error
	displayedErr error

	clicks    int
	clickMods [][]Modifier
	sent      []string
	clears    int
	values    []string
	files     [][]string
	hovers    int
	scrolls   int
}

func newFakeElement() *fakeElement {
	return &fakeElement{displayed: true, enabled: true}
}

func (e *fakeElement) FindElements(ctx context.Context, loc Locator) ([]Element, error) {
	return e.children[loc.Selector], nil
}

func (e *fakeElement) Click(ctx context.Context, mods ...Modifier) error {
	e.clicks++
	e.clickMods = append(e.clickMods, mods)
	return e.clickErr
}

func (e *fakeElement) SendKeys(ctx context.Context, text string) error {
	e.sent = append(e.sent, text)
	return e.keysErr
}

func (e *fakeElement) Clear(ctx context.Context) error {
	e.clears++
	return nil
}

func (e *fakeElement) SetValue(ctx context.Context, value string) error {
	e.values = append(e.values, value)
	return nil
}

func (e *fakeElement) SetFiles(ctx context.Context, paths ...string) error {
	e.files = append(e.files, paths)
	return nil
}

func (e *fakeElement) Text(ctx context.Context) (string, error) {
	return e.text, nil
}

func (e *fakeElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, ok := e.attrs[name]
	return v, ok, nil
}

func (e *fakeElement) Displayed(ctx context.Context) (bool, error) {
	return e.displayed, e.displayedErr
}

func (e *fakeElement) Enabled(ctx context.Context) (bool, error) {
	return e.enabled, nil
}

func (e *fakeElement) Hover(ctx context.Context) error {
	e.hovers++
	return nil
}

func (e *fakeElement) ScrollIntoView(ctx context.Context) error {
	e.scrolls++
	return nil
}

// fakeDriver serves elements keyed by resolved selector. appearAfter
// delays the first non-empty find result; vanishAfter empties results
// again after that many finds.
type fakeDriver struct {
	elements    map[string][]Element
	findErr     error
	appearAfter int
	vanishAfter int

	findCalls []Locator
	moves     [][2]float64
	drags     [][2]Element
	dragBys   []struct {
		el     Element
		dx, dy float64
	}
}

func (d *fakeDriver) FindElements(ctx context.Context, loc Locator) ([]Element, error) {
	d.findCalls = append(d.findCalls, loc)
	if d.findErr != nil {
		return nil, d.findErr
	}
	n := len(d.findCalls)
	if n <= d.appearAfter {
		return nil, nil
	}
	if d.vanishAfter > 0 && n > d.vanishAfter {
		return nil, nil
	}
	return d.elements[loc.Selector], nil
}

func (d *fakeDriver) MoveMouse(ctx context.Context, x, y float64) error {
	d.moves = append(d.moves, [2]float64{x, y})
	return nil
}

func (d *fakeDriver) DragAndDrop(ctx context.Context, source, target Element) error {
	d.drags = append(d.drags, [2]Element{source, target})
	return nil
}

func (d *fakeDriver) DragAndDropBy(ctx context.Context, source Element, dx, dy float64) error {
	d.dragBys = append(d.dragBys, struct {
		el     Element
		dx, dy float64
	}{source, dx, dy})
	return nil
}

// countingResolver counts Resolve calls on top of the default resolver.
type countingResolver struct {
	calls int
}

func (r *countingResolver) Resolve(loc Locator, params Params) (Locator, error) {
	r.calls++
	return TemplateResolver{}.Resolve(loc, params)
}

func driverWith(selector string, els ...Element) *fakeDriver {
	return &fakeDriver{elements: map[string][]Element{selector: els}}
}

// newTestPage keeps retry budgets small so failing waits stay fast.
func newTestPage(d Driver, r Resolver) *Page {
	return New(d,
		WithResolver(r),
		WithDefaultTimeout(200*time.Millisecond),
		WithDefaultPoll(20*time.Millisecond),
	)
}

var loginButton = Locator{Strategy: ByCSS, Selector: "#login"}

// -- Find and retry behavior --

func TestClickHappyPath(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("#login", el)
	r := &countingResolver{}
	p := newTestPage(d, r)

	err := p.Click(context.Background(), loginButton)
	require.NoError(t, err)

	assert.Equal(t, 1, r.calls, "resolver runs exactly once per call")
	assert.Len(t, d.findCalls, 1, "a present element needs one find")
	assert.Equal(t, 1, el.clicks, "exactly one action is applied")
}

func TestResolverRunsOnceAcrossRetries(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("#login", el)
	d.appearAfter = 2
	r := &countingResolver{}
	p := newTestPage(d, r)

	err := p.Click(context.Background(), loginButton)
	require.NoError(t, err)

	assert.Equal(t, 1, r.calls, "retries must repeat the find, not the resolution")
	assert.GreaterOrEqual(t, len(d.findCalls), 3)
	assert.Equal(t, 1, el.clicks)
}

func TestClickNeverPresent(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := &fakeDriver{elements: map[string][]Element{}}
	p := newTestPage(d, &countingResolver{})

	err := p.Click(context.Background(), loginButton, WithTimeout(200*time.Millisecond))

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.ErrorIs(t, err, ErrElementNotFound)
	assert.Equal(t, "clickable", nf.Condition)
	assert.Zero(t, el.clicks, "no action without a matching element")

	// 200ms polled at 20ms with 25% growth lands around six finds.
	assert.GreaterOrEqual(t, len(d.findCalls), 3)
	assert.LessOrEqual(t, len(d.findCalls), 9)
}

func TestApproximateFindAttempts(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := &fakeDriver{elements: map[string][]Element{}}
	p := New(d,
		WithDefaultTimeout(2*time.Second),
		WithDefaultPoll(500*time.Millisecond),
	)

	_, err := p.PresentElement(context.Background(), loginButton)
	assert.ErrorIs(t, err, ErrElementNotFound)

	// A 2s budget at 500ms with growth gives roughly four attempts.
	assert.GreaterOrEqual(t, len(d.findCalls), 3)
	assert.LessOrEqual(t, len(d.findCalls), 5)
}

func TestValidationErrorBeforeAnyDriverCall(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := driverWith("#login", newFakeElement())
	p := newTestPage(d, &countingResolver{})

	err := p.Click(context.Background(), loginButton, WithParams(Params{"row": "7"}))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, d.findCalls, "validation failures must precede driver calls")
}

func TestStaleActionBubblesUnretried(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	el.clickErr = fmt.Errorf("dispatch click: %w", ErrStaleElement)
	d := driverWith("#login", el)
	p := newTestPage(d, &countingResolver{})

	err := p.Click(context.Background(), loginButton)

	assert.ErrorIs(t, err, ErrStaleElement)
	assert.Equal(t, 1, el.clicks, "the mutating step is never auto-retried")
	assert.Len(t, d.findCalls, 1)
}

func TestStaleFindIsRetried(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("#login", el)
	d.findErr = fmt.Errorf("query nodes: %w", ErrStaleElement)
	p := newTestPage(d, &countingResolver{})

	err := p.Click(context.Background(), loginButton, WithTimeout(100*time.Millisecond))

	// Stale during the read-only find phase is survivable; here it never
	// clears, so the budget runs out instead of the error surfacing raw.
	assert.ErrorIs(t, err, ErrElementNotFound)
	assert.Greater(t, len(d.findCalls), 1)
}

func TestVisibleElementSkipsHiddenMatches(t *testing.T) {
	defer goleak.VerifyNone(t)

	hidden := newFakeElement()
	hidden.displayed = false
	shown := newFakeElement()
	d := driverWith(".item", hidden, shown)
	p := newTestPage(d, &countingResolver{})

	el, err := p.VisibleElement(context.Background(), Locator{Strategy: ByCSS, Selector: ".item"})
	require.NoError(t, err)
	assert.Same(t, shown, el)
}

func TestClickableRequiresEnabled(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	el.enabled = false
	d := driverWith("#login", el)
	p := newTestPage(d, &countingResolver{})

	err := p.Click(context.Background(), loginButton, WithTimeout(60*time.Millisecond))

	assert.ErrorIs(t, err, ErrElementNotFound)
	assert.Zero(t, el.clicks)
}

func TestModifierClicks(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("#login", el)
	p := newTestPage(d, &countingResolver{})
	ctx := context.Background()

	require.NoError(t, p.AltClick(ctx, loginButton))
	require.NoError(t, p.ShiftClick(ctx, loginButton))
	require.NoError(t, p.CtrlClick(ctx, loginButton))

	require.Len(t, el.clickMods, 3)
	assert.Equal(t, []Modifier{ModAlt}, el.clickMods[0])
	assert.Equal(t, []Modifier{ModShift}, el.clickMods[1])
	assert.Equal(t, []Modifier{ModCtrl}, el.clickMods[2])
}

// -- Text entry --

func TestEnterTextDefaultsToClickFirst(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("#user", el)
	p := newTestPage(d, &countingResolver{})

	err := p.EnterText(context.Background(), Locator{Strategy: ByCSS, Selector: "#user"}, "admin")
	require.NoError(t, err)

	assert.Equal(t, 1, el.clicks)
	assert.Zero(t, el.clears)
	assert.Equal(t, []string{"admin"}, el.sent)
}

func TestEnterTextWithClearAndEnter(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("#user", el)
	p := newTestPage(d, &countingResolver{})

	err := p.EnterText(context.Background(), Locator{Strategy: ByCSS, Selector: "#user"},
		"admin", WithClear(), WithEnter())
	require.NoError(t, err)

	assert.Equal(t, 1, el.clicks)
	assert.Equal(t, 1, el.clears)
	assert.Equal(t, []string{"admin\n"}, el.sent)
}

func TestEnterTextWithoutClick(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("#user", el)
	p := newTestPage(d, &countingResolver{})

	err := p.EnterText(context.Background(), Locator{Strategy: ByCSS, Selector: "#user"},
		"admin", WithoutClick())
	require.NoError(t, err)

	assert.Zero(t, el.clicks)
	assert.Equal(t, []string{"admin"}, el.sent)
}

func TestEraseTextWithBackspaces(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("#user", el)
	p := newTestPage(d, &countingResolver{})

	err := p.EraseText(context.Background(), Locator{Strategy: ByCSS, Selector: "#user"},
		WithBackspaces(3))
	require.NoError(t, err)

	assert.Equal(t, 1, el.clicks)
	require.Len(t, el.sent, 1)
	assert.Equal(t, "\b\b\b", el.sent[0])
}

// -- Reading --

func TestTextFallsBackToValueAttribute(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	el.attrs = map[string]string{"value": "typed input"}
	d := driverWith("#user", el)
	p := newTestPage(d, &countingResolver{})

	text, err := p.Text(context.Background(), Locator{Strategy: ByCSS, Selector: "#user"})
	require.NoError(t, err)
	assert.Equal(t, "typed input", text)
}

func TestAttributeMissingReportsNotFound(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	el.attrs = map[string]string{"href": "/home"}
	d := driverWith("a", el)
	p := newTestPage(d, &countingResolver{})
	ctx := context.Background()
	loc := Locator{Strategy: ByTagName, Selector: "a"}

	href, err := p.Attribute(ctx, loc, "href")
	require.NoError(t, err)
	assert.Equal(t, "/home", href)

	_, err = p.Attribute(ctx, loc, "target")
	assert.ErrorIs(t, err, ErrElementNotFound)
}

// -- Text search --

func TestIsElementWithTextPresentSinglePass(t *testing.T) {
	defer goleak.VerifyNone(t)

	miss := newFakeElement()
	miss.text = "Cancel"
	hit := newFakeElement()
	hit.text = "  Save changes  "
	d := driverWith("button", miss, hit)
	p := newTestPage(d, &countingResolver{})
	loc := Locator{Strategy: ByTagName, Selector: "button"}

	el, ok, err := p.IsElementWithTextPresent(context.Background(), loc, "Save")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, hit, el)
	assert.Len(t, d.findCalls, 1, "the probe makes a single pass")

	_, ok, err = p.IsElementWithTextPresent(context.Background(), loc, "Delete")
	require.NoError(t, err)
	assert.False(t, ok, "an absent text is a negative answer, not an error")
}

func TestIsElementWithTextPresentExactMatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	el.text = "Save changes"
	d := driverWith("button", el)
	p := newTestPage(d, &countingResolver{})
	loc := Locator{Strategy: ByTagName, Selector: "button"}

	_, ok, err := p.IsElementWithTextPresent(context.Background(), loc, "Save", ExactMatch())
	require.NoError(t, err)
	assert.False(t, ok, "exact match must not accept a substring")

	_, ok, err = p.IsElementWithTextPresent(context.Background(), loc, "Save changes", ExactMatch())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestElementWithTextWaitsAndTimesOut(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	el.text = "Ready"
	d := driverWith("#status", el)
	d.appearAfter = 2
	p := newTestPage(d, &countingResolver{})
	loc := Locator{Strategy: ByCSS, Selector: "#status"}

	found, err := p.ElementWithText(context.Background(), loc, "Ready")
	require.NoError(t, err)
	assert.Same(t, el, found)

	_, err = p.ElementWithText(context.Background(), loc, "Broken", WithTimeout(60*time.Millisecond))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.Condition, "Broken")
}

// -- Waiting --

func TestWaitUntilGone(t *testing.T) {
	defer goleak.VerifyNone(t)

	spinner := newFakeElement()
	d := driverWith(".spinner", spinner)
	d.vanishAfter = 2
	p := newTestPage(d, &countingResolver{})

	err := p.WaitUntilGone(context.Background(), Locator{Strategy: ByCSS, Selector: ".spinner"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(d.findCalls), 3)
}

func TestWaitUntilGoneAcceptsHiddenElement(t *testing.T) {
	defer goleak.VerifyNone(t)

	spinner := newFakeElement()
	spinner.displayed = false
	d := driverWith(".spinner", spinner)
	p := newTestPage(d, &countingResolver{})

	err := p.WaitUntilGone(context.Background(), Locator{Strategy: ByCSS, Selector: ".spinner"})
	require.NoError(t, err)
	assert.Len(t, d.findCalls, 1)
}

func TestWaitUntilGoneTimesOutWhileVisible(t *testing.T) {
	defer goleak.VerifyNone(t)

	spinner := newFakeElement()
	d := driverWith(".spinner", spinner)
	p := newTestPage(d, &countingResolver{})

	err := p.WaitUntilGone(context.Background(), Locator{Strategy: ByCSS, Selector: ".spinner"},
		WithTimeout(60*time.Millisecond))
	assert.ErrorIs(t, err, ErrWaitTimeout)
}

func TestWaitForText(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := newFakeElement()
	a.text = "row one"
	b := newFakeElement()
	b.text = "row two"
	d := driverWith(".row", a, b)
	p := newTestPage(d, &countingResolver{})
	loc := Locator{Strategy: ByCSS, Selector: ".row"}

	els, err := p.WaitForText(context.Background(), loc)
	require.NoError(t, err)
	assert.Len(t, els, 2)

	b.text = ""
	_, err = p.WaitForText(context.Background(), loc, WithTimeout(60*time.Millisecond))
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestWaitForAttribute(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	el.attrs = map[string]string{"class": "btn btn-ready"}
	d := driverWith("#go", el)
	p := newTestPage(d, &countingResolver{})
	loc := Locator{Strategy: ByCSS, Selector: "#go"}
	ctx := context.Background()

	require.NoError(t, p.WaitForAttribute(ctx, loc, "class", "ready"))

	err := p.WaitForAttribute(ctx, loc, "class", "disabled", WithTimeout(60*time.Millisecond))
	assert.ErrorIs(t, err, ErrWaitTimeout)
	assert.GreaterOrEqual(t, len(d.findCalls), 2, "the element is re-found on every poll")
}

// -- Widgets --

func TestSelectByValue(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("#lang", el)
	p := newTestPage(d, &countingResolver{})

	err := p.SelectByValue(context.Background(), Locator{Strategy: ByCSS, Selector: "#lang"}, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, el.values)
}

func TestSelectByText(t *testing.T) {
	defer goleak.VerifyNone(t)

	dropDown := newFakeElement()
	french := newFakeElement()
	french.text = "French"
	english := newFakeElement()
	english.text = "English (US)"
	d := &fakeDriver{elements: map[string][]Element{
		"#lang":        {dropDown},
		"#lang option": {french, english},
	}}
	p := newTestPage(d, &countingResolver{})

	err := p.SelectByText(context.Background(),
		Locator{Strategy: ByCSS, Selector: "#lang"},
		Locator{Strategy: ByCSS, Selector: "#lang option"},
		"English")
	require.NoError(t, err)

	assert.Equal(t, 1, dropDown.clicks, "the drop-down is opened first")
	assert.Equal(t, 1, english.clicks)
	assert.Zero(t, french.clicks)
}

func TestSelectByTextNoMatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	dropDown := newFakeElement()
	option := newFakeElement()
	option.text = "French"
	d := &fakeDriver{elements: map[string][]Element{
		"#lang":        {dropDown},
		"#lang option": {option},
	}}
	p := newTestPage(d, &countingResolver{})

	err := p.SelectByText(context.Background(),
		Locator{Strategy: ByCSS, Selector: "#lang"},
		Locator{Strategy: ByCSS, Selector: "#lang option"},
		"Klingon")
	assert.ErrorIs(t, err, ErrElementNotFound)
	assert.Zero(t, option.clicks)
}

func TestHoverAndUnhover(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("#menu", el)
	p := newTestPage(d, &countingResolver{})
	ctx := context.Background()

	got, err := p.Hover(ctx, Locator{Strategy: ByCSS, Selector: "#menu"})
	require.NoError(t, err)
	assert.Same(t, el, got)
	assert.Equal(t, 1, el.hovers)

	require.NoError(t, p.Unhover(ctx))
	require.Len(t, d.moves, 1)
	assert.Equal(t, [2]float64{0, 0}, d.moves[0])
}

func TestWithHoverClosesOnError(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("#menu", el)
	p := newTestPage(d, &countingResolver{})

	boom := fmt.Errorf("inner action failed")
	err := p.WithHover(context.Background(), Locator{Strategy: ByCSS, Selector: "#menu"},
		func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Len(t, d.moves, 1, "the hover is closed even when fn fails")
}

func TestDragAndDrop(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := newFakeElement()
	dst := newFakeElement()
	d := &fakeDriver{elements: map[string][]Element{
		"#card":  {src},
		"#trash": {dst},
	}}
	p := newTestPage(d, &countingResolver{})

	err := p.DragAndDrop(context.Background(),
		Locator{Strategy: ByCSS, Selector: "#card"},
		Locator{Strategy: ByCSS, Selector: "#trash"})
	require.NoError(t, err)

	require.Len(t, d.drags, 1)
	assert.Same(t, src, d.drags[0][0])
	assert.Same(t, dst, d.drags[0][1])
}

func TestDragAndDropBy(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := newFakeElement()
	d := driverWith("#card", src)
	p := newTestPage(d, &countingResolver{})

	err := p.DragAndDropBy(context.Background(),
		Locator{Strategy: ByCSS, Selector: "#card"}, 40, -15)
	require.NoError(t, err)

	require.Len(t, d.dragBys, 1)
	assert.Same(t, src, d.dragBys[0].el)
	assert.Equal(t, float64(40), d.dragBys[0].dx)
	assert.Equal(t, float64(-15), d.dragBys[0].dy)
}

func TestUpload(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith("input[type=file]", el)
	p := newTestPage(d, &countingResolver{})

	err := p.Upload(context.Background(),
		Locator{Strategy: ByCSS, Selector: "input[type=file]"},
		[]string{"/tmp/a.png", "/tmp/b.png"})
	require.NoError(t, err)

	require.Len(t, el.files, 1)
	assert.Equal(t, []string{"/tmp/a.png", "/tmp/b.png"}, el.files[0])
}

// -- Child queries --

func TestChildQueries(t *testing.T) {
	defer goleak.VerifyNone(t)

	cell := newFakeElement()
	cell.text = "42"
	hiddenCell := newFakeElement()
	hiddenCell.displayed = false
	row := newFakeElement()
	row.children = map[string][]Element{"td": {hiddenCell, cell}}
	d := driverWith("#row-7", row)
	p := newTestPage(d, &countingResolver{})
	ctx := context.Background()

	parent, err := p.PresentElement(ctx, Locator{Strategy: ByCSS, Selector: "#row-7"})
	require.NoError(t, err)

	cellLoc := Locator{Strategy: ByTagName, Selector: "td"}

	children, err := p.PresentChildren(ctx, parent, cellLoc)
	require.NoError(t, err)
	assert.Len(t, children, 2)

	visible, err := p.VisibleChild(ctx, parent, cellLoc)
	require.NoError(t, err)
	assert.Same(t, cell, visible)
}

func TestScrollIntoView(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	el.displayed = false // scrolling works on present, not visible, elements
	d := driverWith("#footer", el)
	p := newTestPage(d, &countingResolver{})

	err := p.ScrollIntoView(context.Background(), Locator{Strategy: ByCSS, Selector: "#footer"})
	require.NoError(t, err)
	assert.Equal(t, 1, el.scrolls)
}

// -- Parameterized locators end to end --

func TestParameterizedLocatorReachesDriverResolved(t *testing.T) {
	defer goleak.VerifyNone(t)

	el := newFakeElement()
	d := driverWith(`tr[data-id="7"]`, el)
	p := newTestPage(d, &countingResolver{})

	err := p.Click(context.Background(),
		Locator{Strategy: ByCSS, Selector: `tr[data-id="{id}"]`},
		WithParams(Params{"id": "7"}))
	require.NoError(t, err)

	require.NotEmpty(t, d.findCalls)
	assert.Equal(t, `tr[data-id="7"]`, d.findCalls[0].Selector)
	assert.Equal(t, 1, el.clicks)
}
