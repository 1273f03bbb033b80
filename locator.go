package basepage

import (
	"fmt"
	"regexp"
	"strings"
)

// Strategy names how a selector string is interpreted by the driver.
// The values mirror the conventional WebDriver strategy names so locators
// read the same in page objects regardless of the backing driver.
type Strategy string

const (
	ByID        Strategy = "id"
	ByName      Strategy = "name"
	ByCSS       Strategy = "css selector"
	ByXPath     Strategy = "xpath"
	ByLinkText  Strategy = "link text"
	ByClassName Strategy = "class name"
	ByTagName   Strategy = "tag name"
)

// Locator identifies zero or more elements in a rendered page.
// It is an opaque pair as far as the wrapper is concerned; any parameter
// substitution happens in a Resolver before the driver ever sees it.
type Locator struct {
	Strategy Strategy
	Selector string
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%q", l.Strategy, l.Selector)
}

// Params carries substitution values for locator templates.
type Params map[string]string

// Resolver translates a locator template plus parameters into a concrete
// locator. Consumers supply their own; it is a required capability declared
// at construction rather than discovered at runtime.
type Resolver interface {
	Resolve(loc Locator, params Params) (Locator, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(loc Locator, params Params) (Locator, error)

func (f ResolverFunc) Resolve(loc Locator, params Params) (Locator, error) {
	return f(loc, params)
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_.-]+)\}`)

// TemplateResolver is the default resolver. It substitutes {name}
// placeholders in the selector with values from params and rejects any
// mismatch between the two before a driver call can happen.
type TemplateResolver struct{}

func (TemplateResolver) Resolve(loc Locator, params Params) (Locator, error) {
	matches := placeholderPattern.FindAllStringSubmatch(loc.Selector, -1)
	if len(matches) == 0 {
		if len(params) > 0 {
			return Locator{}, &ValidationError{
				Locator: loc,
				Reason:  fmt.Sprintf("%d parameter(s) supplied but the selector has no placeholders", len(params)),
			}
		}
		return loc, nil
	}

	selector := loc.Selector
	for _, m := range matches {
		key := m[1]
		value, ok := params[key]
		if !ok {
			return Locator{}, &ValidationError{
				Locator: loc,
				Reason:  fmt.Sprintf("no value for placeholder {%s}", key),
			}
		}
		selector = strings.ReplaceAll(selector, m[0], value)
	}
	return Locator{Strategy: loc.Strategy, Selector: selector}, nil
}
