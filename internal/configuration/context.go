package configuration

import (
	"regexp"
	"slices"
	"strings"

	"github.com/thoreinstein/confcheck/internal/errors"
)

// Context names a deployment environment, optionally with sub-contexts
// separated by a slash ("Production/Live").
type Context string

// Base contexts. Every context starts with one of these.
const (
	Development Context = "Development"
	Production  Context = "Production"
	Testing     Context = "Testing"
)

// contextSeparator separates a context from its sub-contexts.
const contextSeparator = "/"

var segmentPattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// DefaultContexts returns the three base contexts in canonical order.
func DefaultContexts() []Context {
	return []Context{Development, Production, Testing}
}

// ParseContext validates s and returns it as a Context.
func ParseContext(s string) (Context, error) {
	c := Context(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks that c has a known base and well-formed segments.
func (c Context) Validate() error {
	if c == "" {
		return errors.Wrap(errors.ErrUnknownContext, "context is empty")
	}
	segments := strings.Split(string(c), contextSeparator)
	if !slices.Contains(DefaultContexts(), Context(segments[0])) {
		return errors.Wrapf(errors.ErrUnknownContext,
			"%q must start with Development, Production or Testing", string(c))
	}
	for _, seg := range segments[1:] {
		if !segmentPattern.MatchString(seg) {
			return errors.Wrapf(errors.ErrUnknownContext,
				"%q has invalid sub-context %q", string(c), seg)
		}
	}
	return nil
}

// String returns the context identifier.
func (c Context) String() string {
	return string(c)
}

// Base returns the root context ("Production" for "Production/Live").
func (c Context) Base() Context {
	base, _, _ := strings.Cut(string(c), contextSeparator)
	return Context(base)
}

// Parent returns the enclosing context and true, or "" and false for a base context.
func (c Context) Parent() (Context, bool) {
	i := strings.LastIndex(string(c), contextSeparator)
	if i < 0 {
		return "", false
	}
	return c[:i], true
}

// Hierarchy returns the context names from least to most specific:
// "Production/Live" yields [Production, Production/Live].
func (c Context) Hierarchy() []Context {
	segments := strings.Split(string(c), contextSeparator)
	out := make([]Context, 0, len(segments))
	for i := range segments {
		out = append(out, Context(strings.Join(segments[:i+1], contextSeparator)))
	}
	return out
}
