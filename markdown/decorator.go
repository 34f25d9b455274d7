package markdown

import (
	"net/url"
	"strings"

	"github.com/nezorflame/slackmsg/option"

	"github.com/pkg/errors"
)

// Decorator construction errors
var (
	ErrInvalidDecorator = errors.New("at least one field should be present and valid: [prefix, suffix]")
	ErrInvalidSeparator = errors.New("separator should be present and valid (non-empty string)")
)

// Decorator describes the markup wrapped around a decorated value.
type Decorator interface {
	Prefix() option.Option[string]
	Suffix() option.Option[string]
}

// StringDecorator wraps a single string with a prefix and/or a suffix.
type StringDecorator struct {
	prefix option.Option[string]
	suffix option.Option[string]
}

var _ Decorator = StringDecorator{}

// NewStringDecorator creates a decorator; an empty prefix or suffix is treated as absent,
// but at least one of them must be set.
func NewStringDecorator(prefix, suffix string) (StringDecorator, error) {
	d := StringDecorator{prefix: option.FromString(prefix), suffix: option.FromString(suffix)}
	if !d.prefix.IsPresent() && !d.suffix.IsPresent() {
		return StringDecorator{}, ErrInvalidDecorator
	}
	return d, nil
}

// Of creates a decorator using the same markup as prefix and suffix.
func Of(markup string) (StringDecorator, error) {
	return NewStringDecorator(markup, markup)
}

// OfPrefix creates a prefix-only decorator.
func OfPrefix(prefix string) (StringDecorator, error) {
	return NewStringDecorator(prefix, "")
}

// OfSuffix creates a suffix-only decorator.
func OfSuffix(suffix string) (StringDecorator, error) {
	return NewStringDecorator("", suffix)
}

// Prefix returns the decorator prefix.
func (d StringDecorator) Prefix() option.Option[string] { return d.prefix }

// Suffix returns the decorator suffix.
func (d StringDecorator) Suffix() option.Option[string] { return d.suffix }

// Decorate wraps value, skipping the prefix if value already starts with it
// and the suffix if value already ends with it.
func (d StringDecorator) Decorate(value string) string {
	return decorate(d.prefix, d.suffix, value)
}

// DecorateMultiline decorates every value on its own and joins them with NewlineSeparator.
func (d StringDecorator) DecorateMultiline(values []string) string {
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = d.Decorate(v)
	}
	return strings.Join(lines, NewlineSeparator)
}

func decorate(prefix, suffix option.Option[string], value string) string {
	if p, ok := prefix.Get(); ok && !strings.HasPrefix(value, p) {
		value = p + value
	}
	if s, ok := suffix.Get(); ok && !strings.HasSuffix(value, s) {
		value += s
	}
	return value
}

// LinkDecorator joins a URL and its text with a separator before wrapping them.
type LinkDecorator struct {
	StringDecorator
	separator string
}

var _ Decorator = LinkDecorator{}

// NewLinkDecorator creates a link decorator. The separator is required.
func NewLinkDecorator(prefix, separator, suffix string) (LinkDecorator, error) {
	sd, err := NewStringDecorator(prefix, suffix)
	if err != nil {
		return LinkDecorator{}, err
	}
	if separator == "" {
		return LinkDecorator{}, ErrInvalidSeparator
	}
	return LinkDecorator{StringDecorator: sd, separator: separator}, nil
}

// Separator returns the string placed between the URL and the text.
func (d LinkDecorator) Separator() string { return d.separator }

// Decorate renders the link with its text, e.g. <https://example.com|text>.
func (d LinkDecorator) Decorate(u *url.URL, text string) string {
	return decorate(d.prefix, d.suffix, u.String()+d.separator+text)
}
