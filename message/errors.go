package message

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/nezorflame/slackmsg/markdown"
	"github.com/nezorflame/slackmsg/option"

	"github.com/pkg/errors"
)

// Validation errors. Every returned error wraps one of them together with
// the name of the offending field and the rule or limit it broke.
var (
	ErrRequired           = errors.New("cannot be null or empty")
	ErrTooManyAttachments = errors.New("too many attachments")
	ErrContainsMarkdown   = errors.New("cannot contain markdown")
	ErrTooLong            = errors.New("character limit exceeded")
	ErrInvalidColor       = errors.New("invalid color")
	ErrInvalidParseMode   = errors.New("invalid parse mode")
	ErrInvalidURL         = errors.New("missing scheme or host")

	// ErrNotPreset is returned by Color.AsPreset for a plain hex color.
	// It signals a misuse of the API rather than invalid input.
	ErrNotPreset = errors.New("not a defined preset")
)

// URLError reports a malformed URL given for a field.
type URLError struct {
	Field string
	Value string
	Err   error
}

func (e *URLError) Error() string {
	return fmt.Sprintf("the field '%s' has a malformed URL %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *URLError) Unwrap() error { return e.Err }

// Is lets every URLError match ErrInvalidURL.
func (e *URLError) Is(target error) bool { return target == ErrInvalidURL }

func checkRequired(field, value string) error {
	if value == "" {
		return errors.Wrapf(ErrRequired, "the field '%s'", field)
	}
	return nil
}

func checkNoMarkdown(field, value string) error {
	if markdown.ContainsMarkdown(value) {
		return errors.Wrapf(ErrContainsMarkdown, "the field '%s'", field)
	}
	return nil
}

func checkLength(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return errors.Wrapf(ErrTooLong, "the field '%s' cannot have more than %d characters (found %d)",
			field, limit, n)
	}
	return nil
}

// parseURL turns an optional raw URL into a validated absolute URL.
func parseURL(field, raw string) (option.Option[url.URL], error) {
	if raw == "" {
		return option.None[url.URL](), nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return option.None[url.URL](), &URLError{Field: field, Value: raw, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return option.None[url.URL](), &URLError{Field: field, Value: raw, Err: ErrInvalidURL}
	}
	return option.Some(*u), nil
}

func urlString(u option.Option[url.URL]) string {
	v, ok := u.Get()
	if !ok {
		return ""
	}
	return v.String()
}
