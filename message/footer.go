package message

import (
	"net/url"
	"time"

	"github.com/nezorflame/slackmsg/option"
)

// MaxFooterLength is the maximum number of characters of a footer text.
const MaxFooterLength = 300

const (
	footerTextField = "footer"
	footerIconField = "footer_icon"
)

// Footer is the small line at the bottom of an attachment.
type Footer struct {
	text      string
	icon      option.Option[url.URL]
	timestamp option.Option[int64]
}

// FooterBuilder accumulates Footer fields until Build.
type FooterBuilder struct {
	text, icon string
	timestamp  option.Option[int64]
}

// NewFooter starts a Footer with the given text.
func NewFooter(text string) *FooterBuilder {
	return &FooterBuilder{text: text}
}

// FooterOf builds a text-only Footer.
func FooterOf(text string) (Footer, error) {
	return NewFooter(text).Build()
}

// Icon sets the footer icon URL.
func (b *FooterBuilder) Icon(icon string) *FooterBuilder {
	b.icon = icon
	return b
}

// Timestamp sets the unix time shown next to the footer.
func (b *FooterBuilder) Timestamp(ts int64) *FooterBuilder {
	b.timestamp = option.Some(ts)
	return b
}

// Build validates the footer: text is required, markdown-free and at most MaxFooterLength long.
func (b *FooterBuilder) Build() (Footer, error) {
	if err := checkRequired(footerTextField, b.text); err != nil {
		return Footer{}, err
	}
	if err := checkNoMarkdown(footerTextField, b.text); err != nil {
		return Footer{}, err
	}
	if err := checkLength(footerTextField, b.text, MaxFooterLength); err != nil {
		return Footer{}, err
	}
	icon, err := parseURL(footerIconField, b.icon)
	if err != nil {
		return Footer{}, err
	}
	return Footer{text: b.text, icon: icon, timestamp: b.timestamp}, nil
}

// Text returns the footer text.
func (f Footer) Text() string { return f.text }

// Icon returns the footer icon URL.
func (f Footer) Icon() option.Option[url.URL] { return f.icon }

// Timestamp returns the footer unix timestamp.
func (f Footer) Timestamp() option.Option[int64] { return f.timestamp }

// Time returns the footer timestamp as a UTC time.
func (f Footer) Time() option.Option[time.Time] {
	ts, ok := f.timestamp.Get()
	if !ok {
		return option.None[time.Time]()
	}
	return option.Some(time.Unix(ts, 0).UTC())
}
