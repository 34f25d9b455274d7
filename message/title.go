package message

import (
	"net/url"

	"github.com/nezorflame/slackmsg/option"
)

const (
	titleTextField = "title"
	titleLinkField = "title_link"
)

// Title is the bold heading of an attachment.
type Title struct {
	text string
	link option.Option[url.URL]
}

// TitleBuilder accumulates Title fields until Build.
type TitleBuilder struct {
	text, link string
}

// NewTitle starts a Title with the given text.
func NewTitle(text string) *TitleBuilder {
	return &TitleBuilder{text: text}
}

// TitleOf builds a Title without a link.
func TitleOf(text string) (Title, error) {
	return NewTitle(text).Build()
}

// Link sets the URL the title links to.
func (b *TitleBuilder) Link(link string) *TitleBuilder {
	b.link = link
	return b
}

// Build validates the fields.
func (b *TitleBuilder) Build() (Title, error) {
	if err := checkRequired(titleTextField, b.text); err != nil {
		return Title{}, err
	}
	link, err := parseURL(titleLinkField, b.link)
	if err != nil {
		return Title{}, err
	}
	return Title{text: b.text, link: link}, nil
}

// Text returns the title text.
func (t Title) Text() string { return t.text }

// Link returns the title link.
func (t Title) Link() option.Option[url.URL] { return t.link }
