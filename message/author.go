package message

import (
	"net/url"

	"github.com/nezorflame/slackmsg/option"
)

const (
	authorNameField = "author_name"
	authorLinkField = "author_link"
	authorIconField = "author_icon"
)

// Author is the small section shown above an attachment's title.
type Author struct {
	name string
	link option.Option[url.URL]
	icon option.Option[url.URL]
}

// AuthorBuilder accumulates Author fields until Build.
type AuthorBuilder struct {
	name, link, icon string
}

// NewAuthor starts an Author with the given name.
func NewAuthor(name string) *AuthorBuilder {
	return &AuthorBuilder{name: name}
}

// AuthorOf builds an Author with a name only.
func AuthorOf(name string) (Author, error) {
	return NewAuthor(name).Build()
}

// Link sets the URL the author name links to.
func (b *AuthorBuilder) Link(link string) *AuthorBuilder {
	b.link = link
	return b
}

// Icon sets the URL of the small author icon.
func (b *AuthorBuilder) Icon(icon string) *AuthorBuilder {
	b.icon = icon
	return b
}

// Build validates the fields. The name is required and cannot contain markdown.
func (b *AuthorBuilder) Build() (Author, error) {
	if err := checkRequired(authorNameField, b.name); err != nil {
		return Author{}, err
	}
	if err := checkNoMarkdown(authorNameField, b.name); err != nil {
		return Author{}, err
	}
	link, err := parseURL(authorLinkField, b.link)
	if err != nil {
		return Author{}, err
	}
	icon, err := parseURL(authorIconField, b.icon)
	if err != nil {
		return Author{}, err
	}
	return Author{name: b.name, link: link, icon: icon}, nil
}

// Name returns the author name.
func (a Author) Name() string { return a.name }

// Link returns the author link.
func (a Author) Link() option.Option[url.URL] { return a.link }

// Icon returns the author icon URL.
func (a Author) Icon() option.Option[url.URL] { return a.icon }
