package message

import (
	"encoding/json"
	"net/url"

	"github.com/nezorflame/slackmsg/markdown"
	"github.com/nezorflame/slackmsg/option"
)

const (
	fallbackField = "fallback"
	imageURLField = "image_url"
	thumbURLField = "thumb_url"
)

// Attachment is a secondary content block of a message.
type Attachment struct {
	fallback       string
	color          option.Option[Color]
	pretext        option.Option[string]
	author         option.Option[Author]
	title          option.Option[Title]
	text           option.Option[string]
	imageURL       option.Option[url.URL]
	thumbURL       option.Option[url.URL]
	footer         option.Option[Footer]
	fields         []Field
	markdownInputs []markdown.Input
}

// AttachmentBuilder accumulates Attachment fields until Build.
type AttachmentBuilder struct {
	fallback           string
	color              option.Option[Color]
	pretext, text      string
	author             option.Option[Author]
	title              option.Option[Title]
	imageURL, thumbURL string
	footer             option.Option[Footer]
	fields             []Field
}

// NewAttachment starts an Attachment with its required fallback text.
func NewAttachment(fallback string) *AttachmentBuilder {
	return &AttachmentBuilder{fallback: fallback}
}

// Color sets the side-bar color.
func (b *AttachmentBuilder) Color(c Color) *AttachmentBuilder {
	b.color = option.Some(c)
	return b
}

// Pretext sets the text shown above the attachment block.
func (b *AttachmentBuilder) Pretext(pretext string) *AttachmentBuilder {
	b.pretext = pretext
	return b
}

// Author sets the author section.
func (b *AttachmentBuilder) Author(a Author) *AttachmentBuilder {
	b.author = option.Some(a)
	return b
}

// Title sets the title section.
func (b *AttachmentBuilder) Title(t Title) *AttachmentBuilder {
	b.title = option.Some(t)
	return b
}

// Text sets the main attachment text.
func (b *AttachmentBuilder) Text(text string) *AttachmentBuilder {
	b.text = text
	return b
}

// ImageURL sets the large image URL.
func (b *AttachmentBuilder) ImageURL(u string) *AttachmentBuilder {
	b.imageURL = u
	return b
}

// ThumbURL sets the thumbnail URL.
func (b *AttachmentBuilder) ThumbURL(u string) *AttachmentBuilder {
	b.thumbURL = u
	return b
}

// Footer sets the footer section.
func (b *AttachmentBuilder) Footer(f Footer) *AttachmentBuilder {
	b.footer = option.Some(f)
	return b
}

// AddFields appends fields in order.
func (b *AttachmentBuilder) AddFields(fields ...Field) *AttachmentBuilder {
	b.fields = append(b.fields, fields...)
	return b
}

// Fields replaces all fields.
func (b *AttachmentBuilder) Fields(fields []Field) *AttachmentBuilder {
	b.fields = append([]Field(nil), fields...)
	return b
}

// Build validates the attachment and computes which of its sections contain markdown.
func (b *AttachmentBuilder) Build() (Attachment, error) {
	if err := checkRequired(fallbackField, b.fallback); err != nil {
		return Attachment{}, err
	}
	imageURL, err := parseURL(imageURLField, b.imageURL)
	if err != nil {
		return Attachment{}, err
	}
	thumbURL, err := parseURL(thumbURLField, b.thumbURL)
	if err != nil {
		return Attachment{}, err
	}

	a := Attachment{
		fallback: b.fallback,
		color:    b.color,
		pretext:  option.FromString(b.pretext),
		author:   b.author,
		title:    b.title,
		text:     option.FromString(b.text),
		imageURL: imageURL,
		thumbURL: thumbURL,
		footer:   b.footer,
		fields:   append([]Field(nil), b.fields...),
	}
	a.markdownInputs = detectMarkdownInputs(a.pretext, a.text, a.fields)
	return a, nil
}

func detectMarkdownInputs(pretext, text option.Option[string], fields []Field) []markdown.Input {
	inputs := []markdown.Input{}
	if markdown.ContainsMarkdown(pretext.OrElse("")) {
		inputs = append(inputs, markdown.InputPretext)
	}
	if markdown.ContainsMarkdown(text.OrElse("")) {
		inputs = append(inputs, markdown.InputText)
	}
	for _, f := range fields {
		if markdown.ContainsMarkdown(f.value) {
			inputs = append(inputs, markdown.InputFields)
			break
		}
	}
	return inputs
}

// Fallback returns the plain-text summary of the attachment.
func (a Attachment) Fallback() string { return a.fallback }

// Color returns the side-bar color.
func (a Attachment) Color() option.Option[Color] { return a.color }

// Pretext returns the pretext.
func (a Attachment) Pretext() option.Option[string] { return a.pretext }

// Author returns the author section.
func (a Attachment) Author() option.Option[Author] { return a.author }

// Title returns the title section.
func (a Attachment) Title() option.Option[Title] { return a.title }

// Text returns the main text.
func (a Attachment) Text() option.Option[string] { return a.text }

// ImageURL returns the image URL.
func (a Attachment) ImageURL() option.Option[url.URL] { return a.imageURL }

// ThumbURL returns the thumbnail URL.
func (a Attachment) ThumbURL() option.Option[url.URL] { return a.thumbURL }

// Footer returns the footer section.
func (a Attachment) Footer() option.Option[Footer] { return a.footer }

// Fields returns a copy of the fields.
func (a Attachment) Fields() []Field { return append([]Field(nil), a.fields...) }

// MarkdownInputs returns the sections Slack should render as markdown.
func (a Attachment) MarkdownInputs() []markdown.Input {
	return append([]markdown.Input(nil), a.markdownInputs...)
}

type attachmentJSON struct {
	Fallback   string           `json:"fallback"`
	Color      string           `json:"color,omitempty"`
	Pretext    string           `json:"pretext,omitempty"`
	AuthorName string           `json:"author_name,omitempty"`
	AuthorLink string           `json:"author_link,omitempty"`
	AuthorIcon string           `json:"author_icon,omitempty"`
	Title      string           `json:"title,omitempty"`
	TitleLink  string           `json:"title_link,omitempty"`
	Text       string           `json:"text,omitempty"`
	ImageURL   string           `json:"image_url,omitempty"`
	ThumbURL   string           `json:"thumb_url,omitempty"`
	Footer     string           `json:"footer,omitempty"`
	FooterIcon string           `json:"footer_icon,omitempty"`
	Timestamp  *int64           `json:"ts,omitempty"`
	MarkdownIn []markdown.Input `json:"mrkdwn_in"`
	Fields     []fieldJSON      `json:"fields"`
}

func (a Attachment) toJSON() attachmentJSON {
	aj := attachmentJSON{
		Fallback:   a.fallback,
		Pretext:    a.pretext.OrElse(""),
		Text:       a.text.OrElse(""),
		ImageURL:   urlString(a.imageURL),
		ThumbURL:   urlString(a.thumbURL),
		MarkdownIn: a.MarkdownInputs(),
		Fields:     make([]fieldJSON, 0, len(a.fields)),
	}
	if aj.MarkdownIn == nil {
		aj.MarkdownIn = []markdown.Input{}
	}
	a.color.IfPresent(func(c Color) { aj.Color = c.Value() })
	a.author.IfPresent(func(au Author) {
		aj.AuthorName = au.name
		aj.AuthorLink = urlString(au.link)
		aj.AuthorIcon = urlString(au.icon)
	})
	a.title.IfPresent(func(t Title) {
		aj.Title = t.text
		aj.TitleLink = urlString(t.link)
	})
	a.footer.IfPresent(func(f Footer) {
		aj.Footer = f.text
		aj.FooterIcon = urlString(f.icon)
		if ts, ok := f.timestamp.Get(); ok {
			aj.Timestamp = &ts
		}
	})
	for _, f := range a.fields {
		aj.Fields = append(aj.Fields, f.toJSON())
	}
	return aj
}

// build rebuilds a validated Attachment from its flattened wire form.
// The mrkdwn_in list is ignored and recomputed from the decoded fields.
func (aj attachmentJSON) build() (Attachment, error) {
	b := NewAttachment(aj.Fallback).
		Pretext(aj.Pretext).
		Text(aj.Text).
		ImageURL(aj.ImageURL).
		ThumbURL(aj.ThumbURL)

	if aj.Color != "" {
		c, err := ColorOf(aj.Color)
		if err != nil {
			return Attachment{}, err
		}
		b.Color(c)
	}
	if aj.AuthorName != "" || aj.AuthorLink != "" || aj.AuthorIcon != "" {
		au, err := NewAuthor(aj.AuthorName).Link(aj.AuthorLink).Icon(aj.AuthorIcon).Build()
		if err != nil {
			return Attachment{}, err
		}
		b.Author(au)
	}
	if aj.Title != "" || aj.TitleLink != "" {
		t, err := NewTitle(aj.Title).Link(aj.TitleLink).Build()
		if err != nil {
			return Attachment{}, err
		}
		b.Title(t)
	}
	if aj.Footer != "" || aj.FooterIcon != "" || aj.Timestamp != nil {
		fb := NewFooter(aj.Footer).Icon(aj.FooterIcon)
		if aj.Timestamp != nil {
			fb.Timestamp(*aj.Timestamp)
		}
		f, err := fb.Build()
		if err != nil {
			return Attachment{}, err
		}
		b.Footer(f)
	}
	for _, fj := range aj.Fields {
		f, err := fj.build()
		if err != nil {
			return Attachment{}, err
		}
		b.AddFields(f)
	}
	return b.Build()
}

// MarshalJSON implements json.Marshaler using Slack's flattened attachment layout.
func (a Attachment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.toJSON())
}

// UnmarshalJSON implements json.Unmarshaler, validating the decoded attachment.
func (a *Attachment) UnmarshalJSON(b []byte) error {
	var aj attachmentJSON
	if err := json.Unmarshal(b, &aj); err != nil {
		return err
	}
	v, err := aj.build()
	if err != nil {
		return err
	}
	*a = v
	return nil
}
