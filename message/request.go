// Package message implements the validated, immutable model of a Slack
// message request and its attachments, together with their wire encoding.
//
// Every type is assembled with a builder whose Build method performs all
// checks at once, so a value obtained from this package is always valid.
package message

import (
	"encoding/json"
	"net/url"

	"github.com/nezorflame/slackmsg/markdown"
	"github.com/nezorflame/slackmsg/option"

	"github.com/pkg/errors"
)

// MaxAttachments is the maximum number of attachments in one message.
const MaxAttachments = 100

const (
	textField     = "text"
	usernameField = "username"
	iconURLField  = "icon_url"
)

// Request is a message to post to Slack.
//
// The top-level text is never checked for markdown, unlike author names,
// field titles and footers.
type Request struct {
	text        string
	username    string
	iconEmoji   option.Option[string]
	iconURL     option.Option[url.URL]
	channel     option.Option[string]
	linkNames   bool
	unfurlMedia bool
	unfurlLinks bool
	markdown    bool
	parse       ParseMode
	attachments []Attachment
}

// RequestBuilder accumulates Request fields until Build.
type RequestBuilder struct {
	text, username     string
	iconEmoji, iconURL string
	channel            string
	linkNames          bool
	unfurlMedia        bool
	unfurlLinks        bool
	markdown           bool
	parse              ParseMode
	attachments        []Attachment
}

// NewRequest starts a Request with Slack's defaults: link names and markdown on,
// unfurling off, parse mode none.
func NewRequest(text, username string) *RequestBuilder {
	return &RequestBuilder{
		text:      text,
		username:  username,
		linkNames: true,
		markdown:  true,
		parse:     ParseNone,
	}
}

// From starts a builder holding all values of r.
func From(r Request) *RequestBuilder {
	b := &RequestBuilder{
		text:        r.text,
		username:    r.username,
		iconEmoji:   r.iconEmoji.OrElse(""),
		iconURL:     urlString(r.iconURL),
		channel:     r.channel.OrElse(""),
		linkNames:   r.linkNames,
		unfurlMedia: r.unfurlMedia,
		unfurlLinks: r.unfurlLinks,
		markdown:    r.markdown,
		parse:       r.parse,
	}
	return b.Attachments(r.attachments)
}

// Text sets the message text.
func (b *RequestBuilder) Text(text string) *RequestBuilder {
	b.text = text
	return b
}

// Username sets the name the message is posted as.
func (b *RequestBuilder) Username(username string) *RequestBuilder {
	b.username = username
	return b
}

// IconEmoji sets the emoji icon, either bare ("smile") or decorated (":smile:").
// It takes precedence over IconURL.
func (b *RequestBuilder) IconEmoji(emoji string) *RequestBuilder {
	b.iconEmoji = emoji
	return b
}

// IconURL sets the icon image URL.
func (b *RequestBuilder) IconURL(u string) *RequestBuilder {
	b.iconURL = u
	return b
}

// Channel overrides the webhook's default channel.
func (b *RequestBuilder) Channel(channel string) *RequestBuilder {
	b.channel = channel
	return b
}

// LinkNames sets whether Slack links channel and user names.
func (b *RequestBuilder) LinkNames(v bool) *RequestBuilder {
	b.linkNames = v
	return b
}

// UnfurlMedia sets whether Slack unfurls media content.
func (b *RequestBuilder) UnfurlMedia(v bool) *RequestBuilder {
	b.unfurlMedia = v
	return b
}

// UnfurlLinks sets whether Slack unfurls text-based content.
func (b *RequestBuilder) UnfurlLinks(v bool) *RequestBuilder {
	b.unfurlLinks = v
	return b
}

// Markdown sets whether the text is formatted as markdown.
func (b *RequestBuilder) Markdown(v bool) *RequestBuilder {
	b.markdown = v
	return b
}

// Parse sets the parse mode.
func (b *RequestBuilder) Parse(p ParseMode) *RequestBuilder {
	b.parse = p
	return b
}

// AddAttachments appends attachments in order.
func (b *RequestBuilder) AddAttachments(attachments ...Attachment) *RequestBuilder {
	b.attachments = append(b.attachments, attachments...)
	return b
}

// Attachments replaces all attachments.
func (b *RequestBuilder) Attachments(attachments []Attachment) *RequestBuilder {
	b.attachments = append([]Attachment(nil), attachments...)
	return b
}

// Build validates the request. A bare icon emoji is stored in its decorated form.
func (b *RequestBuilder) Build() (Request, error) {
	if err := checkRequired(textField, b.text); err != nil {
		return Request{}, err
	}
	if err := checkRequired(usernameField, b.username); err != nil {
		return Request{}, err
	}
	if n := len(b.attachments); n > MaxAttachments {
		return Request{}, errors.Wrapf(ErrTooManyAttachments,
			"cannot exceed %d attachments for one message, %d were found", MaxAttachments, n)
	}
	iconURL, err := parseURL(iconURLField, b.iconURL)
	if err != nil {
		return Request{}, err
	}

	r := Request{
		text:        b.text,
		username:    b.username,
		iconEmoji:   option.FromString(b.iconEmoji),
		iconURL:     iconURL,
		channel:     option.FromString(b.channel),
		linkNames:   b.linkNames,
		unfurlMedia: b.unfurlMedia,
		unfurlLinks: b.unfurlLinks,
		markdown:    b.markdown,
		parse:       b.parse,
		attachments: append([]Attachment(nil), b.attachments...),
	}
	if emoji, ok := r.iconEmoji.Get(); ok {
		r.iconEmoji = option.Some(markdown.Emoji.Decorate(emoji))
	}
	return r, nil
}

// Text returns the message text.
func (r Request) Text() string { return r.text }

// Username returns the name the message is posted as.
func (r Request) Username() string { return r.username }

// IconEmoji returns the decorated emoji icon, e.g. ":smile:".
func (r Request) IconEmoji() option.Option[string] { return r.iconEmoji }

// IconURL returns the icon image URL.
func (r Request) IconURL() option.Option[url.URL] { return r.iconURL }

// Channel returns the channel override.
func (r Request) Channel() option.Option[string] { return r.channel }

// LinkNames reports whether Slack links channel and user names.
func (r Request) LinkNames() bool { return r.linkNames }

// UnfurlMedia reports whether Slack unfurls media content.
func (r Request) UnfurlMedia() bool { return r.unfurlMedia }

// UnfurlLinks reports whether Slack unfurls text-based content.
func (r Request) UnfurlLinks() bool { return r.unfurlLinks }

// Markdown reports whether the text is formatted as markdown.
func (r Request) Markdown() bool { return r.markdown }

// Parse returns the parse mode.
func (r Request) Parse() ParseMode { return r.parse }

// Attachments returns a copy of the attachments.
func (r Request) Attachments() []Attachment { return append([]Attachment(nil), r.attachments...) }

type requestJSON struct {
	Text        string       `json:"text"`
	Username    string       `json:"username"`
	IconEmoji   string       `json:"icon_emoji,omitempty"`
	IconURL     string       `json:"icon_url,omitempty"`
	Channel     string       `json:"channel,omitempty"`
	LinkNames   *bool        `json:"link_names,omitempty"`
	UnfurlMedia *bool        `json:"unfurl_media,omitempty"`
	UnfurlLinks *bool        `json:"unfurl_links,omitempty"`
	Markdown    *bool        `json:"mrkdwn,omitempty"`
	Parse       *ParseMode   `json:"parse,omitempty"`
	Attachments []Attachment `json:"attachments"`
}

// MarshalJSON implements json.Marshaler. Every flag is written explicitly.
func (r Request) MarshalJSON() ([]byte, error) {
	linkNames, unfurlMedia, unfurlLinks, md, parse := r.linkNames, r.unfurlMedia, r.unfurlLinks, r.markdown, r.parse
	rj := requestJSON{
		Text:        r.text,
		Username:    r.username,
		IconEmoji:   r.iconEmoji.OrElse(""),
		IconURL:     urlString(r.iconURL),
		Channel:     r.channel.OrElse(""),
		LinkNames:   &linkNames,
		UnfurlMedia: &unfurlMedia,
		UnfurlLinks: &unfurlLinks,
		Markdown:    &md,
		Parse:       &parse,
		Attachments: r.attachments,
	}
	if rj.Attachments == nil {
		rj.Attachments = []Attachment{}
	}
	return json.Marshal(rj)
}

// UnmarshalJSON implements json.Unmarshaler. Absent flags take their defaults
// and the decoded request goes through the same validation as Build.
func (r *Request) UnmarshalJSON(b []byte) error {
	var rj requestJSON
	if err := json.Unmarshal(b, &rj); err != nil {
		return err
	}

	rb := NewRequest(rj.Text, rj.Username).
		IconEmoji(rj.IconEmoji).
		IconURL(rj.IconURL).
		Channel(rj.Channel).
		Attachments(rj.Attachments)
	if rj.LinkNames != nil {
		rb.LinkNames(*rj.LinkNames)
	}
	if rj.UnfurlMedia != nil {
		rb.UnfurlMedia(*rj.UnfurlMedia)
	}
	if rj.UnfurlLinks != nil {
		rb.UnfurlLinks(*rj.UnfurlLinks)
	}
	if rj.Markdown != nil {
		rb.Markdown(*rj.Markdown)
	}
	if rj.Parse != nil {
		rb.Parse(*rj.Parse)
	}

	v, err := rb.Build()
	if err != nil {
		return err
	}
	*r = v
	return nil
}
