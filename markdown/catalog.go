// Package markdown implements Slack's markup decorations and detection of
// text that Slack would treat as markdown.
package markdown

// Slack markup strings
const (
	NewlineSeparator = "\n"

	BoldDecoration               = "*"
	ItalicDecoration             = "_"
	StrikeDecoration             = "~"
	EmojiDecoration              = ":"
	PreformatDecoration          = "`"
	PreformatMultilineDecoration = "```"
	SpecialMentionDecoration     = "!"

	MentionUserPrefix    = "@"
	MentionChannelPrefix = "#"
	QuotePrefix          = ">"
	QuoteMultilinePrefix = ">>>"
	LinkPrefix           = "<"
	LinkSuffix           = ">"
	LinkTextSeparator    = "|"
	ListBulletPrefix     = "• "
)

// Decorators for Slack markup
var (
	Bold               = mustString(Of(BoldDecoration))
	Italic             = mustString(Of(ItalicDecoration))
	Strike             = mustString(Of(StrikeDecoration))
	Emoji              = mustString(Of(EmojiDecoration))
	Preformat          = mustString(Of(PreformatDecoration))
	PreformatMultiline = mustString(NewStringDecorator(PreformatMultilineDecoration+NewlineSeparator, PreformatMultilineDecoration))
	MentionUser        = mustString(OfPrefix(MentionUserPrefix))
	MentionChannel     = mustString(OfPrefix(MentionChannelPrefix))
	Quote              = mustString(NewStringDecorator(NewlineSeparator+QuotePrefix, NewlineSeparator))
	QuoteMultiline     = mustString(NewStringDecorator(QuoteMultilinePrefix+NewlineSeparator, NewlineSeparator))
	Newline            = mustString(OfSuffix(NewlineSeparator))
	ListItem           = mustString(NewStringDecorator(ListBulletPrefix, NewlineSeparator))

	Link = mustLink(NewLinkDecorator(LinkPrefix, LinkTextSeparator, LinkSuffix))
)

// Catalog lists the named string decorators, used for documentation and tests.
var Catalog = map[string]StringDecorator{
	"bold":                Bold,
	"italic":              Italic,
	"strike":              Strike,
	"emoji":               Emoji,
	"preformat":           Preformat,
	"preformat_multiline": PreformatMultiline,
	"mention_user":        MentionUser,
	"mention_channel":     MentionChannel,
	"quote":               Quote,
	"quote_multiline":     QuoteMultiline,
	"newline":             Newline,
	"list":                ListItem,
}

func mustString(d StringDecorator, err error) StringDecorator {
	if err != nil {
		panic(err)
	}
	return d
}

func mustLink(d LinkDecorator, err error) LinkDecorator {
	if err != nil {
		panic(err)
	}
	return d
}
