package markdown

import (
	"github.com/nezorflame/slackmsg/enum"

	"github.com/pkg/errors"
)

// SpecialMention is one of Slack's group notifications.
type SpecialMention int

// Special mentions
const (
	MentionChannelAll SpecialMention = iota
	MentionHere
	MentionEveryone
)

// SpecialMentions lists every special mention.
var SpecialMentions = []SpecialMention{MentionChannelAll, MentionHere, MentionEveryone}

func (m SpecialMention) String() string {
	switch m {
	case MentionChannelAll:
		return "channel"
	case MentionHere:
		return "here"
	case MentionEveryone:
		return "everyone"
	}
	return "unknown"
}

// Value returns the mention in the form Slack expects inside a link, e.g. "!here".
func (m SpecialMention) Value() string {
	return SpecialMentionDecoration + m.String()
}

// Render returns the full mention markup, e.g. "<!here>".
func (m SpecialMention) Render() string {
	return LinkPrefix + m.Value() + LinkSuffix
}

// ParseSpecialMention looks up a special mention by name, ignoring case.
func ParseSpecialMention(name string) (SpecialMention, error) {
	m, ok := enum.Lookup(SpecialMentions, name)
	if !ok {
		return 0, errors.Errorf("no valid special mention found for %q, valid values include: [%s]",
			name, enum.Names(SpecialMentions, ", "))
	}
	return m, nil
}
