package datetime

import (
	"strings"
	"time"

	"github.com/nezorflame/slackmsg/enum"

	"github.com/pkg/errors"
)

// FormatToken is a placeholder Slack replaces with a date or time in the reader's locale.
type FormatToken int

// Format tokens
const (
	TokenDate FormatToken = iota
	TokenDateNum
	TokenDateShort
	TokenDateLong
	TokenDatePretty
	TokenDateShortPretty
	TokenDateLongPretty
	TokenTime
	TokenTimeSecs
)

// Tokens lists every format token.
var Tokens = []FormatToken{
	TokenDate,
	TokenDateNum,
	TokenDateShort,
	TokenDateLong,
	TokenDatePretty,
	TokenDateShortPretty,
	TokenDateLongPretty,
	TokenTime,
	TokenTimeSecs,
}

type tokenInfo struct {
	name    string
	pattern string
	layout  layout
}

// tokens holds the fallback pattern of each token, used when the directive
// cannot be rendered by a Slack client.
var tokens = map[FormatToken]tokenInfo{
	TokenDate:            newTokenInfo("date", "MMMMM dd, yyyy"),
	TokenDateNum:         newTokenInfo("date_num", "yyyy-mm-dd"),
	TokenDateShort:       newTokenInfo("date_short", "MMM dd, yyyy"),
	TokenDateLong:        newTokenInfo("date_long", "eeee, MMMM dd, yyyy"),
	TokenDatePretty:      newTokenInfo("date_pretty", "MMMM dd, yyyy"),
	TokenDateShortPretty: newTokenInfo("date_short_pretty", "MMM dd, yyyy"),
	TokenDateLongPretty:  newTokenInfo("date_long_pretty", "eeee, MMMMM dd, yyyy"),
	TokenTime:            newTokenInfo("time", "hh:mm a"),
	TokenTimeSecs:        newTokenInfo("time_secs", "hh:mm:ss a"),
}

func newTokenInfo(name, pattern string) tokenInfo {
	return tokenInfo{name: name, pattern: pattern, layout: mustLayout(pattern)}
}

// Name returns the bare token name, e.g. "date_num".
func (t FormatToken) Name() string {
	info, ok := tokens[t]
	if !ok {
		return "unknown"
	}
	return info.name
}

// String returns the token as written in a pattern, e.g. "{date_num}".
func (t FormatToken) String() string {
	return "{" + t.Name() + "}"
}

// Pattern returns the date-time pattern used for the fallback text.
func (t FormatToken) Pattern() string {
	return tokens[t].pattern
}

// Layout returns Pattern as a Go reference layout, with the narrow month
// (a run of five 'M') shown as "J".
func (t FormatToken) Layout() string {
	return tokens[t].layout.String()
}

// Render formats tm in UTC the way the token's fallback text shows it.
func (t FormatToken) Render(tm time.Time) string {
	return tokens[t].layout.format(tm.UTC())
}

// ParseToken looks up a token by name, with or without braces, ignoring case.
func ParseToken(s string) (FormatToken, error) {
	name := s
	if !strings.HasPrefix(name, "{") || !strings.HasSuffix(name, "}") {
		name = "{" + name + "}"
	}
	t, ok := enum.Lookup(Tokens, name)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownToken, "'%s', expected one of [%s]", s, enum.Names(Tokens, ", "))
	}
	return t, nil
}

// MarshalText implements encoding.TextMarshaler.
func (t FormatToken) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *FormatToken) UnmarshalText(b []byte) error {
	v, err := ParseToken(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
