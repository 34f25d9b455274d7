package message

import (
	"github.com/nezorflame/slackmsg/enum"

	"github.com/pkg/errors"
)

// ParseMode tells Slack how to treat names and links in the message text.
type ParseMode int

// Parse modes. The zero value is ParseNone, Slack's default.
const (
	ParseNone ParseMode = iota
	ParseFull
)

// ParseModes lists every parse mode.
var ParseModes = []ParseMode{ParseFull, ParseNone}

func (p ParseMode) String() string {
	switch p {
	case ParseFull:
		return "full"
	case ParseNone:
		return "none"
	}
	return "unknown"
}

// ParseModeOf looks up a parse mode by name, ignoring case.
func ParseModeOf(s string) (ParseMode, error) {
	p, ok := enum.Lookup(ParseModes, s)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidParseMode, "parse mode value '%s' is not valid, expected one of [%s]",
			s, enum.Names(ParseModes, ", "))
	}
	return p, nil
}

// MarshalText implements encoding.TextMarshaler.
func (p ParseMode) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ParseMode) UnmarshalText(b []byte) error {
	v, err := ParseModeOf(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
