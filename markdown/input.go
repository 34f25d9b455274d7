package markdown

import (
	"github.com/nezorflame/slackmsg/enum"

	"github.com/pkg/errors"
)

// ErrUnknownInput is returned for a string that names no Input.
var ErrUnknownInput = errors.New("no markdown input value matching")

// Input names an attachment section that Slack should render as markdown (mrkdwn_in).
type Input int

// Markdown inputs
const (
	InputPretext Input = iota
	InputText
	InputFields
)

// Inputs lists all inputs in their wire order.
var Inputs = []Input{InputPretext, InputText, InputFields}

func (i Input) String() string {
	switch i {
	case InputPretext:
		return "pretext"
	case InputText:
		return "text"
	case InputFields:
		return "fields"
	}
	return "unknown"
}

// ParseInput looks up an Input by name, ignoring case.
func ParseInput(s string) (Input, error) {
	i, ok := enum.Lookup(Inputs, s)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownInput, "%q", s)
	}
	return i, nil
}

// MarshalText implements encoding.TextMarshaler.
func (i Input) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Input) UnmarshalText(b []byte) error {
	v, err := ParseInput(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
