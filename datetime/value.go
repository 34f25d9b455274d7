package datetime

import (
	"fmt"
	"net/url"
	"time"

	"github.com/nezorflame/slackmsg/option"

	"github.com/pkg/errors"
)

// Value is a point in time bound to a Format and an optional link.
type Value struct {
	epoch  int64
	format Format
	link   option.Option[url.URL]
}

// ValueBuilder accumulates Value fields until Build.
type ValueBuilder struct {
	epoch  int64
	format Format
	link   string
}

// ValueOf returns a Value of epoch seconds rendered with DefaultFormat.
func ValueOf(epoch int64) Value {
	return Value{epoch: epoch, format: DefaultFormat}
}

// ValueFrom converts t with the system clock and returns it as a Value.
func ValueFrom(t Temporal) (Value, error) {
	epoch, err := EpochOf(t)
	if err != nil {
		return Value{}, err
	}
	return ValueOf(epoch), nil
}

// NewValue starts a Value of epoch seconds.
func NewValue(epoch int64) *ValueBuilder {
	return &ValueBuilder{epoch: epoch, format: DefaultFormat}
}

// Format sets the format the value is rendered with.
func (b *ValueBuilder) Format(f Format) *ValueBuilder {
	if !f.IsZero() {
		b.format = f
	}
	return b
}

// Link sets the URL the rendered date links to.
func (b *ValueBuilder) Link(link string) *ValueBuilder {
	b.link = link
	return b
}

// Build validates the link, if any.
func (b *ValueBuilder) Build() (Value, error) {
	v := Value{epoch: b.epoch, format: b.format}
	if b.link == "" {
		return v, nil
	}
	u, err := url.Parse(b.link)
	if err != nil {
		return Value{}, errors.Wrapf(ErrInvalidLink, "%s: %v", b.link, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Value{}, errors.Wrapf(ErrInvalidLink, "%s: missing scheme or host", b.link)
	}
	v.link = option.Some(*u)
	return v, nil
}

// Epoch returns the epoch seconds of the value.
func (v Value) Epoch() int64 { return v.epoch }

// Time returns the value as a UTC time.
func (v Value) Time() time.Time { return time.Unix(v.epoch, 0).UTC() }

// DateFormat returns the format the value is rendered with.
func (v Value) DateFormat() Format { return v.format }

// Link returns the link of the value.
func (v Value) Link() option.Option[url.URL] { return v.link }

// Format renders the value with its own format.
func (v Value) Format() string {
	return v.FormatWith(v.format)
}

// FormatWith renders the value as a <!date> directive using f, e.g.
// "<!date^1392734382^{date_num} {time_secs}|2014-39-18 02:39:42 PM>".
// The part after the pipe is the fallback shown by clients that cannot render the directive.
func (v Value) FormatWith(f Format) string {
	if f.IsZero() {
		f = DefaultFormat
	}
	fallback := f.Render(v.epoch)
	if link, ok := v.link.Get(); ok {
		return fmt.Sprintf("<!date^%08d^%s^%s|%s>", v.epoch, f.Pattern(), link.String(), fallback)
	}
	return fmt.Sprintf("<!date^%08d^%s|%s>", v.epoch, f.Pattern(), fallback)
}

// Fallback returns the plain UTC text of the value.
func (v Value) Fallback() string {
	f := v.format
	if f.IsZero() {
		f = DefaultFormat
	}
	return f.Render(v.epoch)
}

func (v Value) String() string { return v.Format() }
