// Package datetime renders dates for Slack messages as <!date> directives,
// which Slack clients show in the reader's own locale and timezone, together
// with a plain UTC fallback text.
package datetime

import (
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// tokenPattern finds the textual form of any FormatToken, ignoring case.
var tokenPattern = compileTokenPattern()

func compileTokenPattern() *regexp.Regexp {
	alternatives := make([]string, 0, len(Tokens))
	for _, t := range Tokens {
		alternatives = append(alternatives, regexp.QuoteMeta(t.String()))
	}
	return regexp.MustCompile("(?i)" + strings.Join(alternatives, "|"))
}

// DefaultFormat renders a date and time as "2014-02-18 02:39:42 PM".
var DefaultFormat = FormatOfTokens(TokenDateNum, TokenTimeSecs)

type segment struct {
	literal string
	token   FormatToken
	isToken bool
}

// Format is a compiled date pattern: literal text interleaved with format tokens.
type Format struct {
	pattern  string
	segments []segment
}

// FormatOf compiles pattern, e.g. "Meeting at {time} on {date_long}".
// Text that looks like a token but is not one is kept as literal text.
func FormatOf(pattern string) (Format, error) {
	if pattern == "" {
		return Format{}, ErrEmptyPattern
	}

	var (
		segments []segment
		hasToken bool
		last     int
	)
	for _, loc := range tokenPattern.FindAllStringIndex(pattern, -1) {
		if loc[0] > last {
			segments = append(segments, segment{literal: pattern[last:loc[0]]})
		}
		t, err := ParseToken(pattern[loc[0]:loc[1]])
		if err != nil {
			return Format{}, errors.Wrapf(err, "unable to compile pattern %q", pattern)
		}
		segments = append(segments, segment{token: t, isToken: true})
		hasToken = true
		last = loc[1]
	}
	if last < len(pattern) {
		segments = append(segments, segment{literal: pattern[last:]})
	}

	if !hasToken {
		return Format{}, errors.Wrapf(ErrNoFormatToken, "pattern %q", pattern)
	}
	return Format{pattern: pattern, segments: segments}, nil
}

// FormatOfTokens builds a Format of the given tokens separated by single spaces.
func FormatOfTokens(token FormatToken, more ...FormatToken) Format {
	names := make([]string, 0, len(more)+1)
	for _, t := range append([]FormatToken{token}, more...) {
		names = append(names, t.String())
	}
	f, err := FormatOf(strings.Join(names, " "))
	if err != nil {
		panic(err)
	}
	return f
}

// Pattern returns the pattern the format was compiled from.
func (f Format) Pattern() string { return f.pattern }

func (f Format) String() string { return f.pattern }

// Tokens returns the tokens of the format in order of appearance.
func (f Format) Tokens() []FormatToken {
	var out []FormatToken
	for _, s := range f.segments {
		if s.isToken {
			out = append(out, s.token)
		}
	}
	return out
}

// Render formats epoch seconds as UTC fallback text.
func (f Format) Render(epoch int64) string {
	return f.RenderTime(time.Unix(epoch, 0))
}

// RenderTime formats tm in UTC. Literal text is copied unchanged.
func (f Format) RenderTime(tm time.Time) string {
	var b strings.Builder
	for _, s := range f.segments {
		if s.isToken {
			b.WriteString(s.token.Render(tm))
			continue
		}
		b.WriteString(s.literal)
	}
	return b.String()
}

// IsZero reports whether f is the zero Format, which holds no pattern.
func (f Format) IsZero() bool { return f.pattern == "" }

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.pattern), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(b []byte) error {
	v, err := FormatOf(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
