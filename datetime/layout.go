package datetime

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// narrowMonth stands for the first letter of the month name, which has no
// Go reference layout.
const narrowMonth = ""

// layoutFields maps runs of a pattern letter to Go reference layout elements.
// Longer runs are listed first.
var layoutFields = map[byte][]struct {
	n      int
	layout string
}{
	'y': {{4, "2006"}, {2, "06"}},
	'M': {{5, narrowMonth}, {4, "January"}, {3, "Jan"}, {2, "01"}, {1, "1"}},
	'd': {{2, "02"}, {1, "2"}},
	'e': {{4, "Monday"}, {3, "Mon"}},
	'E': {{4, "Monday"}, {3, "Mon"}},
	'H': {{2, "15"}},
	'h': {{2, "03"}, {1, "3"}},
	'm': {{2, "04"}, {1, "4"}},
	's': {{2, "05"}, {1, "5"}},
	'a': {{1, "PM"}},
}

// layoutPart is either a Go reference layout or, when narrow is set, the narrow month.
type layoutPart struct {
	layout string
	narrow bool
}

// layout is a compiled date-time pattern.
type layout []layoutPart

func (l layout) format(tm time.Time) string {
	var b strings.Builder
	for _, p := range l {
		if p.narrow {
			b.WriteString(tm.Month().String()[:1])
			continue
		}
		b.WriteString(tm.Format(p.layout))
	}
	return b.String()
}

// String returns the Go reference layout. The narrow month is shown as "J".
func (l layout) String() string {
	var b strings.Builder
	for _, p := range l {
		if p.narrow {
			b.WriteString("J")
			continue
		}
		b.WriteString(p.layout)
	}
	return b.String()
}

// toLayout translates a date-time pattern in the yyyy/MM/dd letter notation
// into Go reference layouts. Letters outside the table are rejected, other
// characters are copied as they are.
func toLayout(pattern string) (layout, error) {
	var (
		l   layout
		cur strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			l = append(l, layoutPart{layout: cur.String()})
			cur.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]
		fields, ok := layoutFields[c]
		if !ok {
			if isLetter(c) {
				return nil, errors.Errorf("unsupported pattern letter '%c' in %q", c, pattern)
			}
			cur.WriteByte(c)
			i++
			continue
		}

		run := 1
		for i+run < len(pattern) && pattern[i+run] == c {
			run++
		}
		for run > 0 {
			n, elem := 0, ""
			for _, f := range fields {
				if f.n <= run {
					n, elem = f.n, f.layout
					break
				}
			}
			if n == 0 {
				return nil, errors.Errorf("unsupported run of %d '%c' in %q", run, c, pattern)
			}
			if c == 'M' && n == 5 {
				flush()
				l = append(l, layoutPart{narrow: true})
			} else {
				cur.WriteString(elem)
			}
			run -= n
			i += n
		}
	}
	flush()
	return l, nil
}

func mustLayout(pattern string) layout {
	l, err := toLayout(pattern)
	if err != nil {
		panic(err)
	}
	return l
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
