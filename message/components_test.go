package message

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestColorHex(t *testing.T) {
	for _, in := range []string{"#abcdef", "#123456", "#ABCDEF", "#aB12eF"} {
		c, err := ColorOf(in)
		if err != nil {
			t.Fatalf("ColorOf(%q): unexpected error: %v", in, err)
		}
		if c.Value() != strings.ToLower(in) {
			t.Errorf("ColorOf(%q).Value() = %q, want %q", in, c.Value(), strings.ToLower(in))
		}
		if c.String() != c.Value() {
			t.Errorf("String() = %q, want %q", c.String(), c.Value())
		}
		if c.IsPreset() {
			t.Errorf("ColorOf(%q).IsPreset() = true, want false", in)
		}
		_, err = c.AsPreset()
		if !errors.Is(err, ErrNotPreset) {
			t.Errorf("AsPreset() err = %v, want ErrNotPreset", err)
		}
		if errors.Is(err, ErrInvalidColor) {
			t.Error("AsPreset() error should not be a validation error")
		}
	}
}

func TestColorPresets(t *testing.T) {
	for _, p := range Presets {
		for _, in := range []string{p.String(), strings.ToUpper(p.String()), strings.ToUpper(p.String()[:1]) + p.String()[1:]} {
			c, err := ColorOf(in)
			if err != nil {
				t.Fatalf("ColorOf(%q): unexpected error: %v", in, err)
			}
			if !c.IsPreset() {
				t.Errorf("ColorOf(%q).IsPreset() = false, want true", in)
			}
			got, err := c.AsPreset()
			if err != nil || got != p {
				t.Errorf("ColorOf(%q).AsPreset() = (%v, %v), want %v", in, got, err, p)
			}
			if got.String() != strings.ToLower(in) {
				t.Errorf("AsPreset().String() = %q, want %q", got.String(), strings.ToLower(in))
			}
		}
	}

	if Good() != PresetColor(PresetGood) || Warning().Value() != "warning" || Danger().Value() != "danger" {
		t.Error("preset shortcuts do not match their presets")
	}
}

func TestColorInvalid(t *testing.T) {
	for _, in := range []string{"not-a-hex-color", "123456", "", "#abc", "#abcdefa", "#ghijkl", "gooder"} {
		_, err := ColorOf(in)
		if !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ColorOf(%q) err = %v, want ErrInvalidColor", in, err)
			continue
		}
		if !strings.Contains(err.Error(), "not a valid hex color") {
			t.Errorf("ColorOf(%q) error %q should mention the expected format", in, err)
		}
	}
}

func TestColorRGB(t *testing.T) {
	c, _ := ColorOf("#ff0000")
	rgb, err := c.RGB()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rgb.Hex() != "#ff0000" {
		t.Errorf("RGB().Hex() = %q, want %q", rgb.Hex(), "#ff0000")
	}

	rgb, err = Good().RGB()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rgb.Hex() != "#2eb886" {
		t.Errorf("Good().RGB().Hex() = %q, want %q", rgb.Hex(), "#2eb886")
	}

	round := ColorFrom(rgb)
	if round.Value() != "#2eb886" || round.IsPreset() {
		t.Errorf("ColorFrom = %q, want plain #2eb886", round.Value())
	}

	if _, err := ColorOf(HappyColor().Value()); err != nil {
		t.Errorf("HappyColor produced an invalid color: %v", err)
	}
}

func TestAuthor(t *testing.T) {
	for _, name := range []string{"*bold*", "-strike-", "_name_", "@someone"} {
		_, err := AuthorOf(name)
		if !errors.Is(err, ErrContainsMarkdown) {
			t.Errorf("AuthorOf(%q) err = %v, want ErrContainsMarkdown", name, err)
			continue
		}
		if !strings.Contains(err.Error(), "author_name") {
			t.Errorf("error %q should name the author_name field", err)
		}
	}

	if _, err := AuthorOf(""); !errors.Is(err, ErrRequired) {
		t.Errorf("AuthorOf(\"\") err = %v, want ErrRequired", err)
	}

	a, err := NewAuthor("bold").Link("https://example.com/bold").Icon("https://example.com/i.png").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Name() != "bold" {
		t.Errorf("Name() = %q, want %q", a.Name(), "bold")
	}
	if link, ok := a.Link().Get(); !ok || link.String() != "https://example.com/bold" {
		t.Errorf("Link() = %v, want https://example.com/bold", link.String())
	}
}

func TestAuthorInvalidLink(t *testing.T) {
	for _, link := range []string{"not a url", "example.com/no-scheme", "http://%zz"} {
		_, err := NewAuthor("bob").Link(link).Build()
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("Link(%q) err = %v, want ErrInvalidURL", link, err)
			continue
		}
		var urlErr *URLError
		if !errors.As(err, &urlErr) || urlErr.Field != authorLinkField {
			t.Errorf("Link(%q) err = %v, want *URLError for %s", link, err, authorLinkField)
		}
	}
}

func TestTitle(t *testing.T) {
	if _, err := TitleOf(""); !errors.Is(err, ErrRequired) {
		t.Errorf("TitleOf(\"\") err = %v, want ErrRequired", err)
	}
	title, err := NewTitle("Report").Link("https://example.com/report").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title.Text() != "Report" || !title.Link().IsPresent() {
		t.Errorf("unexpected title: %+v", title)
	}
}

func TestField(t *testing.T) {
	f, err := FieldOf("Priority", "*High*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.IsShort() {
		t.Error("fields should be short by default")
	}
	if f.Value() != "*High*" {
		t.Errorf("Value() = %q, want %q", f.Value(), "*High*")
	}

	f, err = NewField("Notes", "long").Short(false).Build()
	if err != nil || f.IsShort() {
		t.Errorf("Short(false) = (%v, %v), want long field", f.IsShort(), err)
	}

	for _, title := range []string{"*title with bold*", "_Sad Times_"} {
		if _, err := FieldOf(title, "Valid"); !errors.Is(err, ErrContainsMarkdown) {
			t.Errorf("FieldOf(%q) err = %v, want ErrContainsMarkdown", title, err)
		}
	}
}

func randomString(n int) string {
	r := rand.New(rand.NewSource(42))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + r.Intn(26))
	}
	return string(b)
}

func TestFooterLength(t *testing.T) {
	if _, err := FooterOf(randomString(MaxFooterLength)); err != nil {
		t.Errorf("footer of %d characters: unexpected error: %v", MaxFooterLength, err)
	}

	_, err := FooterOf(randomString(MaxFooterLength + 1))
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("footer of %d characters err = %v, want ErrTooLong", MaxFooterLength+1, err)
	}
	if !strings.Contains(err.Error(), "cannot have more than 300 characters") {
		t.Errorf("error %q should name the 300 limit", err)
	}
	if !strings.Contains(err.Error(), "found 301") {
		t.Errorf("error %q should name the actual length", err)
	}

	// the limit counts characters, not bytes
	if _, err := FooterOf(strings.Repeat("é", MaxFooterLength)); err != nil {
		t.Errorf("300 two-byte characters: unexpected error: %v", err)
	}
}

func TestFooter(t *testing.T) {
	for _, text := range []string{"*footer*", "-footer-"} {
		if _, err := FooterOf(text); !errors.Is(err, ErrContainsMarkdown) {
			t.Errorf("FooterOf(%q) err = %v, want ErrContainsMarkdown", text, err)
		}
	}
	if _, err := FooterOf(""); !errors.Is(err, ErrRequired) {
		t.Errorf("FooterOf(\"\") err = %v, want ErrRequired", err)
	}

	f, err := NewFooter("Sent by cron").Icon("https://example.com/f.png").Timestamp(1392734382).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts, ok := f.Time().Get()
	if !ok {
		t.Fatal("Time() should be present")
	}
	want := time.Date(2014, time.February, 18, 14, 39, 42, 0, time.UTC)
	if !ts.Equal(want) || ts.Location() != time.UTC {
		t.Errorf("Time() = %v, want %v", ts, want)
	}

	f, _ = FooterOf("plain")
	if f.Time().IsPresent() || f.Timestamp().IsPresent() {
		t.Error("footer without timestamp should have no time")
	}
}

func TestParseModeOf(t *testing.T) {
	cases := map[string]ParseMode{"full": ParseFull, "FULL": ParseFull, "None": ParseNone}
	for in, want := range cases {
		got, err := ParseModeOf(in)
		if err != nil || got != want {
			t.Errorf("ParseModeOf(%q) = (%v, %v), want %v", in, got, err, want)
		}
	}
	if _, err := ParseModeOf("partial"); !errors.Is(err, ErrInvalidParseMode) {
		t.Errorf("ParseModeOf(partial) err = %v, want ErrInvalidParseMode", err)
	}
	var zero ParseMode
	if zero != ParseNone {
		t.Error("zero ParseMode should be ParseNone")
	}
}
