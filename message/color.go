package message

import (
	"regexp"
	"strings"

	"github.com/nezorflame/slackmsg/enum"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// Preset is one of Slack's named attachment colors.
type Preset int

// Color presets
const (
	PresetGood Preset = iota
	PresetWarning
	PresetDanger
)

// Presets lists every color preset.
var Presets = []Preset{PresetGood, PresetWarning, PresetDanger}

// presetHex holds the colors Slack renders for each preset.
var presetHex = map[Preset]string{
	PresetGood:    "#2eb886",
	PresetWarning: "#daa038",
	PresetDanger:  "#a30200",
}

func (p Preset) String() string {
	switch p {
	case PresetGood:
		return "good"
	case PresetWarning:
		return "warning"
	case PresetDanger:
		return "danger"
	}
	return "unknown"
}

// Color is an attachment side-bar color: a preset name or a #rrggbb hex value.
type Color struct {
	value string
}

// ColorOf validates value and returns it as a lower-cased Color.
func ColorOf(value string) (Color, error) {
	v := strings.ToLower(value)
	if p, ok := enum.Lookup(Presets, v); ok {
		return PresetColor(p), nil
	}
	if !hexColorPattern.MatchString(v) {
		return Color{}, errors.Wrapf(ErrInvalidColor,
			"the string '%s' is not a valid hex color value, the valid format is #rrggbb (including # symbol)", value)
	}
	return Color{value: v}, nil
}

// PresetColor returns the Color of a preset.
func PresetColor(p Preset) Color {
	return Color{value: p.String()}
}

// Good returns the "good" preset color.
func Good() Color { return PresetColor(PresetGood) }

// Warning returns the "warning" preset color.
func Warning() Color { return PresetColor(PresetWarning) }

// Danger returns the "danger" preset color.
func Danger() Color { return PresetColor(PresetDanger) }

// ColorFrom converts any colorful.Color into a hex Color.
func ColorFrom(c colorful.Color) Color {
	return Color{value: strings.ToLower(c.Clamped().Hex())}
}

// HappyColor returns a random pleasant hex color.
func HappyColor() Color {
	return ColorFrom(colorful.FastHappyColor())
}

// Value returns the lower-cased color value.
func (c Color) Value() string { return c.value }

func (c Color) String() string { return c.value }

// IsPreset reports whether the color is one of the named presets.
func (c Color) IsPreset() bool {
	_, ok := enum.Lookup(Presets, c.value)
	return ok
}

// AsPreset returns the preset of the color. Calling it on a hex color returns ErrNotPreset.
func (c Color) AsPreset() (Preset, error) {
	p, ok := enum.Lookup(Presets, c.value)
	if !ok {
		return 0, errors.Wrapf(ErrNotPreset, "the color value '%s' is not a preset, valid preset values include: [%s]",
			c.value, enum.Names(Presets, ","))
	}
	return p, nil
}

// RGB returns the color as rendered by Slack.
func (c Color) RGB() (colorful.Color, error) {
	hex := c.value
	if p, ok := enum.Lookup(Presets, c.value); ok {
		hex = presetHex[p]
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, errors.Wrapf(err, "unable to parse color %q", c.value)
	}
	return col, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ColorOf(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
