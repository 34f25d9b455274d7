package message

import (
	"encoding/json"
)

const fieldTitleField = "title"

// Field is one entry of the table shown at the bottom of an attachment.
type Field struct {
	title   string
	value   string
	isShort bool
}

// FieldBuilder accumulates Field values until Build.
type FieldBuilder struct {
	title, value string
	isShort      bool
}

// NewField starts a Field. Fields are short unless told otherwise.
func NewField(title, value string) *FieldBuilder {
	return &FieldBuilder{title: title, value: value, isShort: true}
}

// FieldOf builds a short Field.
func FieldOf(title, value string) (Field, error) {
	return NewField(title, value).Build()
}

// Short sets whether the value is short enough to render side-by-side with other fields.
func (b *FieldBuilder) Short(isShort bool) *FieldBuilder {
	b.isShort = isShort
	return b
}

// Build validates the field. The title cannot contain markdown, the value can.
func (b *FieldBuilder) Build() (Field, error) {
	if err := checkNoMarkdown(fieldTitleField, b.title); err != nil {
		return Field{}, err
	}
	return Field{title: b.title, value: b.value, isShort: b.isShort}, nil
}

// Title returns the field title.
func (f Field) Title() string { return f.title }

// Value returns the field value.
func (f Field) Value() string { return f.value }

// IsShort reports whether the field renders side-by-side with others.
func (f Field) IsShort() bool { return f.isShort }

type fieldJSON struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short *bool  `json:"short,omitempty"`
}

func (f Field) toJSON() fieldJSON {
	short := f.isShort
	return fieldJSON{Title: f.title, Value: f.value, Short: &short}
}

func (fj fieldJSON) build() (Field, error) {
	b := NewField(fj.Title, fj.Value)
	if fj.Short != nil {
		b.Short(*fj.Short)
	}
	return b.Build()
}

// MarshalJSON implements json.Marshaler.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.toJSON())
}

// UnmarshalJSON implements json.Unmarshaler, validating the decoded field.
func (f *Field) UnmarshalJSON(b []byte) error {
	var fj fieldJSON
	if err := json.Unmarshal(b, &fj); err != nil {
		return err
	}
	v, err := fj.build()
	if err != nil {
		return err
	}
	*f = v
	return nil
}
