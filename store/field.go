package store

// Field is an optional update value. A zero Field means the caller
// did not provide the field and the stored value must be kept; a
// Field built with Set carries a replacement, including the explicit
// empty string.
type Field struct {
	value    string
	provided bool
}

func Set(value string) Field {
	return Field{value: value, provided: true}
}

func FromPtr(p *string) Field {
	if p == nil {
		return Field{}
	}
	return Set(*p)
}

func (f Field) Provided() bool {
	return f.provided
}

func (f Field) Value() string {
	return f.value
}

// Fields is a partial update of a record. Only provided fields are
// written; the merge is field-by-field, never whole-document.
type Fields struct {
	Summary      Field
	CustomPrompt Field
	Transcript   Field
	MeetingTitle Field
}
