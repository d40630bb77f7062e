package lesson

import (
	"strings"
)

// Field names a validated draft field.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldDate        Field = "date"
)

// fieldOrder is the order fields are checked and reported in.
var fieldOrder = []Field{FieldTitle, FieldDescription, FieldDate}

// Validation messages.
const (
	MsgTitleRequired       = "Title is required"
	MsgDescriptionRequired = "Description is required"
	MsgDateRequired        = "Date is required"
)

// ValidationErrors maps an invalid field to its message. A missing key means
// the field is valid.
type ValidationErrors map[Field]string

// Validate checks a draft and returns every failing field. The result is
// never nil.
func Validate(d Draft) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(d.Title) == "" {
		errs[FieldTitle] = MsgTitleRequired
	}
	if strings.TrimSpace(d.Description) == "" {
		errs[FieldDescription] = MsgDescriptionRequired
	}
	if !d.HasDate() {
		errs[FieldDate] = MsgDateRequired
	}
	return errs
}

// Has reports whether f has an error.
func (v ValidationErrors) Has(f Field) bool {
	_, ok := v[f]
	return ok
}

// Get returns the message for f, or "" if f is valid.
func (v ValidationErrors) Get(f Field) string {
	return v[f]
}

// Fields returns the failing fields in display order.
func (v ValidationErrors) Fields() []Field {
	var fields []Field
	for _, f := range fieldOrder {
		if v.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Error implements error so a failed submit can be returned as one.
func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, f := range v.Fields() {
		msgs = append(msgs, v[f])
	}
	return strings.Join(msgs, "; ")
}
