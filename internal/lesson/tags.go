package lesson

import (
	"slices"
	"strings"
)

// SetPendingTag stages text as the next tag to add.
func (f *Form) SetPendingTag(text string) {
	f.pendingTag = text
}

// PendingTag returns the staged tag text.
func (f *Form) PendingTag() string {
	return f.pendingTag
}

// AddPendingTag appends the pending tag and clears it. Blank or duplicate
// values are ignored without error. Reports whether a tag was added.
func (f *Form) AddPendingTag() bool {
	tag := f.pendingTag
	if strings.TrimSpace(tag) == "" || slices.Contains(f.draft.Tags, tag) {
		return false
	}
	f.draft.Tags = append(f.draft.Tags, tag)
	f.pendingTag = ""
	return true
}

// RemoveTag deletes tag from the list. Reports whether it was present.
func (f *Form) RemoveTag(tag string) bool {
	i := slices.Index(f.draft.Tags, tag)
	if i < 0 {
		return false
	}
	f.draft.Tags = slices.Delete(f.draft.Tags, i, i+1)
	return true
}

// HasTag reports whether tag is already in the list.
func (f *Form) HasTag(tag string) bool {
	return slices.Contains(f.draft.Tags, tag)
}
